package data

import (
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"basketball-manager/internal/domain"
)

// filterClauseKey is the statement marker GORM itself checks to decide whether a
// delete/update without user conditions is a global one.
const filterClauseKey = "soft_delete_enabled"

// plugin wires audit stamping, soft delete and query filtering into GORM's callbacks.
type plugin struct {
	filters *FilterRegistry
	now     func() time.Time
}

func (p *plugin) Name() string { return "basketball-manager:data" }

func (p *plugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("data:audit_create", p.stampCreate); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("data:audit_update", p.stampUpdate); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("data:soft_delete", p.softDelete); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("data:query_filter", p.filterQuery); err != nil {
		return err
	}
	return cb.Row().Before("gorm:row").Register("data:row_filter", p.filterQuery)
}

// stampCreate sets CreatedOn on new rows. A row arriving with CreatedOn already
// set gets ModifiedOn instead and its CreatedOn is kept as given.
func (p *plugin) stampCreate(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	now := p.now()
	eachAuditable(db.Statement.ReflectValue, func(a domain.Auditable) {
		info := a.Audit()
		if info.CreatedOn.IsZero() {
			info.CreatedOn = now
		} else {
			t := now
			info.ModifiedOn = &t
		}
	})
}

func (p *plugin) stampUpdate(db *gorm.DB) {
	stmt := db.Statement
	if db.Error != nil || stmt.Schema == nil {
		return
	}
	if _, ok := stmt.Model.(domain.Auditable); !ok {
		return
	}
	field := stmt.Schema.LookUpField("ModifiedOn")
	if field == nil {
		return
	}
	now := p.now()
	stmt.SetColumn(field.Name, &now, true)
	if len(stmt.Selects) > 0 {
		stmt.Selects = append(stmt.Selects, field.DBName)
	}
}

// softDelete turns a scoped DELETE on a deletable table into an UPDATE of the
// flag, following the shape of GORM's own DeletedAt handling.
func (p *plugin) softDelete(db *gorm.DB) {
	stmt := db.Statement
	if db.Error != nil || stmt.Schema == nil || stmt.Unscoped || stmt.SQL.Len() > 0 {
		return
	}
	if _, ok := p.filters.Lookup(stmt.Schema.Table); !ok {
		return
	}

	now := p.now()
	stmt.AddClause(clause.Set{
		{Column: clause.Column{Name: "is_deleted"}, Value: true},
		{Column: clause.Column{Name: "deleted_on"}, Value: now},
		{Column: clause.Column{Name: "modified_on"}, Value: now},
	})
	if stmt.ReflectValue.CanAddr() {
		stmt.SetColumn("IsDeleted", true, true)
		stmt.SetColumn("DeletedOn", &now, true)
		stmt.SetColumn("ModifiedOn", &now, true)
	}

	_, queryValues := schema.GetIdentityFieldValuesMap(stmt.Context, stmt.ReflectValue, stmt.Schema.PrimaryFields)
	column, values := schema.ToQueryValues(stmt.Table, stmt.Schema.PrimaryFieldDBNames, queryValues)
	if len(values) > 0 {
		stmt.AddClause(clause.Where{Exprs: []clause.Expression{clause.IN{Column: column, Values: values}}})
	}
	if stmt.ReflectValue.CanAddr() && stmt.Dest != stmt.Model && stmt.Model != nil {
		_, queryValues = schema.GetIdentityFieldValuesMap(stmt.Context, reflect.ValueOf(stmt.Model), stmt.Schema.PrimaryFields)
		column, values = schema.ToQueryValues(stmt.Table, stmt.Schema.PrimaryFieldDBNames, queryValues)
		if len(values) > 0 {
			stmt.AddClause(clause.Where{Exprs: []clause.Expression{clause.IN{Column: column, Values: values}}})
		}
	}

	p.filterQuery(db)
	stmt.AddClauseIfNotExists(clause.Update{})
	stmt.Build(db.Callback().Update().Clauses...)
}

func (p *plugin) filterQuery(db *gorm.DB) {
	stmt := db.Statement
	if db.Error != nil || stmt.Schema == nil || stmt.Unscoped {
		return
	}
	if _, applied := stmt.Clauses[filterClauseKey]; applied {
		return
	}
	f, ok := p.filters.Lookup(stmt.Schema.Table)
	if !ok {
		return
	}

	// a lone OR would otherwise bind looser than the filter
	if c, ok := stmt.Clauses["WHERE"]; ok {
		if where, ok := c.Expression.(clause.Where); ok && len(where.Exprs) >= 1 {
			for _, expr := range where.Exprs {
				if or, ok := expr.(clause.OrConditions); ok && len(or.Exprs) == 1 {
					where.Exprs = []clause.Expression{clause.And(where.Exprs...)}
					c.Expression = where
					stmt.Clauses["WHERE"] = c
					break
				}
			}
		}
	}

	stmt.AddClause(clause.Where{Exprs: []clause.Expression{f(clause.CurrentTable)}})
	stmt.Clauses[filterClauseKey] = clause.Clause{}
}

func eachAuditable(rv reflect.Value, fn func(domain.Auditable)) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			visitAuditable(rv.Index(i), fn)
		}
	case reflect.Struct, reflect.Ptr:
		visitAuditable(rv, fn)
	}
}

func visitAuditable(v reflect.Value, fn func(domain.Auditable)) {
	v = reflect.Indirect(v)
	if v.Kind() != reflect.Struct || !v.CanAddr() {
		return
	}
	if a, ok := v.Addr().Interface().(domain.Auditable); ok {
		fn(a)
	}
}
