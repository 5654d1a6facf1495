package data

import (
	"sort"

	"gorm.io/gorm/clause"
)

// Filter builds the visibility predicate for rows of table.
// table is either a real table name or clause.CurrentTable.
type Filter func(table string) clause.Expression

// FilterRegistry maps each deletable table to the predicate every default query gets.
type FilterRegistry struct {
	filters map[string]Filter
}

func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{filters: map[string]Filter{}}
}

func (r *FilterRegistry) Register(table string, f Filter) { r.filters[table] = f }

func (r *FilterRegistry) Lookup(table string) (Filter, bool) {
	f, ok := r.filters[table]
	return f, ok
}

func (r *FilterRegistry) Tables() []string {
	out := make([]string, 0, len(r.filters))
	for t := range r.filters {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func NotDeleted(table string) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: table, Name: "is_deleted"}, Value: false}
}

// OwnedBy hides a row when its required owner is hidden by the owner filter.
func OwnedBy(foreignKey, ownerTable string, owner Filter) Filter {
	return func(table string) clause.Expression {
		return clause.And(
			NotDeleted(table),
			clause.Expr{
				SQL: "? IN (SELECT ? FROM ? WHERE ?)",
				Vars: []interface{}{
					clause.Column{Table: table, Name: foreignKey},
					clause.Column{Table: ownerTable, Name: "id"},
					clause.Table{Name: ownerTable},
					owner(ownerTable),
				},
			},
		)
	}
}

func buildFilters(tables []string) *FilterRegistry {
	r := NewFilterRegistry()
	var filterFor func(table string) Filter
	filterFor = func(table string) Filter {
		if rel, ok := ownerOf(table); ok {
			return OwnedBy(rel.ForeignKey, rel.Owner, filterFor(rel.Owner))
		}
		return NotDeleted
	}
	for _, t := range tables {
		r.Register(t, filterFor(t))
	}
	return r
}
