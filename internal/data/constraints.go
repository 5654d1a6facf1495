package data

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	onDeleteCascade  = "CASCADE"
	onDeleteRestrict = "RESTRICT"
	onDeleteNoAction = "NO ACTION"
)

// ownedRelation is a required ownership that keeps ON DELETE CASCADE.
type ownedRelation struct {
	Owner      string // owner table
	Relation   string // relationship field on the owner
	Dependent  string // dependent table
	ForeignKey string // column on the dependent
}

var cascadingRelations = []ownedRelation{
	{Owner: "users", Relation: "Manager", Dependent: "managers", ForeignKey: "user_id"},
	{Owner: "managers", Relation: "Team", Dependent: "teams", ForeignKey: "manager_id"},
}

func ownerOf(dependent string) (ownedRelation, bool) {
	for _, r := range cascadingRelations {
		if r.Dependent == dependent {
			return r, true
		}
	}
	return ownedRelation{}, false
}

func keepsCascade(table, relation string) bool {
	for _, r := range cascadingRelations {
		if r.Owner == table && r.Relation == relation {
			return true
		}
	}
	return false
}

func parseSchema(db *gorm.DB, model interface{}) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrapf(err, "parse schema %T", model)
	}
	return stmt.Schema, nil
}

// restrictCascades rewrites every ON DELETE CASCADE relationship to RESTRICT,
// except the ones listed in cascadingRelations. It edits the cached schema, so
// it has to run before the tables are migrated.
func restrictCascades(db *gorm.DB, models []interface{}) error {
	for _, m := range models {
		s, err := parseSchema(db, m)
		if err != nil {
			return err
		}
		for _, rel := range s.Relationships.Relations {
			c := rel.ParseConstraint()
			if c == nil || !strings.EqualFold(c.OnDelete, onDeleteCascade) {
				continue
			}
			// has relations also appear on the dependent schema, so key on the owner
			if keepsCascade(rel.Schema.Table, rel.Name) {
				continue
			}
			rel.Field.TagSettings["CONSTRAINT"] = withOnDelete(rel.Field.TagSettings["CONSTRAINT"], onDeleteRestrict)
		}
	}
	return nil
}

func withOnDelete(tag, behavior string) string {
	parts := strings.Split(tag, ",")
	for i, p := range parts {
		kv := strings.SplitN(p, ":", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "OnDelete") {
			parts[i] = "OnDelete:" + behavior
		}
	}
	return strings.Join(parts, ",")
}

// deleteBehaviors reports "table.column" -> ON DELETE behavior for every
// foreign key GORM will create for models.
func deleteBehaviors(db *gorm.DB, models []interface{}) (map[string]string, error) {
	out := map[string]string{}
	for _, m := range models {
		s, err := parseSchema(db, m)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(s.Relationships.Relations))
		for name := range s.Relationships.Relations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := s.Relationships.Relations[name].ParseConstraint()
			if c == nil || c.Schema == nil {
				continue
			}
			behavior := strings.ToUpper(strings.TrimSpace(c.OnDelete))
			if behavior == "" {
				behavior = onDeleteNoAction
			}
			for _, fk := range c.ForeignKeys {
				out[c.Schema.Table+"."+fk.DBName] = behavior
			}
		}
	}
	return out, nil
}
