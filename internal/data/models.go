package data

import "basketball-manager/internal/domain"

// DeletableModels lists every entity carrying the soft-delete flag. The query
// filter registry is built from this list, so a new deletable entity must be
// added here.
func DeletableModels() []domain.Deletable {
	return []domain.Deletable{
		&domain.User{},
		&domain.Role{},
		&domain.Manager{},
		&domain.Team{},
		&domain.League{},
		&domain.Match{},
		&domain.Attributes{},
		&domain.Player{},
		&domain.Setting{},
	}
}

// Models returns every mapped entity in migration order.
func Models() []interface{} {
	out := []interface{}{}
	for _, m := range DeletableModels() {
		out = append(out, m)
	}
	return append(out,
		&domain.UserRole{},
		&domain.UserClaim{},
		&domain.RoleClaim{},
		&domain.UserLogin{},
		&domain.UserToken{},
	)
}

func deletableTables() []string {
	models := DeletableModels()
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, m.TableName())
	}
	return out
}
