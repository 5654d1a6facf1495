package router

import (
	"basketball-manager/internal/app"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/internal/transport/http/handler"
)

// Modules registers every handler module of the application.
func Modules(a *app.App) *Registry {
	db := a.Data.DB
	reg := &Registry{}
	reg.Register(
		handler.Account{Users: a.Users, JWT: a.JWT, Sender: a.Sender, From: a.Config.App.MailFrom, Log: a.Log},
		handler.Managers{Svc: a.Managers},
		handler.Leagues{Svc: a.Leagues, Managers: a.Managers, Repo: repo.NewRepository[domain.League](db)},
		handler.Catalog{
			Attributes:     a.Attributes,
			Settings:       a.Settings,
			AttributesRepo: repo.NewRepository[domain.Attributes](db),
			SettingsRepo:   repo.NewRepository[domain.Setting](db),
		},
		handler.UsersAdmin{Users: a.Users, Data: a.Data, Queries: a.Queries},
	)
	return reg
}
