package handler

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"basketball-manager/internal/data"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/identity"
	"basketball-manager/internal/transport/http/ez"
)

// UsersAdmin lists, bans and restores users, reports the schema's delete
// behaviors and purges soft-deleted rows.
type UsersAdmin struct {
	Users   *identity.UserManager
	Data    *data.Context
	Queries *data.QueryRunner
}

type purgeIn struct {
	Table         string `json:"table" binding:"required"`
	OlderThanDays int    `json:"olderThanDays" binding:"gte=0"`
}

type purgeOut struct {
	Table  string `json:"table"`
	Purged int64  `json:"purged"`
}

type listUsersQ struct {
	WithDeleted bool `form:"with_deleted"`
}

type listUsersOut struct {
	Total int           `json:"total"`
	Items []domain.User `json:"items"`
}

func (h UsersAdmin) MountAdmin(admin ez.EZ) {
	ez.RegisterAction(admin, ez.Action[listUsersQ, listUsersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listUsersQ) (listUsersOut, error) {
			us, err := h.Users.List(c.Request.Context(), in.WithDeleted)
			if err != nil {
				return listUsersOut{}, err
			}
			if us == nil {
				us = []domain.User{}
			}
			return listUsersOut{Total: len(us), Items: us}, nil
		},
	})

	// ban is a soft delete
	ez.RegisterAction(admin, ez.Action[struct{}, idOut]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			u, err := h.Users.FindByID(c.Request.Context(), id)
			if err != nil {
				return idOut{}, err
			}
			if u == nil {
				return idOut{}, ez.NotFound("user not found")
			}
			if err := h.Users.Delete(c.Request.Context(), u); err != nil {
				return idOut{}, ez.Internal("ban user failed", err)
			}
			return idOut{ID: id}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users/:id/restore",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := h.Users.Restore(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, ez.NotFound("user not found")
			}
			return u, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, map[string]string]{
		Method: http.MethodGet,
		Path:   "/schema/delete-behaviors",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (map[string]string, error) {
			return h.Data.DeleteBehaviors()
		},
	})

	ez.RegisterAction(admin, ez.Action[purgeIn, purgeOut]{
		Method: http.MethodPost,
		Path:   "/maintenance/purge",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *purgeIn) (purgeOut, error) {
			cutoff := time.Now().AddDate(0, 0, -in.OlderThanDays)
			n, err := h.Queries.PurgeDeleted(c.Request.Context(), in.Table, cutoff)
			if errors.Is(err, data.ErrNotDeletable) {
				return purgeOut{}, ez.BadRequest(err.Error())
			}
			if err != nil {
				return purgeOut{}, err
			}
			return purgeOut{Table: in.Table, Purged: n}, nil
		},
	})
}
