package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basketball-manager/internal/domain"
	"basketball-manager/internal/service"
	"basketball-manager/internal/transport/http/ez"
	mdw "basketball-manager/internal/transport/http/middleware"
)

type Managers struct {
	Svc *service.ManagerService
}

type idOut struct {
	ID string `json:"id"`
}

func (h Managers) MountAPI(_, user ez.EZ) {
	ez.RegisterAction(user, ez.Action[service.CreateManagerInput, *domain.Manager]{
		Method: http.MethodPost,
		Path:   "/managers",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.CreateManagerInput) (*domain.Manager, error) {
			return h.Svc.Create(c.Request.Context(), mdw.UserID(c), *in)
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, *domain.Manager]{
		Method: http.MethodGet,
		Path:   "/managers/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Manager, error) {
			return h.Svc.ByUser(c.Request.Context(), mdw.UserID(c))
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/managers/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			m, err := h.Svc.ByUser(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return idOut{}, err
			}
			if err := h.Svc.Delete(c.Request.Context(), m.ID); err != nil {
				return idOut{}, err
			}
			return idOut{ID: m.ID}, nil
		},
	})
}

func (h Managers) MountAdmin(admin ez.EZ) {
	ez.RegisterAction(admin, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/managers/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			if err := h.Svc.Purge(c.Request.Context(), id); err != nil {
				return idOut{}, err
			}
			return idOut{ID: id}, nil
		},
	})
}
