package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/internal/service"
	"basketball-manager/internal/transport/http/ez"
)

// Catalog serves attributes and settings.
type Catalog struct {
	Attributes     *service.AttributesService
	Settings       *service.SettingsService
	AttributesRepo *repo.Repository[domain.Attributes]
	SettingsRepo   *repo.Repository[domain.Setting]
}

type addAttributesIn struct {
	Position string `json:"position"`
	Level    int    `json:"level"`
}

type settingsOut struct {
	Count int64            `json:"count"`
	Items []domain.Setting `json:"items"`
}

func (h Catalog) MountAPI(_, user ez.EZ) {
	ez.RegisterAction(user, ez.Action[addAttributesIn, *domain.Attributes]{
		Method: http.MethodPost,
		Path:   "/attributes",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *addAttributesIn) (*domain.Attributes, error) {
			return h.Attributes.AddAttributes(c.Request.Context(), in.Position, in.Level)
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, settingsOut]{
		Method: http.MethodGet,
		Path:   "/settings",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (settingsOut, error) {
			items, err := h.Settings.All(c.Request.Context())
			if err != nil {
				return settingsOut{}, err
			}
			if items == nil {
				items = []domain.Setting{}
			}
			return settingsOut{Count: int64(len(items)), Items: items}, nil
		},
	})
}

func (h Catalog) MountAdmin(admin ez.EZ) {
	ez.RegisterAction(admin, ez.Action[service.SetSettingInput, *domain.Setting]{
		Method: http.MethodPut,
		Path:   "/settings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.SetSettingInput) (*domain.Setting, error) {
			return h.Settings.Set(c.Request.Context(), *in)
		},
	})
	ez.Resource(admin, ez.ResourceConfig[domain.Setting]{Repo: h.SettingsRepo, Path: "/settings", ParseID: ez.ParseUint})
	ez.Resource(admin, ez.ResourceConfig[domain.Attributes]{Repo: h.AttributesRepo, Path: "/attributes", ParseID: ez.ParseUint})
}
