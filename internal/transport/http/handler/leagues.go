package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/internal/service"
	"basketball-manager/internal/transport/http/ez"
	mdw "basketball-manager/internal/transport/http/middleware"
)

// Leagues acts on behalf of the caller's manager.
type Leagues struct {
	Svc      *service.LeagueService
	Managers *service.ManagerService
	Repo     *repo.Repository[domain.League]
}

type scoreIn struct {
	Team1 int `json:"team1Score"`
	Team2 int `json:"team2Score"`
}

func (h Leagues) MountAPI(_, user ez.EZ) {
	ez.RegisterAction(user, ez.Action[service.CreateLeagueInput, *domain.League]{
		Method: http.MethodPost,
		Path:   "/leagues",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.CreateLeagueInput) (*domain.League, error) {
			m, err := h.Managers.ByUser(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return nil, err
			}
			return h.Svc.Create(c.Request.Context(), m.ID, *in)
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, idOut]{
		Method: http.MethodPost,
		Path:   "/leagues/:id/join",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			m, err := h.Managers.ByUser(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return idOut{}, err
			}
			id := c.Param("id")
			return idOut{ID: id}, h.Svc.Join(c.Request.Context(), id, m.ID)
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, *domain.League]{
		Method: http.MethodGet,
		Path:   "/leagues/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.League, error) {
			return h.Svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(user, ez.Action[service.ScheduleMatchInput, *domain.Match]{
		Method: http.MethodPost,
		Path:   "/leagues/:id/matches",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ScheduleMatchInput) (*domain.Match, error) {
			m, err := h.Managers.ByUser(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return nil, err
			}
			return h.Svc.ScheduleMatch(c.Request.Context(), m.ID, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(user, ez.Action[scoreIn, *domain.Match]{
		Method: http.MethodPut,
		Path:   "/matches/:id/score",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *scoreIn) (*domain.Match, error) {
			m, err := h.Managers.ByUser(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return nil, err
			}
			return h.Svc.RecordScore(c.Request.Context(), m.ID, c.Param("id"), in.Team1, in.Team2)
		},
	})
}

func (h Leagues) MountAdmin(admin ez.EZ) {
	ez.Resource(admin, ez.ResourceConfig[domain.League]{Repo: h.Repo, Path: "/leagues"})
}
