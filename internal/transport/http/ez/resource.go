package ez

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"basketball-manager/internal/repo"
)

// ResourceConfig exposes a repository read-only under Path.
type ResourceConfig[T any] struct {
	Repo    *repo.Repository[T]
	Path    string
	ParseID func(string) (interface{}, error) // defaults to the raw string
	MaxSize int                               // defaults to 100
}

type Page[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

type pageQuery struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// Resource registers GET Path (paged, newest first) and GET Path/:id.
func Resource[T any](e EZ, cfg ResourceConfig[T]) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 100
	}
	if cfg.ParseID == nil {
		cfg.ParseID = func(s string) (interface{}, error) { return s, nil }
	}

	RegisterAction(e, Action[pageQuery, Page[T]]{
		Method: http.MethodGet,
		Path:   cfg.Path,
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *pageQuery) (Page[T], error) {
			page := atLeast(in.Page, 1)
			size := atLeast(in.Size, 20)
			if size > cfg.MaxSize {
				size = cfg.MaxSize
			}
			items, total, err := cfg.Repo.List(c.Request.Context(), (page-1)*size, size)
			if err != nil {
				return Page[T]{}, err
			}
			if items == nil {
				items = []T{}
			}
			return Page[T]{List: items, Total: total, Page: page, Size: size}, nil
		},
	})

	RegisterAction(e, Action[struct{}, *T]{
		Method: http.MethodGet,
		Path:   cfg.Path + "/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*T, error) {
			id, err := cfg.ParseID(c.Param("id"))
			if err != nil {
				return nil, BadRequest("invalid id")
			}
			m, err := cfg.Repo.GetByID(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			if m == nil {
				return nil, NotFound("not found")
			}
			return m, nil
		},
	})
}

// ParseUint is a ParseID for integer keys.
func ParseUint(s string) (interface{}, error) {
	return strconv.ParseUint(s, 10, 64)
}

func atLeast(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
