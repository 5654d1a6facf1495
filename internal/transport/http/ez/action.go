// Package ez registers typed actions on gin route groups and maps their
// errors onto the response envelope.
package ez

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "basketball-manager/internal/transport/http/middleware"
	resp "basketball-manager/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // read c.Param yourself
)

// Action is one endpoint: I is the bound input, O the data of the reply.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool     // require a user id in the context
	Roles   []string // any of these roles, checked when Auth is set
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			if mdw.UserID(c) == "" {
				mdw.Abort(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			if len(a.Roles) > 0 && !hasAnyRole(mdw.Roles(c), a.Roles) {
				mdw.Abort(c, resp.CodeForbidden, "forbidden")
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			mdw.Abort(c, resp.CodeBadRequest, bindErr.Error())
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			ae := FromError(err)
			if ae.Code >= resp.CodeServerError {
				e.log.Error("action failed",
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
					zap.Error(err),
				)
			}
			mdw.Reply(c, resp.Error(ae.Code, ae.Error()))
			return
		}
		mdw.Reply(c, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func hasAnyRole(have, want []string) bool {
	for _, r := range want {
		if slices.Contains(have, r) {
			return true
		}
	}
	return false
}
