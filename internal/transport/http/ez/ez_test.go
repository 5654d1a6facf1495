package ez

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"basketball-manager/internal/identity"
	"basketball-manager/internal/service"
	mdw "basketball-manager/internal/transport/http/middleware"
	resp "basketball-manager/internal/transport/http/response"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{errors.Wrap(service.ErrInvalidInput, "level"), resp.CodeBadRequest},
		{errors.Wrap(identity.ErrPasswordPolicy, "too short"), resp.CodeBadRequest},
		{identity.ErrInvalidCredentials, resp.CodeUnauthorized},
		{errors.Wrap(service.ErrForbidden, "not in league"), resp.CodeForbidden},
		{service.ErrNotFound, resp.CodeNotFound},
		{errors.Wrap(gorm.ErrRecordNotFound, "find"), resp.CodeNotFound},
		{errors.Wrapf(identity.ErrDuplicateUserName, "%q", "kobe"), resp.CodeConflict},
		{errors.Mark(errors.New("fk"), service.ErrConflict), resp.CodeConflict},
		{gorm.ErrDuplicatedKey, resp.CodeConflict},
		{identity.ErrLockedOut, resp.CodeLocked},
		{context.DeadlineExceeded, resp.CodeTimeout},
		{errors.New("disk on fire"), resp.CodeServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, FromError(tc.err).Code, tc.err.Error())
	}

	ae := FromError(NotFound("nope"))
	assert.Equal(t, "nope", ae.Msg)

	// server errors keep their detail out of the reply
	assert.Equal(t, "Internal Server Error", FromError(errors.New("secret dsn")).Error())
}

type echoIn struct {
	Name string `json:"name" binding:"required"`
}

func newEngine(t *testing.T, roles []string, l *zap.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("")
	g.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User"); uid != "" {
			c.Set(mdw.KeyUserID, uid)
			c.Set(mdw.KeyRoles, roles)
		}
	})
	e := New(g, l)
	RegisterAction(e, Action[echoIn, string]{
		Method: http.MethodPost,
		Path:   "/echo",
		Binder: BindJSON,
		Auth:   true,
		Roles:  []string{"Coach"},
		Handler: func(c *gin.Context, in *echoIn) (string, error) {
			if in.Name == "fail" {
				return "", errors.New("boom")
			}
			return "hi " + in.Name, nil
		},
	})
	return r
}

func call(t *testing.T, r *gin.Engine, user, body string) resp.Resp {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterAction(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newEngine(t, []string{"Coach"}, zap.New(core))

	assert.Equal(t, resp.CodeUnauthorized, call(t, r, "", `{"name":"a"}`).Code)
	assert.Equal(t, resp.CodeBadRequest, call(t, r, "u1", `{}`).Code)

	out := call(t, r, "u1", `{"name":"bob"}`)
	assert.Equal(t, resp.CodeOK, out.Code)
	assert.Equal(t, "hi bob", out.Data)

	out = call(t, r, "u1", `{"name":"fail"}`)
	assert.Equal(t, resp.CodeServerError, out.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestRegisterActionChecksRoles(t *testing.T) {
	r := newEngine(t, []string{"Fan"}, nil)
	assert.Equal(t, resp.CodeForbidden, call(t, r, "u1", `{"name":"a"}`).Code)
}
