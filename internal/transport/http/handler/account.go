// Package handler holds the HTTP modules of the user and admin APIs.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"basketball-manager/internal/core/auth"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/identity"
	"basketball-manager/internal/service/messaging"
	"basketball-manager/internal/transport/http/ez"
	mdw "basketball-manager/internal/transport/http/middleware"
)

// Account serves registration, sign-in and the current user.
type Account struct {
	Users  *identity.UserManager
	JWT    *auth.JWTer
	Sender messaging.EmailSender
	From   string
	Log    *zap.Logger
}

func (Account) Priority() int { return 10 }

type registerIn struct {
	UserName string `json:"userName" binding:"required,max=256"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginIn struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	Roles []string     `json:"roles"`
}

func (h Account) MountAPI(pub, user ez.EZ) {
	ez.RegisterAction(pub, ez.Action[registerIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (tokenOut, error) {
			u, err := h.Users.Create(c.Request.Context(), in.UserName, in.Email, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			h.welcome(c.Request.Context(), u)
			return h.issue(c.Request.Context(), u)
		},
	})

	ez.RegisterAction(pub, ez.Action[loginIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (tokenOut, error) {
			u, err := h.Users.PasswordSignIn(c.Request.Context(), in.UserName, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			return h.issue(c.Request.Context(), u)
		},
	})

	ez.RegisterAction(user, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := h.Users.FindByID(c.Request.Context(), mdw.UserID(c))
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, ez.NotFound("user not found")
			}
			return u, nil
		},
	})
}

func (h Account) issue(ctx context.Context, u *domain.User) (tokenOut, error) {
	roles, err := h.Users.RolesOf(ctx, u)
	if err != nil {
		return tokenOut{}, err
	}
	tok, err := h.JWT.Issue(u.ID, roles)
	if err != nil {
		return tokenOut{}, ez.Internal("issue token failed", err)
	}
	if roles == nil {
		roles = []string{}
	}
	return tokenOut{Token: tok, User: u, Roles: roles}, nil
}

// welcome failures are logged only; the account already exists.
func (h Account) welcome(ctx context.Context, u *domain.User) {
	if h.Sender == nil {
		return
	}
	body := fmt.Sprintf("<p>Welcome, %s. Create your manager to get a team.</p>", u.UserName)
	if err := h.Sender.SendEmail(ctx, h.From, "Basketball Manager", u.Email, "Welcome", body); err != nil && h.Log != nil {
		h.Log.Warn("welcome email failed", zap.String("user_id", u.ID), zap.Error(err))
	}
}
