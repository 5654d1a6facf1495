package middleware

import (
	"github.com/gin-gonic/gin"

	"basketball-manager/internal/core/auth"
	resp "basketball-manager/internal/transport/http/response"
)

// Context keys set by AuthJWT.
const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRoles  = "roles"
)

// AuthJWT requires a bearer token. When requireRole is set the token must
// carry that role.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(raw)
		if err != nil {
			Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && !claims.HasRole(requireRole) {
			Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRoles, claims.Roles)
		c.Next()
	}
}

// UserID is empty on unauthenticated routes.
func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }

func Roles(c *gin.Context) []string { return c.GetStringSlice(KeyRoles) }
