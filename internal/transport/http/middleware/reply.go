package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "basketball-manager/internal/transport/http/response"
)

// KeyCode holds the business code of the reply for metrics and logs.
const KeyCode = "respCode"

// Reply writes r with HTTP 200 and records its code.
func Reply(c *gin.Context, r resp.Resp) {
	c.Set(KeyCode, r.Code)
	c.JSON(http.StatusOK, r)
}

// Abort stops the chain with an error envelope.
func Abort(c *gin.Context, code int, msg string) {
	c.Set(KeyCode, code)
	c.AbortWithStatusJSON(http.StatusOK, resp.Error(code, msg))
}

// replyCode falls back to the HTTP status for handlers that bypass Reply.
func replyCode(c *gin.Context) int {
	if v, ok := c.Get(KeyCode); ok {
		if code, ok := v.(int); ok {
			return code
		}
	}
	return c.Writer.Status()
}
