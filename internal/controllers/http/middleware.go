package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderUserID        = "X-User-Id"

	ctxUserKey = "username"
)

// CorrelationID echoes the caller's correlation id, minting one when absent.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(HeaderCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Header(HeaderCorrelationID, cid)
		c.Next()
	}
}

// RequireUser pulls the authenticated username set by the upstream gateway.
// The service performs no authentication itself.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader(HeaderUserID)
		if user == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing required header: " + HeaderUserID,
			})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func username(c *gin.Context) string {
	return c.GetString(ctxUserKey)
}
