package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

const roleContextKey = "operatorRole"

// RequestIDMiddleware tags every request so log lines can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// TokenAuthMiddleware validates the operator bearer token and stores its role
// on the request context.
func TokenAuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.FromHeader(c.GetHeader("Authorization"))
		if err != nil {
			respondMsg(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		role, err := issuer.Validate(tokenString)
		if err != nil {
			respondMsg(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequirePrivileged gates mutating routes to privileged operators. It must
// run after TokenAuthMiddleware.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(roleContextKey)
		if !ok || role.(token.Role) != token.RolePrivileged {
			respondMsg(c, http.StatusUnauthorized, "Authentication Failed")
			c.Abort()
			return
		}
		c.Next()
	}
}
