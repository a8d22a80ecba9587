package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
)

const roleContextKey = "tokenRole"

// TokenAuthMiddleware validates the bearer token and stashes its role. The
// decode failure detail travels back to the caller so the control plane can
// relay it.
func TokenAuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.FromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Err": "missing authorization header"})
			c.Abort()
			return
		}

		role, err := issuer.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"Err": err.Error()})
			c.Abort()
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequirePrivileged gates the account-mutation routes. It must run after
// TokenAuthMiddleware.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(roleContextKey)
		if !ok || role.(token.Role) != token.RolePrivileged {
			c.JSON(http.StatusUnauthorized, gin.H{"Err": "Authentication Failed"})
			c.Abort()
			return
		}
		c.Next()
	}
}
