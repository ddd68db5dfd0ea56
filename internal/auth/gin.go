package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const AnonymousCookie = "anon_id"

// Middleware stores the caller's identity in the request context. Callers
// without an anonymous cookie are issued a new anonymous id, token or not.
func Middleware(cookieMaxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Identity{AccessToken: bearerToken(c.GetHeader("Authorization"))}
		if anon, err := c.Cookie(AnonymousCookie); err == nil && anon != "" {
			id.AnonymousID = anon
		} else {
			id.AnonymousID = uuid.New().String()
			c.SetCookie(AnonymousCookie, id.AnonymousID, cookieMaxAge, "/", "", false, true)
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
