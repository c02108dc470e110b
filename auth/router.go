package auth

import (
	"net/http"

	"gallery/models"

	"github.com/gin-gonic/gin"
)

// HandlerFunc handlers run only for authenticated requests and receive
// the pre-loaded User.
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper that adds the auth check + User pre-loading to
// mutating routes. The check happens before the handler runs, so an
// unauthenticated request causes no side effects.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth", "message": "not authenticated"})
		return
	}
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
