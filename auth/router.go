package auth

import (
	"net/http"
	"travelworld/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated and posseses the required roles
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base gin.IRoutes
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []models.Role) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 && len(required) == 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if user.ID == 0 || !user.HasRoles(required) {
		c.HTML(http.StatusForbidden, "forbidden.tmpl", gin.H{"user": &user})
		return
	}
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...models.Role) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...models.Role) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}
