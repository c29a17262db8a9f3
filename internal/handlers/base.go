package handlers

import (
	"strings"

	"sportconnect/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Notice is a one-shot message carried across a redirect in the session.
type Notice struct {
	Kind    string // success, info, warning, danger
	Message string
}

// Flash queues a notice for the next rendered page.
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(kind + "|" + message)
	session.Save()
}

// Render injects the current user and any pending notices, then renders the
// named view.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		session.Save()
		notices := make([]Notice, 0, len(flashes))
		for _, f := range flashes {
			s, ok := f.(string)
			if !ok {
				continue
			}
			kind, message, found := strings.Cut(s, "|")
			if !found {
				kind, message = "info", s
			}
			notices = append(notices, Notice{Kind: kind, Message: message})
		}
		obj["Notices"] = notices
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}
