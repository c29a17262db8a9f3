package router

import (
	"net/http"

	"sportconnect/internal/handlers"
	"sportconnect/internal/middleware"
	"sportconnect/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gdb *gorm.DB, uploads *services.UploadService) {
	// Handlers
	authHandler := handlers.NewAuthHandler(gdb)
	feedHandler := handlers.NewFeedHandler(gdb, uploads)
	eventHandler := handlers.NewEventHandler(gdb)
	communityHandler := handlers.NewCommunityHandler(gdb)
	messageHandler := handlers.NewMessageHandler(gdb)
	profileHandler := handlers.NewProfileHandler(gdb, uploads)

	// Public Routes
	r.GET("/", func(c *gin.Context) {
		if middleware.CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/feed")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})
	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// The like endpoint answers 401 JSON itself instead of redirecting
	r.POST("/like_post/:id", feedHandler.LikePost)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/feed", feedHandler.Feed)
		authorized.POST("/feed", feedHandler.CreatePost)

		authorized.GET("/events", eventHandler.List)
		authorized.POST("/events", eventHandler.Create)
		authorized.GET("/join_event/:id", eventHandler.Join)

		authorized.GET("/communities", communityHandler.List)
		authorized.GET("/join_community/:id", communityHandler.Join)

		authorized.GET("/messages", messageHandler.Directory)
		authorized.GET("/chat/:id", messageHandler.Chat)
		authorized.POST("/chat/:id", messageHandler.Send)

		authorized.GET("/profile", profileHandler.ShowOwn)
		authorized.GET("/profile/:id", profileHandler.Show)
		authorized.POST("/profile_edit/:id", profileHandler.Edit)
		authorized.POST("/follow/:id", profileHandler.Follow)
		authorized.POST("/unfollow/:id", profileHandler.Unfollow)
	}
}
