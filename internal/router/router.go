package router

import (
	"sclusiv/internal/handler"
	"sclusiv/internal/middleware"
	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Users    *handler.UserHandler
	Follows  *handler.FollowHandler
	Posts    *handler.PostHandler
	Messages *handler.MessageHandler
	Admin    *handler.AdminHandler
	Assist   *handler.AssistHandler

	Sessions    service.SessionRepo
	UserService *service.UserService
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	auth := middleware.AuthMiddleware(d.Sessions, d.UserService)

	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", d.Users.Register)
		userGroup.POST("/login", d.Users.Login)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", d.Users.TokenRefresh)
	}

	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", d.Users.Logout)
		authGroup.GET("/me", d.Users.Me)
		authGroup.PATCH("/me", d.Users.UpdateProfile)
		authGroup.GET("/me/permissions", d.Users.Permissions)
		authGroup.GET("/me/credits", d.Users.CreditHistory)
	}

	followGroup := r.Group("/api/follow")
	followGroup.Use(auth)
	{
		followGroup.POST("/", d.Follows.Act)
		followGroup.GET("/requests", d.Follows.ListRequests)
		followGroup.GET("/followings", d.Follows.ListFollowings)
		followGroup.GET("/followers", d.Follows.ListFollowers)
		followGroup.GET("/relation", d.Follows.Relation)
	}

	postGroup := r.Group("/api/post")
	postGroup.Use(auth)
	{
		postGroup.POST("/create", d.Posts.Create)
		postGroup.GET("/feed", d.Posts.Feed)
		postGroup.GET("/user/:id", d.Posts.UserPosts)
		postGroup.PATCH("/:id", d.Posts.Edit)
		postGroup.POST("/:id/hide", d.Posts.ToggleHidden)
		postGroup.DELETE("/:id", d.Posts.Delete)
		postGroup.POST("/:id/like", d.Posts.ToggleLike)
		postGroup.POST("/:id/comment", d.Posts.AddComment)
		postGroup.GET("/:id/comments", d.Posts.Comments)
	}

	messageGroup := r.Group("/api/message")
	messageGroup.Use(auth)
	{
		messageGroup.POST("/send", d.Messages.Send)
		messageGroup.GET("/conversation", d.Messages.Conversation)
		messageGroup.GET("/peers", d.Messages.Peers)
	}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth)
	{
		adminGroup.GET("/users", d.Admin.Roster)
		adminGroup.POST("/users/:id/credits", d.Admin.GrantCredits)
		adminGroup.POST("/users/:id/ban", d.Admin.ToggleBan)
		adminGroup.PATCH("/users/:id", d.Admin.UpdateUser)
	}

	assistGroup := r.Group("/api/assist")
	assistGroup.Use(auth)
	{
		assistGroup.POST("/caption", d.Assist.Caption)
		assistGroup.POST("/reply", d.Assist.Reply)
	}

	return r
}
