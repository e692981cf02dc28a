package api

import (
	"Aidol/internal/api/middleware"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/search", group.PostHandler.SearchPosts)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/:post_id/comments", group.CommentHandler.ListByPost)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:post_id/like", group.LikeHandler.ToggleLike)
			}

			// 发帖与改帖是偶像运营动作，需要管理角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("", group.PostHandler.CreatePost)
				adminGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
				adminGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.Use(middleware.AuthMiddleware())
			{
				commentGroup.POST("", group.CommentHandler.CreateComment)
				commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		replyGroup := apiGroup.Group("/replies")
		replyGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			replyGroup.POST("/suggest", group.ReplyHandler.SuggestReplies)
			replyGroup.POST("", group.ReplyHandler.SendReply)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			mediaGroup.POST("/presign", group.MediaHandler.Presign)
		}
	}

	return r
}
