package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openboards/forum-backend/internal/handler"
	"github.com/openboards/forum-backend/internal/middleware"
	"github.com/openboards/forum-backend/pkg/authtoken"
)

// Setup configures the forum API routes
func Setup(router *gin.Engine, h *handler.ForumHandler, tokenManager *authtoken.Manager, sessionMaxAge int) {
	api := router.Group("/api/v1")
	auth := middleware.ActorAuth(tokenManager)
	session := middleware.Session(sessionMaxAge)

	boards := api.Group("/boards")
	boards.GET("", h.ListBoards)
	boards.POST("", auth, h.CreateBoard)
	boards.GET("/:board_id", h.GetBoard)

	topics := boards.Group("/:board_id/topics")
	topics.GET("", h.ListTopics)
	topics.POST("", auth, h.StartTopic)

	// Reading a topic counts a view once per browsing session
	topics.GET("/:topic_id/posts", session, h.ListPosts)
	topics.POST("/:topic_id/replies", auth, h.Reply)

	posts := api.Group("/posts")
	posts.PATCH("/:post_id", auth, h.EditPost)
}
