package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/openboards/forum-backend/internal/middleware"
	"github.com/openboards/forum-backend/internal/service"
)

// ForumHandler handles the forum API endpoints
type ForumHandler struct {
	forum service.ForumService
}

// NewForumHandler creates a new ForumHandler
func NewForumHandler(forum service.ForumService) *ForumHandler {
	return &ForumHandler{forum: forum}
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid "+param, err)
		return 0, false
	}
	return id, true
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// === Boards ===

// ListBoards handles GET /api/v1/boards
func (h *ForumHandler) ListBoards(c *gin.Context) {
	boards, err := h.forum.ListBoards()
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, boards, nil)
}

// CreateBoard handles POST /api/v1/boards
func (h *ForumHandler) CreateBoard(c *gin.Context) {
	var req domain.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "malformed request body", err)
		return
	}
	board, err := h.forum.CreateBoard(&req)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, board)
}

// GetBoard handles GET /api/v1/boards/:board_id
func (h *ForumHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	board, err := h.forum.GetBoard(boardID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, board, nil)
}

// === Topics ===

// ListTopics handles GET /api/v1/boards/:board_id/topics
func (h *ForumHandler) ListTopics(c *gin.Context) {
	boardID, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	page, err := h.forum.ListTopics(boardID, parsePage(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, page, &common.Meta{
		Page:      page.Page,
		Limit:     len(page.Topics),
		PageCount: page.PageCount,
		PageRange: page.PageRange,
	})
}

// StartTopic handles POST /api/v1/boards/:board_id/topics
func (h *ForumHandler) StartTopic(c *gin.Context) {
	boardID, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "actor required", nil)
		return
	}

	var req domain.StartTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "malformed request body", err)
		return
	}

	topic, post, err := h.forum.StartTopic(boardID, &req, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, gin.H{"topic": topic, "first_post": post})
}

// === Posts ===

// ListPosts handles GET /api/v1/boards/:board_id/topics/:topic_id/posts
func (h *ForumHandler) ListPosts(c *gin.Context) {
	boardID, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	topicID, ok := parseID(c, "topic_id")
	if !ok {
		return
	}

	sessionID := middleware.GetSessionID(c)
	page, err := h.forum.ListPosts(c.Request.Context(), boardID, topicID, parsePage(c), sessionID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, page, &common.Meta{
		Page:      page.Page,
		Limit:     len(page.Posts),
		PageCount: page.PageCount,
		PageRange: page.PageRange,
	})
}

// Reply handles POST /api/v1/boards/:board_id/topics/:topic_id/replies
func (h *ForumHandler) Reply(c *gin.Context) {
	boardID, ok := parseID(c, "board_id")
	if !ok {
		return
	}
	topicID, ok := parseID(c, "topic_id")
	if !ok {
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "actor required", nil)
		return
	}

	var req domain.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "malformed request body", err)
		return
	}

	result, err := h.forum.Reply(boardID, topicID, &req, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, result)
}

// EditPost handles PATCH /api/v1/posts/:post_id
func (h *ForumHandler) EditPost(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "actor required", nil)
		return
	}

	var req domain.EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "malformed request body", err)
		return
	}

	post, err := h.forum.EditPost(postID, &req, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}
