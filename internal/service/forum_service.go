package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/openboards/forum-backend/internal/pagination"
	"github.com/openboards/forum-backend/internal/repository"
	"github.com/openboards/forum-backend/internal/viewtrack"
)

// ForumService orchestrates topic creation, reply posting and listing.
// All validation happens before any write; writes go through the
// repositories' transactional operations.
type ForumService interface {
	ListBoards() ([]*domain.Board, error)
	CreateBoard(req *domain.CreateBoardRequest) (*domain.Board, error)
	GetBoard(boardID uint64) (*domain.Board, error)

	ListTopics(boardID uint64, page int) (*domain.BoardPage, error)
	StartTopic(boardID uint64, req *domain.StartTopicRequest, actor domain.Actor) (*domain.Topic, *domain.Post, error)

	// ListPosts returns one page of a topic's posts and counts the view
	// once for the given session.
	ListPosts(ctx context.Context, boardID, topicID uint64, page int, sessionID string) (*domain.TopicPage, error)
	Reply(boardID, topicID uint64, req *domain.ReplyRequest, actor domain.Actor) (*domain.ReplyResult, error)
	EditPost(postID uint64, req *domain.EditPostRequest, actor domain.Actor) (*domain.Post, error)
}

type forumService struct {
	boards  repository.BoardRepository
	topics  repository.TopicRepository
	posts   repository.PostRepository
	tracker viewtrack.Tracker
}

// NewForumService creates a new ForumService
func NewForumService(
	boards repository.BoardRepository,
	topics repository.TopicRepository,
	posts repository.PostRepository,
	tracker viewtrack.Tracker,
) ForumService {
	return &forumService{boards: boards, topics: topics, posts: posts, tracker: tracker}
}

// === Boards ===

func (s *forumService) ListBoards() ([]*domain.Board, error) {
	return s.boards.FindAll()
}

func (s *forumService) CreateBoard(req *domain.CreateBoardRequest) (*domain.Board, error) {
	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields["name"] = "must not be empty"
	} else if utf8.RuneCountInString(name) > domain.BoardNameMaxLen {
		fields["name"] = fmt.Sprintf("must be at most %d characters", domain.BoardNameMaxLen)
	}
	if utf8.RuneCountInString(req.Description) > domain.BoardDescMaxLen {
		fields["description"] = fmt.Sprintf("must be at most %d characters", domain.BoardDescMaxLen)
	}
	if len(fields) > 0 {
		return nil, &common.ValidationError{Fields: fields}
	}

	board := &domain.Board{Name: name, Description: req.Description}
	if err := s.boards.Create(board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *forumService) GetBoard(boardID uint64) (*domain.Board, error) {
	return s.boards.FindByID(boardID)
}

// === Topics ===

func (s *forumService) ListTopics(boardID uint64, page int) (*domain.BoardPage, error) {
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	topics, total, err := s.topics.ListByBoard(boardID, page, pagination.PageSize)
	if err != nil {
		return nil, err
	}
	pageCount := pagination.PageCount(total)
	if !pagination.ValidPage(page, pageCount) {
		return nil, common.ErrNotFound
	}
	return &domain.BoardPage{
		Board:     board,
		Topics:    topics,
		Page:      page,
		PageCount: pageCount,
		PageRange: pagination.PageRange(pageCount),
	}, nil
}

func (s *forumService) StartTopic(boardID uint64, req *domain.StartTopicRequest, actor domain.Actor) (*domain.Topic, *domain.Post, error) {
	// Board existence is checked first so a 404 is not reported as a
	// field problem.
	if _, err := s.boards.FindByID(boardID); err != nil {
		return nil, nil, err
	}

	fields := map[string]string{}
	validateSubject(fields, req.Subject)
	validateMessage(fields, req.Message)
	if len(fields) > 0 {
		return nil, nil, &common.ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	topic := &domain.Topic{
		BoardID:     boardID,
		Subject:     strings.TrimSpace(req.Subject),
		StarterID:   actor.ID,
		StarterName: actor.Name,
		LastUpdate:  now,
		Views:       0,
	}
	post := &domain.Post{
		Message:       req.Message,
		CreatedByID:   actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     now,
	}
	if err := s.topics.CreateWithFirstPost(topic, post); err != nil {
		return nil, nil, err
	}
	return topic, post, nil
}

// === Posts ===

func (s *forumService) ListPosts(ctx context.Context, boardID, topicID uint64, page int, sessionID string) (*domain.TopicPage, error) {
	topic, err := s.topics.FindByID(boardID, topicID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	if sessionID != "" {
		incremented, err := s.tracker.RecordView(ctx, sessionID, topic.ID)
		if err != nil {
			return nil, err
		}
		if incremented {
			topic.Views++
		}
	}

	posts, total, err := s.posts.ListByTopic(topicID, page, pagination.PageSize)
	if err != nil {
		return nil, err
	}
	pageCount := pagination.PageCount(total)
	if !pagination.ValidPage(page, pageCount) {
		return nil, common.ErrNotFound
	}
	return &domain.TopicPage{
		Topic:     topic,
		Posts:     posts,
		Page:      page,
		PageCount: pageCount,
		PageRange: pagination.PageRange(pageCount),
	}, nil
}

func (s *forumService) Reply(boardID, topicID uint64, req *domain.ReplyRequest, actor domain.Actor) (*domain.ReplyResult, error) {
	topic, err := s.topics.FindByID(boardID, topicID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	validateMessage(fields, req.Message)
	if len(fields) > 0 {
		return nil, &common.ValidationError{Fields: fields}
	}

	post := &domain.Post{
		TopicID:       topic.ID,
		Message:       req.Message,
		CreatedByID:   actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     time.Now().UTC(),
	}
	total, err := s.posts.CreateReply(post)
	if err != nil {
		return nil, err
	}

	page := pagination.ReplyDestinationPage(total)
	return &domain.ReplyResult{
		Post: post,
		Page: page,
		RedirectURL: fmt.Sprintf("/boards/%d/topics/%d/?page=%d#%d",
			boardID, topicID, page, post.ID),
	}, nil
}

func (s *forumService) EditPost(postID uint64, req *domain.EditPostRequest, actor domain.Actor) (*domain.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.CreatedByID != actor.ID {
		return nil, common.ErrForbidden
	}

	fields := map[string]string{}
	validateMessage(fields, req.Message)
	if len(fields) > 0 {
		return nil, &common.ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	post.Message = req.Message
	post.UpdatedAt = &now
	post.UpdatedByID = &actor.ID
	if err := s.posts.UpdateMessage(post); err != nil {
		return nil, err
	}
	return post, nil
}

// === Validation ===

// Limits count characters, not bytes, so multibyte text up to the
// declared width passes.

func validateSubject(fields map[string]string, subject string) {
	trimmed := strings.TrimSpace(subject)
	if trimmed == "" {
		fields["subject"] = "must not be empty"
	} else if utf8.RuneCountInString(trimmed) > domain.TopicSubjectMaxLen {
		fields["subject"] = fmt.Sprintf("must be at most %d characters", domain.TopicSubjectMaxLen)
	}
}

func validateMessage(fields map[string]string, message string) {
	if strings.TrimSpace(message) == "" {
		fields["message"] = "must not be empty"
	} else if utf8.RuneCountInString(message) > domain.PostMessageMaxLen {
		fields["message"] = fmt.Sprintf("must be at most %d characters", domain.PostMessageMaxLen)
	}
}
