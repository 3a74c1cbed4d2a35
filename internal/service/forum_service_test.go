package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock repositories ---

type mockBoardRepo struct {
	mock.Mock
}

func (m *mockBoardRepo) Create(board *domain.Board) error {
	return m.Called(board).Error(0)
}

func (m *mockBoardRepo) FindByID(id uint64) (*domain.Board, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *mockBoardRepo) FindAll() ([]*domain.Board, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Board), args.Error(1)
}

func (m *mockBoardRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

type mockTopicRepo struct {
	mock.Mock
}

func (m *mockTopicRepo) FindByID(boardID, topicID uint64) (*domain.Topic, error) {
	args := m.Called(boardID, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *mockTopicRepo) ListByBoard(boardID uint64, page, limit int) ([]*domain.TopicSummary, int64, error) {
	args := m.Called(boardID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.TopicSummary), args.Get(1).(int64), args.Error(2)
}

func (m *mockTopicRepo) CreateWithFirstPost(topic *domain.Topic, post *domain.Post) error {
	return m.Called(topic, post).Error(0)
}

func (m *mockTopicRepo) IncrementViews(topicID uint64) error {
	return m.Called(topicID).Error(0)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(id uint64) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) ListByTopic(topicID uint64, page, limit int) ([]*domain.Post, int64, error) {
	args := m.Called(topicID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) CountByTopic(topicID uint64) (int64, error) {
	args := m.Called(topicID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) CreateReply(post *domain.Post) (int64, error) {
	args := m.Called(post)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepo) UpdateMessage(post *domain.Post) error {
	return m.Called(post).Error(0)
}

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) RecordView(ctx context.Context, sessionID string, topicID uint64) (bool, error) {
	args := m.Called(sessionID, topicID)
	return args.Bool(0), args.Error(1)
}

func newService() (*mockBoardRepo, *mockTopicRepo, *mockPostRepo, *mockTracker, ForumService) {
	boards := new(mockBoardRepo)
	topics := new(mockTopicRepo)
	posts := new(mockPostRepo)
	tracker := new(mockTracker)
	return boards, topics, posts, tracker, NewForumService(boards, topics, posts, tracker)
}

var testActor = domain.Actor{ID: 7, Name: "alice"}

// --- Boards ---

func TestCreateBoard_Validation(t *testing.T) {
	boards, _, _, _, svc := newService()

	_, err := svc.CreateBoard(&domain.CreateBoardRequest{
		Name:        "",
		Description: strings.Repeat("x", 201),
	})

	ve, ok := common.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "description")
	boards.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateBoard_MultibyteNameAtLimitAccepted(t *testing.T) {
	boards, _, _, _, svc := newService()
	boards.On("Create", mock.AnythingOfType("*domain.Board")).Return(nil)

	board, err := svc.CreateBoard(&domain.CreateBoardRequest{Name: strings.Repeat("게", 40)})

	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("게", 40), board.Name)
	boards.AssertExpectations(t)
}

func TestCreateBoard_DuplicateName(t *testing.T) {
	boards, _, _, _, svc := newService()
	boards.On("Create", mock.AnythingOfType("*domain.Board")).Return(common.ErrDuplicateBoardName)

	_, err := svc.CreateBoard(&domain.CreateBoardRequest{Name: "Django"})
	assert.ErrorIs(t, err, common.ErrDuplicateBoardName)
}

// --- Topic creation ---

func TestStartTopic_BoardNotFound(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(9)).Return(nil, common.ErrBoardNotFound)

	_, _, err := svc.StartTopic(9, &domain.StartTopicRequest{Subject: "s", Message: "m"}, testActor)
	assert.ErrorIs(t, err, common.ErrBoardNotFound)
	topics.AssertNotCalled(t, "CreateWithFirstPost", mock.Anything, mock.Anything)
}

func TestStartTopic_BlankFieldsWriteNothing(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, Name: "Django"}, nil)

	_, _, err := svc.StartTopic(1, &domain.StartTopicRequest{Subject: "  ", Message: ""}, testActor)

	ve, ok := common.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "subject")
	assert.Contains(t, ve.Fields, "message")
	topics.AssertNotCalled(t, "CreateWithFirstPost", mock.Anything, mock.Anything)
}

func TestStartTopic_OverlongFieldsRejected(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)

	_, _, err := svc.StartTopic(1, &domain.StartTopicRequest{
		Subject: strings.Repeat("s", 256),
		Message: strings.Repeat("m", 4001),
	}, testActor)

	ve, ok := common.AsValidationError(err)
	assert.True(t, ok)
	assert.Len(t, ve.Fields, 2)
	topics.AssertNotCalled(t, "CreateWithFirstPost", mock.Anything, mock.Anything)
}

func TestStartTopic_MultibyteFieldsCountCharacters(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	topics.On("CreateWithFirstPost",
		mock.AnythingOfType("*domain.Topic"),
		mock.AnythingOfType("*domain.Post")).Return(nil)

	// 255 Korean characters are 765 bytes; the subject limit is per
	// character, so this must go through.
	topic, _, err := svc.StartTopic(1, &domain.StartTopicRequest{
		Subject: strings.Repeat("한", 255),
		Message: strings.Repeat("글", 4000),
	}, testActor)

	assert.NoError(t, err)
	assert.Equal(t, strings.Repeat("한", 255), topic.Subject)
	topics.AssertExpectations(t)
}

func TestStartTopic_MultibyteOverLimitRejected(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)

	_, _, err := svc.StartTopic(1, &domain.StartTopicRequest{
		Subject: strings.Repeat("한", 256),
		Message: "m",
	}, testActor)

	ve, ok := common.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "subject")
	topics.AssertNotCalled(t, "CreateWithFirstPost", mock.Anything, mock.Anything)
}

func TestStartTopic_Success(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, Name: "Django"}, nil)
	topics.On("CreateWithFirstPost",
		mock.AnythingOfType("*domain.Topic"),
		mock.AnythingOfType("*domain.Post")).Return(nil)

	before := time.Now().UTC()
	topic, post, err := svc.StartTopic(1, &domain.StartTopicRequest{Subject: "test", Message: "test"}, testActor)

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), topic.BoardID)
	assert.Equal(t, testActor.ID, topic.StarterID)
	assert.Equal(t, uint(0), topic.Views)
	assert.False(t, topic.LastUpdate.Before(before))
	assert.Equal(t, testActor.ID, post.CreatedByID)
	assert.Equal(t, topic.LastUpdate, post.CreatedAt)
	assert.Nil(t, post.UpdatedAt)
	topics.AssertExpectations(t)
}

// --- Replies ---

func TestReply_TopicNotFound(t *testing.T) {
	_, topics, posts, _, svc := newService()
	topics.On("FindByID", uint64(1), uint64(99)).Return(nil, common.ErrTopicNotFound)

	_, err := svc.Reply(1, 99, &domain.ReplyRequest{Message: "hi"}, testActor)
	assert.ErrorIs(t, err, common.ErrTopicNotFound)
	posts.AssertNotCalled(t, "CreateReply", mock.Anything)
}

func TestReply_EmptyMessageWritesNothing(t *testing.T) {
	_, topics, posts, _, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2, BoardID: 1}, nil)

	_, err := svc.Reply(1, 2, &domain.ReplyRequest{Message: "   "}, testActor)

	ve, ok := common.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "message")
	posts.AssertNotCalled(t, "CreateReply", mock.Anything)
}

func TestReply_Success(t *testing.T) {
	_, topics, posts, _, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2, BoardID: 1}, nil)
	posts.On("CreateReply", mock.AnythingOfType("*domain.Post")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Post).ID = 42
		}).
		Return(int64(2), nil)

	before := time.Now().UTC()
	result, err := svc.Reply(1, 2, &domain.ReplyRequest{Message: "second"}, testActor)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, uint64(42), result.Post.ID)
	assert.False(t, result.Post.CreatedAt.Before(before))
	assert.Equal(t, "/boards/1/topics/2/?page=1#42", result.RedirectURL)
	posts.AssertExpectations(t)
}

func TestReply_LandsOnLastPage(t *testing.T) {
	_, topics, posts, _, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2, BoardID: 1}, nil)
	// 21st post spills onto page 2
	posts.On("CreateReply", mock.AnythingOfType("*domain.Post")).Return(int64(21), nil)

	result, err := svc.Reply(1, 2, &domain.ReplyRequest{Message: "spill"}, testActor)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Page)
}

// --- Post editing ---

func TestEditPost_Forbidden(t *testing.T) {
	_, _, posts, _, svc := newService()
	existing := &domain.Post{ID: 5, Message: "original", CreatedByID: 1}
	posts.On("FindByID", uint64(5)).Return(existing, nil)

	_, err := svc.EditPost(5, &domain.EditPostRequest{Message: "hacked"}, testActor)

	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Equal(t, "original", existing.Message)
	assert.Nil(t, existing.UpdatedAt)
	posts.AssertNotCalled(t, "UpdateMessage", mock.Anything)
}

func TestEditPost_Success(t *testing.T) {
	_, _, posts, _, svc := newService()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &domain.Post{ID: 5, Message: "before", CreatedByID: testActor.ID, CreatedAt: created}
	posts.On("FindByID", uint64(5)).Return(existing, nil)
	posts.On("UpdateMessage", mock.AnythingOfType("*domain.Post")).Return(nil)

	post, err := svc.EditPost(5, &domain.EditPostRequest{Message: "after"}, testActor)

	assert.NoError(t, err)
	assert.Equal(t, "after", post.Message)
	assert.NotNil(t, post.UpdatedAt)
	assert.Equal(t, testActor.ID, *post.UpdatedByID)
	assert.Equal(t, created, post.CreatedAt)
	assert.True(t, post.Edited())
	posts.AssertExpectations(t)
}

func TestEditPost_EmptyMessageRejected(t *testing.T) {
	_, _, posts, _, svc := newService()
	existing := &domain.Post{ID: 5, CreatedByID: testActor.ID}
	posts.On("FindByID", uint64(5)).Return(existing, nil)

	_, err := svc.EditPost(5, &domain.EditPostRequest{Message: ""}, testActor)

	_, ok := common.AsValidationError(err)
	assert.True(t, ok)
	posts.AssertNotCalled(t, "UpdateMessage", mock.Anything)
}

// --- Listings ---

func TestListTopics_ReplyCounts(t *testing.T) {
	boards, topics, _, _, svc := newService()
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, Name: "Django"}, nil)
	summaries := []*domain.TopicSummary{
		{Topic: domain.Topic{ID: 1, Subject: "busy"}, ReplyCount: 4},
		{Topic: domain.Topic{ID: 2, Subject: "fresh"}, ReplyCount: 0},
	}
	topics.On("ListByBoard", uint64(1), 1, 20).Return(summaries, int64(2), nil)

	page, err := svc.ListTopics(1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), page.Topics[0].ReplyCount)
	assert.Equal(t, int64(0), page.Topics[1].ReplyCount)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, []int{1}, page.PageRange)
}

func TestListPosts_RecordsViewOncePerSession(t *testing.T) {
	_, topics, posts, tracker, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2, Views: 3}, nil)
	posts.On("ListByTopic", uint64(2), 1, 20).Return([]*domain.Post{{ID: 1}}, int64(1), nil)
	tracker.On("RecordView", "session-a", uint64(2)).Return(true, nil)

	page, err := svc.ListPosts(context.Background(), 1, 2, 1, "session-a")
	assert.NoError(t, err)
	assert.Equal(t, uint(4), page.Topic.Views)
	tracker.AssertExpectations(t)
}

func TestListPosts_RepeatViewNotCounted(t *testing.T) {
	_, topics, posts, tracker, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2, Views: 3}, nil)
	posts.On("ListByTopic", uint64(2), 1, 20).Return([]*domain.Post{{ID: 1}}, int64(1), nil)
	tracker.On("RecordView", "session-a", uint64(2)).Return(false, nil)

	page, err := svc.ListPosts(context.Background(), 1, 2, 1, "session-a")
	assert.NoError(t, err)
	assert.Equal(t, uint(3), page.Topic.Views)
}

func TestListPosts_PageBeyondCountIsNotFound(t *testing.T) {
	_, topics, posts, tracker, svc := newService()
	topics.On("FindByID", uint64(1), uint64(2)).Return(&domain.Topic{ID: 2}, nil)
	posts.On("ListByTopic", uint64(2), 9, 20).Return([]*domain.Post{}, int64(21), nil)
	tracker.On("RecordView", "session-a", uint64(2)).Return(false, nil)

	_, err := svc.ListPosts(context.Background(), 1, 2, 9, "session-a")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
