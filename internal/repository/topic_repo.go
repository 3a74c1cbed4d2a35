package repository

import (
	"errors"

	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/openboards/forum-backend/internal/pagination"
	"gorm.io/gorm"
)

// TopicRepository topic data access
type TopicRepository interface {
	FindByID(boardID, topicID uint64) (*domain.Topic, error)
	// ListByBoard returns one page of a board's topics ordered by
	// last_update descending, each annotated with its reply count
	// (post count minus the starting post).
	ListByBoard(boardID uint64, page, limit int) ([]*domain.TopicSummary, int64, error)
	// CreateWithFirstPost persists a topic and its starting post as a
	// single transaction. A topic never exists without a post.
	CreateWithFirstPost(topic *domain.Topic, post *domain.Post) error
	// IncrementViews bumps the view counter with a single atomic UPDATE.
	IncrementViews(topicID uint64) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) FindByID(boardID, topicID uint64) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Where("board_id = ? AND id = ?", boardID, topicID).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrTopicNotFound
	}
	if err != nil {
		return nil, common.WrapStore("find topic", err)
	}
	return &topic, nil
}

func (r *topicRepository) ListByBoard(boardID uint64, page, limit int) ([]*domain.TopicSummary, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Topic{}).Where("board_id = ?", boardID).Count(&total).Error; err != nil {
		return nil, 0, common.WrapStore("count topics", err)
	}

	var topics []*domain.TopicSummary
	err := r.db.Model(&domain.Topic{}).
		Select("topics.*, (SELECT COUNT(*) FROM posts WHERE posts.topic_id = topics.id) - 1 AS reply_count").
		Where("board_id = ?", boardID).
		Order("last_update DESC").
		Offset(pagination.Offset(page, limit)).Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, 0, common.WrapStore("list topics", err)
	}
	return topics, total, nil
}

func (r *topicRepository) CreateWithFirstPost(topic *domain.Topic, post *domain.Post) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(topic).Error; err != nil {
			return err
		}
		post.TopicID = topic.ID
		return tx.Create(post).Error
	})
	return common.WrapStore("create topic", err)
}

func (r *topicRepository) IncrementViews(topicID uint64) error {
	err := r.db.Model(&domain.Topic{}).Where("id = ?", topicID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	return common.WrapStore("increment views", err)
}
