package repository

import (
	"errors"

	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/openboards/forum-backend/internal/pagination"
	"gorm.io/gorm"
)

// PostRepository post data access
type PostRepository interface {
	FindByID(id uint64) (*domain.Post, error)
	// ListByTopic returns one page of a topic's posts ordered by
	// created_at ascending, ties broken by increasing id (commit order).
	ListByTopic(topicID uint64, page, limit int) ([]*domain.Post, int64, error)
	CountByTopic(topicID uint64) (int64, error)
	// CreateReply inserts the post and refreshes the parent topic's
	// last_update in one transaction, returning the topic's post count
	// including the new post.
	CreateReply(post *domain.Post) (int64, error)
	// UpdateMessage sets message, updated_at and updated_by. Creation
	// fields are never touched.
	UpdateMessage(post *domain.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, common.WrapStore("find post", err)
	}
	return &post, nil
}

func (r *postRepository) ListByTopic(topicID uint64, page, limit int) ([]*domain.Post, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Post{}).Where("topic_id = ?", topicID).Count(&total).Error; err != nil {
		return nil, 0, common.WrapStore("count posts", err)
	}

	var posts []*domain.Post
	err := r.db.Where("topic_id = ?", topicID).
		Order("created_at ASC, id ASC").
		Offset(pagination.Offset(page, limit)).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, common.WrapStore("list posts", err)
	}
	return posts, total, nil
}

func (r *postRepository) CountByTopic(topicID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&domain.Post{}).Where("topic_id = ?", topicID).Count(&total).Error
	if err != nil {
		return 0, common.WrapStore("count posts", err)
	}
	return total, nil
}

func (r *postRepository) CreateReply(post *domain.Post) (int64, error) {
	var total int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Topic{}).Where("id = ?", post.TopicID).
			UpdateColumn("last_update", post.CreatedAt).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).Where("topic_id = ?", post.TopicID).Count(&total).Error
	})
	if err != nil {
		return 0, common.WrapStore("create reply", err)
	}
	return total, nil
}

func (r *postRepository) UpdateMessage(post *domain.Post) error {
	err := r.db.Model(&domain.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"message":       post.Message,
			"updated_at":    post.UpdatedAt,
			"updated_by_id": post.UpdatedByID,
		}).Error
	return common.WrapStore("update post", err)
}
