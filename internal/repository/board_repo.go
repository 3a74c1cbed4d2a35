package repository

import (
	"errors"

	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// BoardRepository board data access
type BoardRepository interface {
	Create(board *domain.Board) error
	FindByID(id uint64) (*domain.Board, error)
	FindAll() ([]*domain.Board, error)
	Delete(id uint64) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(board *domain.Board) error {
	err := r.db.Create(board).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrDuplicateBoardName
	}
	return common.WrapStore("create board", err)
}

func (r *boardRepository) FindByID(id uint64) (*domain.Board, error) {
	var board domain.Board
	err := r.db.Where("id = ?", id).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrBoardNotFound
	}
	if err != nil {
		return nil, common.WrapStore("find board", err)
	}
	return &board, nil
}

func (r *boardRepository) FindAll() ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.Order("name ASC").Find(&boards).Error; err != nil {
		return nil, common.WrapStore("list boards", err)
	}
	return boards, nil
}

// Delete removes a board only when it holds no topics. Cascade deletion is
// a collaborator decision; the store refuses to do it implicitly.
func (r *boardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var topicCount int64
		if err := tx.Model(&domain.Topic{}).Where("board_id = ?", id).Count(&topicCount).Error; err != nil {
			return common.WrapStore("count topics", err)
		}
		if topicCount > 0 {
			return common.WrapStore("delete board", errors.New("board still has topics"))
		}
		res := tx.Delete(&domain.Board{}, id)
		if res.Error != nil {
			return common.WrapStore("delete board", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrBoardNotFound
		}
		return nil
	})
}
