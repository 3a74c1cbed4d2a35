package migration

import (
	"github.com/openboards/forum-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies the forum schema. View markers live in Redis and have no
// table here.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Board{},
		&domain.Topic{},
		&domain.Post{},
	)
}
