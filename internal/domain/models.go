package domain

import (
	"time"
)

// Limits enforced at validation time. They mirror the column widths below.
const (
	BoardNameMaxLen    = 40
	BoardDescMaxLen    = 200
	TopicSubjectMaxLen = 255
	PostMessageMaxLen  = 4000
)

// Actor is an already-authenticated identity supplied by the web layer.
// The core treats it as an opaque reference; it never verifies credentials.
type Actor struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Board represents a top-level forum category
type Board struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(40);uniqueIndex" json:"name"`
	Description string    `gorm:"column:description;type:varchar(200)" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Board) TableName() string { return "boards" }

// Topic represents a discussion thread within a board.
// LastUpdate is set at creation and refreshed on every reply; it drives
// the board listing order. Views is bumped at most once per browsing session.
type Topic struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardID     uint64    `gorm:"column:board_id;index" json:"board_id"`
	Subject     string    `gorm:"column:subject;type:varchar(255)" json:"subject"`
	StarterID   uint64    `gorm:"column:starter_id;index" json:"starter_id"`
	StarterName string    `gorm:"column:starter_name;type:varchar(100)" json:"starter_name"`
	LastUpdate  time.Time `gorm:"column:last_update;index" json:"last_update"`
	Views       uint      `gorm:"column:views;default:0" json:"views"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Topic) TableName() string { return "topics" }

// TopicSummary is a Topic with its computed reply count, as shown on a
// board listing. The starting post does not count as a reply.
type TopicSummary struct {
	Topic
	ReplyCount int64 `gorm:"column:reply_count" json:"reply_count"`
}

// Post represents a message within a topic. The first post starts the
// topic, subsequent posts are replies. UpdatedAt/UpdatedBy are set only
// when the author edits the message; CreatedAt/CreatedBy never change.
type Post struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID       uint64     `gorm:"column:topic_id;index" json:"topic_id"`
	Message       string     `gorm:"column:message;type:varchar(4000)" json:"message"`
	CreatedByID   uint64     `gorm:"column:created_by_id;index" json:"created_by_id"`
	CreatedByName string     `gorm:"column:created_by_name;type:varchar(100)" json:"created_by_name"`
	CreatedAt     time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedByID   *uint64    `gorm:"column:updated_by_id" json:"updated_by_id,omitempty"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Post) TableName() string { return "posts" }

// Edited reports whether the post has been edited at least once.
func (p *Post) Edited() bool { return p.UpdatedAt != nil }
