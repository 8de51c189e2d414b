package models

import (
	"time"

	"github.com/lib/pq"
)

// ContentItem is a news article in the reading feed. BiasRating places the
// source on a -3 (far left) to +3 (far right) scale.
type ContentItem struct {
	ID          uint           `gorm:"primaryKey"`
	Headline    string         `gorm:"size:300;not null"`
	Source      string         `gorm:"size:120;not null"`
	URL         string         `gorm:"size:500;uniqueIndex;not null"`
	Summary     string         `gorm:"type:text"`
	Topics      pq.StringArray `gorm:"type:text[]"`
	BiasRating  float64        `gorm:"not null"`
	PublishedAt time.Time      `gorm:"index"`
	IsActive    bool           `gorm:"default:true;index"`
	CreatedAt   time.Time
}

// ContentActivity is one article view. The bias rating is denormalized at
// write time so the diversity component never joins back to content_items.
type ContentActivity struct {
	ID            uint64    `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;index:idx_content_activity_user_viewed"`
	ContentItemID uint      `gorm:"not null"`
	BiasRating    float64   `gorm:"not null"`
	ViewedAt      time.Time `gorm:"not null;index:idx_content_activity_user_viewed"`
}
