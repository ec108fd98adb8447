package model

import (
	"time"

	"github.com/google/uuid"
)

type PointLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_user_date,priority:1;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Source    string    `gorm:"size:50;not null" json:"source"` // 'post_published', 'comment_added', 'daily_login'
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"index:idx_user_date,priority:2" json:"created_at"`
}

// EarnedBadge is append-only. The composite primary key makes a second award
// of the same badge a conflict, which the sweep treats as already-earned.
type EarnedBadge struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BadgeID   string    `gorm:"size:50;primaryKey" json:"badge_id"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}
