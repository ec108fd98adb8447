package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile carries the gamification state for a user. Points, rank and the
// streak fields are mutated only by the gamification service; the rank column
// always names the highest tier whose threshold the points satisfy.
type Profile struct {
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName      string     `gorm:"size:100" json:"full_name"`
	Bio           *string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL     *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	Points        int        `gorm:"default:0" json:"points"`
	Rank          string     `gorm:"size:50;default:'New Member'" json:"rank"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	MaxStreak     int        `gorm:"default:0" json:"max_streak"`
	LastLoginDate *time.Time `gorm:"type:date" json:"last_login_date,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsComplete reports whether the profile counts as complete for badge and
// point purposes: full name, bio and avatar all filled in.
func (p *Profile) IsComplete() bool {
	return p.FullName != "" &&
		p.Bio != nil && *p.Bio != "" &&
		p.AvatarURL != nil && *p.AvatarURL != ""
}
