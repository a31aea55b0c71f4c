package models

import (
	"time"
)

type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Email          string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	HashedPassword string `json:"-" gorm:"not null;size:255"`
	FirstName      string `json:"first_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	IsVerified     bool   `json:"is_verified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// VerificationToken stores only the SHA-256 digest of an issued email
// verification token. The raw token leaves the system once, in the email.
type VerificationToken struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	TokenHash  string     `json:"-" gorm:"uniqueIndex;not null;size:64"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null;index"`
	ConsumedAt *time.Time `json:"consumed_at"`
	CreatedAt  time.Time  `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

func (t *VerificationToken) Usable(now time.Time) bool {
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
