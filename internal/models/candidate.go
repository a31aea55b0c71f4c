package models

import (
	"time"
)

// Candidate is the directory entry for a person who can be invited to
// assessments. Attempts themselves are keyed by email so anonymous
// shareable-link takers do not need a directory row.
type Candidate struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email     string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
