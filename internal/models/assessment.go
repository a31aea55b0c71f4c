package models

import (
	"time"
)

type AssessmentKind string

const (
	KindStandard   AssessmentKind = "standard"
	KindCodeReview AssessmentKind = "code_review"
)

// Assessment is an ordered selection of questions published to candidates
// through a shareable link. TotalDuration and MaxScore are derived from the
// question rows and recomputed on every mutation that touches them.
type Assessment struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	CreatorID   uint    `json:"creator_id" gorm:"not null;index"`

	ShareableLink       string         `json:"shareable_link" gorm:"uniqueIndex;not null;size:64"`
	Kind                AssessmentKind `json:"kind" gorm:"default:standard" validate:"omitempty,oneof=standard code_review"`
	ProgrammingLanguage string         `json:"programming_language" gorm:"size:50"`
	DifficultyLevel     string         `json:"difficulty_level" gorm:"size:20" validate:"omitempty,oneof=easy medium hard mixed"`

	// Derived aggregates, stored for cheap reads.
	TotalDuration int `json:"total_duration" gorm:"not null"` // minutes
	MaxScore      int `json:"max_score" gorm:"not null"`

	IsTemplate bool `json:"is_template" gorm:"default:false;index"`
	IsActive   bool `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator   User                 `json:"-" gorm:"foreignKey:CreatorID"`
	Questions []AssessmentQuestion `json:"questions" gorm:"foreignKey:AssessmentID"`

	// Computed fields (not stored)
	QuestionCount int `json:"question_count" gorm:"-"`
	AttemptCount  int `json:"attempt_count" gorm:"-"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// RecomputeAggregates derives TotalDuration and MaxScore from the loaded
// question rows. Callers must have Questions (with Question preloaded)
// populated.
func (a *Assessment) RecomputeAggregates() {
	total := 0
	score := 0
	for i := range a.Questions {
		total += a.Questions[i].EffectiveDuration()
		score += a.Questions[i].Points
	}
	a.TotalDuration = total
	a.MaxScore = score
}
