package models

import (
	"time"

	"gorm.io/datatypes"
)

// Content is a keyed CMS fragment (help text, landing copy, email bodies)
// editable without a deploy.
type Content struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Key         string         `json:"key" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Title       string         `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Content     string         `json:"content" gorm:"type:text;not null" validate:"required"`
	ContentType string         `json:"content_type" gorm:"size:50;default:markdown" validate:"omitempty,oneof=markdown html text"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Language    string         `json:"language" gorm:"size:10;default:en;index"`
	IsActive    bool           `json:"is_active" gorm:"default:true;index"`
	MetaData    datatypes.JSON `json:"meta_data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}

// Page is a structured CMS page assembled from ordered sections.
type Page struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Slug           string         `json:"slug" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Title          string         `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description    *string        `json:"description" gorm:"type:text"`
	Content        *string        `json:"content" gorm:"type:text"`
	PageType       string         `json:"page_type" gorm:"size:50;default:page"`
	Language       string         `json:"language" gorm:"size:10;default:en;index"`
	IsPublished    bool           `json:"is_published" gorm:"default:false;index"`
	SeoTitle       *string        `json:"seo_title" gorm:"size:200"`
	SeoDescription *string        `json:"seo_description" gorm:"type:text"`
	MetaData       datatypes.JSON `json:"meta_data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []Section `json:"sections" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

func (Page) TableName() string {
	return "pages"
}

type Section struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	PageID      uint           `json:"page_id" gorm:"not null;index"`
	SectionKey  string         `json:"section_key" gorm:"not null;size:100" validate:"required,max=100"`
	Title       *string        `json:"title" gorm:"size:200"`
	Content     string         `json:"content" gorm:"type:text;not null" validate:"required"`
	ContentType string         `json:"content_type" gorm:"size:50;default:markdown"`
	Order       int            `json:"order" gorm:"not null;default:0"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	MetaData    datatypes.JSON `json:"meta_data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Section) TableName() string {
	return "sections"
}
