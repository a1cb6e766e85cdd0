package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostType string

const (
	PostTypeOffer PostType = "OFFER"
	PostTypeAsk   PostType = "ASK"
)

// SkillPost advertises a skill a user offers or seeks.
type SkillPost struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	AuthorID string `gorm:"index;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Type        PostType `gorm:"type:text;not null" json:"type"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`

	PosterImageURL string `json:"posterImageUrl"`
	Archived       bool   `gorm:"default:false" json:"archived"`
}

func (p *SkillPost) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
