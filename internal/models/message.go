package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one chat message inside a connection. It can only be created
// while the connection is ACCEPTED; history is immutable afterwards even if
// the connection is later rejected.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	ConnectionID string     `gorm:"index;not null" json:"connectionId"`
	Connection   Connection `gorm:"foreignKey:ConnectionID" json:"-"`

	SenderID string `gorm:"index;not null" json:"senderId"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender"`

	Content string `gorm:"type:text;not null" json:"content"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
