package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionStatus string

const (
	ConnectionPending   ConnectionStatus = "PENDING"
	ConnectionAccepted  ConnectionStatus = "ACCEPTED"
	ConnectionRejected  ConnectionStatus = "REJECTED"
	ConnectionCompleted ConnectionStatus = "COMPLETED"
)

// Terminal reports whether no further transition is accepted from s.
// COMPLETED is reserved for a future completion trigger; it is terminal
// like REJECTED.
func (s ConnectionStatus) Terminal() bool {
	return s == ConnectionRejected || s == ConnectionCompleted
}

// Connection is the bilateral relationship formed around a skill post.
// The approver is always the post's author at creation time; the status
// only ever moves PENDING -> ACCEPTED | REJECTED (-> COMPLETED). Rows are
// never deleted, a rejected connection stays on record.
type Connection struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	SkillPostID string    `gorm:"index;not null" json:"skillPostId"`
	SkillPost   SkillPost `gorm:"foreignKey:SkillPostID" json:"skillPost"`

	RequesterID string `gorm:"index;not null" json:"requesterId"`
	Requester   User   `gorm:"foreignKey:RequesterID" json:"requester"`

	ApproverID string `gorm:"index;not null" json:"approverId"`
	Approver   User   `gorm:"foreignKey:ApproverID" json:"approver"`

	Status ConnectionStatus `gorm:"type:text;default:'PENDING'" json:"status"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// IsParticipant reports whether the user is either party of the connection.
func (c *Connection) IsParticipant(userID string) bool {
	return userID == c.RequesterID || userID == c.ApproverID
}

// OtherParticipant returns the party that is not userID.
func (c *Connection) OtherParticipant(userID string) string {
	if userID == c.RequesterID {
		return c.ApproverID
	}
	return c.RequesterID
}
