package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local shadow of an identity-provider account. ClerkUserID is
// the stable subject the provider asserts; everything else is optional until
// the user finishes onboarding.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ClerkUserID string  `gorm:"uniqueIndex;not null" json:"clerkUserId"`
	Username    *string `gorm:"uniqueIndex" json:"username"`

	// Last synced device location, used for the nearby-skills search.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DisplayName returns the chosen username, or empty while pre-onboarding.
func (u *User) DisplayName() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}

// HasLocation reports whether the user has ever synced a position.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
