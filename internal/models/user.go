package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity known to the sign-in provider.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"-" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AfterCreate provisions the matching profile row, the way the hosted
// identity provider does with a database trigger.
func (u *User) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&Profile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}).Error
}

// Profile holds the user-facing attributes of an identity.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
