package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/permission"
)

type User struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	Username  *string         `gorm:"uniqueIndex" json:"username,omitempty"`
	Email     string          `gorm:"uniqueIndex;not null" json:"email"`
	FirstName *string         `json:"first_name,omitempty"`
	LastName  *string         `json:"last_name,omitempty"`
	Bio       *string         `gorm:"type:text" json:"bio,omitempty"`
	Role      permission.Role `gorm:"type:varchar(16);default:'user';not null" json:"role"`

	// ConfirmationCode is the currently live passwordless login code. Blank
	// until the user requests one; each new request overwrites it.
	ConfirmationCode string `gorm:"default:'';not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set a UUID before creating a User.
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
