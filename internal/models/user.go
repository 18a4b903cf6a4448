package models

import "time"

const (
	RoleUser   = "user"
	RoleMaster = "master"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string  `gorm:"size:100;not null" json:"first_name"`
	LastName     *string `gorm:"size:100" json:"last_name"`
	Login        string  `gorm:"size:100;uniqueIndex;not null" json:"login"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;default:'user';not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
