package types

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `gorm:"primarykey"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Email     string    `gorm:"not null"`
	Password  string
	Role      string
	Notes     []Note    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u User) IsSet() bool {
	return u.Username != ""
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
