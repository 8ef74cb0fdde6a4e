package types

import (
	"time"
)

// Note belongs to exactly one user. The id and the owner never change after
// creation; only title and content are mutable.
type Note struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"index;not null"`
	User      User
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
