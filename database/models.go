package database

import (
	"time"
)

// Role is an explicit per-user capability level, assigned at registration.
type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:reader"`
	CreatedAt    time.Time

	Posts    []BlogPost `gorm:"foreignKey:AuthorID"`
	Comments []Comment  `gorm:"foreignKey:AuthorID"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type BlogPost struct {
	ID       uint   `gorm:"primarykey"`
	Title    string `gorm:"uniqueIndex;not null"`
	Subtitle string `gorm:"not null"`
	Date     string `gorm:"not null"` // long-form creation date, never changed by edits
	Body     string `gorm:"type:text;not null"`
	ImgURL   string `gorm:"not null"`
	AuthorID uint   `gorm:"index"`

	Author   User      `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}

type Comment struct {
	ID        uint   `gorm:"primarykey"`
	Text      string `gorm:"not null"`
	AuthorID  uint   `gorm:"index"`
	PostID    uint   `gorm:"index"`
	CreatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID"`
}
