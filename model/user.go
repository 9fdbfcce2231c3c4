package model

import "time"

type User struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	Email     string `gorm:"unique;not null;size:255"`
	Username  string `gorm:"unique;not null;size:30"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;default:user;size:20"`
	Bio       string `gorm:"type:text"`
	AvatarURL string `gorm:"size:500"`
	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PasswordResetCode struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	UserID    string    `gorm:"not null;index"`
	Code      string    `gorm:"not null;size:6"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}
