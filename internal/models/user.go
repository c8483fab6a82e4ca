package models

import "time"

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:64;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:128;not null" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
	Version   int       `gorm:"default:1" json:"-"`
}

func (User) TableName() string {
	return "users"
}
