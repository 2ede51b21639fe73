package models

import "time"

type User struct {
	TelegramID  int64     `gorm:"primaryKey" json:"telegram_id"`
	FirstName   string    `gorm:"size:255" json:"first_name"`
	LastName    string    `gorm:"size:255" json:"last_name"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}
