package models

import "time"

// Test is a teacher-created test. ID doubles as the public 5-digit code
// students enter to submit answers.
type Test struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatorID int64     `gorm:"not null;index" json:"creator_id"`
	Answer    string    `gorm:"size:500;not null" json:"answer"`
	Status    bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
