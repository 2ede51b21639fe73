package models

import "time"

// Result is one graded submission. A user gets exactly one per test; the
// duplicate check happens before scoring.
type Result struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_result_user_test" json:"user_id"`
	TestID         int64     `gorm:"not null;uniqueIndex:idx_result_user_test;index" json:"test_id"`
	CorrectCount   int       `gorm:"not null" json:"correct_count"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	AnswersRaw     string    `gorm:"size:500" json:"answers_raw"`
	CreatedAt      time.Time `json:"created_at"`
}
