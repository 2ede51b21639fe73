package services

import (
	"fmt"

	"test-checker-backend/internal/answerkey"
	"test-checker-backend/internal/models"
	"test-checker-backend/internal/ranking"

	"gorm.io/gorm"
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// HasCompleted reports whether the user already has a result for the test.
// Callers check this before scoring; SaveScored does not re-check.
func (s *ResultService) HasCompleted(userID, testID int64) (bool, error) {
	var count int64
	err := s.db.Model(&models.Result{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return count > 0, nil
}

// SaveScored scores the submission against the key and persists the result.
func (s *ResultService) SaveScored(userID, testID int64, key, submitted answerkey.Key, answersRaw string) (*models.Result, error) {
	correct, total := answerkey.Score(key, submitted)

	result := &models.Result{
		UserID:         userID,
		TestID:         testID,
		CorrectCount:   correct,
		TotalQuestions: total,
		AnswersRaw:     answersRaw,
	}
	if err := s.db.Create(result).Error; err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	return result, nil
}

// ResultsWithUsers returns all scored results for a test joined with the
// submitters' profiles, ordered by correct count descending and submission
// time ascending.
func (s *ResultService) ResultsWithUsers(testID int64) ([]ranking.ScoredResult, error) {
	var results []ranking.ScoredResult
	err := s.db.Table("results").
		Select(`results.user_id,
			users.first_name,
			users.last_name,
			users.phone_number,
			results.correct_count AS correct,
			results.total_questions AS total,
			results.answers_raw,
			results.created_at AS submitted_at`).
		Joins("JOIN users ON users.telegram_id = results.user_id").
		Where("results.test_id = ?", testID).
		Order("results.correct_count DESC, results.created_at ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return results, nil
}

// ParticipantIDs returns the distinct user ids that submitted for a test.
func (s *ResultService) ParticipantIDs(testID int64) ([]int64, error) {
	var ids []int64
	err := s.db.Model(&models.Result{}).
		Where("test_id = ?", testID).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load participant ids: %w", err)
	}
	return ids, nil
}

func (s *ResultService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Result{}).Count(&count).Error
	return count, err
}
