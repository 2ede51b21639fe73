package services

import (
	"errors"
	"fmt"
	"math/rand"

	"test-checker-backend/internal/answerkey"
	"test-checker-backend/internal/cache"
	"test-checker-backend/internal/models"

	"gorm.io/gorm"
)

var ErrTestNotFound = errors.New("test not found")

// 5-digit public codes, 10000..99999.
const (
	codeMin      = 10000
	codeSpan     = 90000
	codeAttempts = 20
)

type TestService struct {
	db    *gorm.DB
	tests *cache.TTL[*models.Test]
}

func NewTestService(db *gorm.DB, tests *cache.TTL[*models.Test]) *TestService {
	return &TestService{db: db, tests: tests}
}

// CreateTest validates the answer key, allocates a free 5-digit code and
// stores the test. The key is stored in its normalized raw form.
func (s *TestService) CreateTest(creatorID int64, title, rawKey string) (*models.Test, error) {
	normalized, err := answerkey.Normalize(rawKey)
	if err != nil {
		return nil, err
	}

	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	test := &models.Test{
		ID:        code,
		Title:     title,
		CreatorID: creatorID,
		Answer:    normalized,
		Status:    true,
	}
	if err := s.db.Create(test).Error; err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}
	return test, nil
}

func (s *TestService) generateUniqueCode() (int64, error) {
	for i := 0; i < codeAttempts; i++ {
		code := int64(rand.Intn(codeSpan) + codeMin)
		var count int64
		if err := s.db.Model(&models.Test{}).Where("id = ?", code).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("check code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return 0, errors.New("could not allocate a free test code")
}

// GetTest looks a test up by its public code, serving repeated lookups from
// the injected TTL cache.
func (s *TestService) GetTest(code int64) (*models.Test, error) {
	if test, ok := s.tests.Get(code); ok {
		return test, nil
	}

	var test models.Test
	if err := s.db.Where("id = ?", code).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("load test: %w", err)
	}

	s.tests.Set(code, &test)
	return &test, nil
}

// Deactivate closes the test for new submissions and drops it from the
// cache so later lookups see the final state.
func (s *TestService) Deactivate(code int64) (bool, error) {
	result := s.db.Model(&models.Test{}).Where("id = ?", code).Update("status", false)
	if result.Error != nil {
		return false, fmt.Errorf("deactivate test: %w", result.Error)
	}
	s.tests.Invalidate(code)
	return result.RowsAffected > 0, nil
}

// DeleteTest removes a test and all of its results. Admin-only, enforced by
// the caller.
func (s *TestService) DeleteTest(code int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", code).Delete(&models.Result{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", code).Delete(&models.Test{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTestNotFound
		}
		s.tests.Invalidate(code)
		return nil
	})
}

func (s *TestService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Test{}).Count(&count).Error
	return count, err
}
