package services

import (
	"errors"
	"fmt"

	"test-checker-backend/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get returns the user's profile, or nil when they never registered.
func (s *UserService) Get(telegramID int64) (*models.User, error) {
	var user models.User
	err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// Register stores a new profile or refreshes an existing one.
func (s *UserService) Register(telegramID int64, firstName, lastName, phone string) (*models.User, error) {
	user := &models.User{
		TelegramID:  telegramID,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
	}
	err := s.db.Where("telegram_id = ?", telegramID).
		Assign(models.User{FirstName: firstName, LastName: lastName, PhoneNumber: phone}).
		FirstOrCreate(user).Error
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// IsAdmin is the whole admin check: a boolean flag on the profile.
func (s *UserService) IsAdmin(telegramID int64) bool {
	user, err := s.Get(telegramID)
	if err != nil || user == nil {
		return false
	}
	return user.IsAdmin
}

// DisplayName returns the registered full name, or fallback when the user
// has no profile.
func (s *UserService) DisplayName(telegramID int64, fallback string) string {
	user, err := s.Get(telegramID)
	if err != nil || user == nil || user.FirstName == "" {
		return fallback
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}

// UserIDs returns every registered user id, for admin broadcasts.
func (s *UserService) UserIDs() ([]int64, error) {
	var ids []int64
	err := s.db.Model(&models.User{}).Pluck("telegram_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load user ids: %w", err)
	}
	return ids, nil
}

func (s *UserService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
