package repositories

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/smart-ats/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	UpdateProfile(id uuid.UUID, profile models.UserProfile) error
	RecordLogin(id uuid.UUID) error
	AddReviewScore(id uuid.UUID, matchScore int) error
	Deactivate(id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create implements UserRepository.
func (r *userRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByID implements UserRepository.
func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}

		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// FindByEmail implements UserRepository.
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}

		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// Update implements UserRepository.
func (r *userRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// UpdateProfile implements UserRepository.
func (r *userRepository) UpdateProfile(id uuid.UUID, profile models.UserProfile) error {
	return r.Update(id, map[string]interface{}{"profile": profile})
}

// RecordLogin implements UserRepository.
func (r *userRepository) RecordLogin(id uuid.UUID) error {
	user, err := r.FindByID(id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	profile := user.Profile
	profile.LastLoginAt = &now

	return r.UpdateProfile(id, profile)
}

// AddReviewScore folds a new review score into the user's rolling statistics.
func (r *userRepository) AddReviewScore(id uuid.UUID, matchScore int) error {
	user, err := r.FindByID(id)
	if err != nil {
		return err
	}

	profile := user.Profile
	newTotal := profile.TotalReviews + 1
	newAvg := ((profile.AverageScore * float64(profile.TotalReviews)) + float64(matchScore)) / float64(newTotal)

	profile.TotalReviews = newTotal
	profile.AverageScore = math.Round(newAvg*100) / 100

	return r.UpdateProfile(id, profile)
}

// Deactivate soft deletes a user.
func (r *userRepository) Deactivate(id uuid.UUID) error {
	return r.Update(id, map[string]interface{}{"is_active": false})
}
