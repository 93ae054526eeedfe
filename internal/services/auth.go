package services

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
)

type AuthService interface {
	Register(req *models.SignupRequest) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUser(userID uuid.UUID) (*models.User, error)
	UpdateProfile(userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register implements AuthService.
func (a *authService) Register(req *models.SignupRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format")
	}

	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("first name and last name are required")
	}

	// Fail fast on duplicates; the unique index is the real guarantee.
	if _, err := a.userRepo.FindByEmail(email); err == nil {
		return nil, fmt.Errorf("user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
		Profile:      models.UserProfile{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := a.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login implements AuthService.
func (a *authService) Login(email, password string) (*models.User, error) {
	user, err := a.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := a.userRepo.RecordLogin(user.ID); err != nil {
		// Login still succeeds; the timestamp is advisory.
		return user, nil
	}

	return a.userRepo.FindByID(user.ID)
}

// GetUser implements AuthService.
func (a *authService) GetUser(userID uuid.UUID) (*models.User, error) {
	return a.userRepo.FindByID(userID)
}

// UpdateProfile implements AuthService. Email, password and timestamps are
// not updatable through this path.
func (a *authService) UpdateProfile(userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != "" {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != "" {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := a.userRepo.Update(userID, updates); err != nil {
		return nil, err
	}

	return a.userRepo.FindByID(userID)
}
