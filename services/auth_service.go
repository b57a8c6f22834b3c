package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

const welcomeMessage = "welcome back"

// AuthResult is what a successful login hands back to the caller, which owns session creation.
type AuthResult struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// NewUser holds the fields needed to create an account out of band.
type NewUser struct {
	Username string
	Name     string
	Password string
	Status   string
}

// AuthService verifies credentials and provisions accounts.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Authenticate checks username and password against the stored bcrypt hash.
// It fails with ErrNoSuchUser or ErrWrongPassword; it has no side effects.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := findUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrWrongPassword
	}

	return &AuthResult{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Message:  welcomeMessage,
	}, nil
}

// CreateUser stores a new account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if in.Username == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}
	if in.Name == "" {
		in.Name = in.Username
	}

	_, err := findUserByUsername(ctx, s.db, in.Username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, ErrNoSuchUser):
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		Status:       strings.TrimSpace(in.Status),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent create of the same username
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}
