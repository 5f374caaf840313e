package services

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trackline/task-tracker-api/internal/auth"
	apierrors "github.com/trackline/task-tracker-api/internal/errors"
	"github.com/trackline/task-tracker-api/internal/models"
	"github.com/trackline/task-tracker-api/internal/repository"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// AuthService handles registration, login and the user directory.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.JWTService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// RegisterInput holds the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// AuthResult carries the public user view plus a signed session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a new user and returns a signed token for it.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierrors.New(http.StatusBadRequest, "Name is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apierrors.New(http.StatusBadRequest, "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apierrors.New(http.StatusBadRequest, "Please fill a valid email address")
	}

	if len(input.Password) < minPasswordLength {
		return nil, apierrors.New(http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	role := input.Role
	if role == "" {
		role = models.RoleDeveloper
	}
	if !role.Valid() {
		return nil, apierrors.New(http.StatusBadRequest, "Invalid role")
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, apierrors.New(http.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a fresh token. An
// unknown email and a wrong password fail identically.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(http.StatusBadRequest, "Invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apierrors.New(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		return nil, apierrors.New(http.StatusNotFound, "No users found")
	}

	return users, nil
}
