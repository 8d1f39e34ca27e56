package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"legacyestates/internal/domain"
	"legacyestates/internal/metrics"
	"legacyestates/internal/util"
)

// AuthService implements back-office authentication and user management
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries the issued token
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login checks credentials and issues a JWT
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return nil, NewUnauthorizedError("incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return nil, err
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("user account is inactive")
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.WithContext(ctx).Save(&user)

	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v, staff=%v)", username, user.ID, user.IsAdmin, user.IsStaff)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// CreateUserInput carries the fields for a new back-office user
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName *string
	IsActive bool
	IsAdmin  bool
	IsStaff  bool
}

// CreateUser adds a back-office user (admin only)
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)

	log.Printf("[AUTH] CreateUser request: username=%s, email=%s", username, email)

	if username == "" || email == "" || password == "" {
		return nil, NewBadRequestError("username, email and password are required")
	}

	var existing domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		log.Printf("[AUTH] CreateUser failed: username '%s' already exists", username)
		return nil, NewBadRequestError("username already registered")
	}
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("[AUTH] CreateUser failed: email '%s' already exists", email)
		return nil, NewBadRequestError("email already registered")
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Printf("[AUTH] CreateUser failed: password hashing error: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       in.IsActive,
		IsAdmin:        in.IsAdmin,
		IsStaff:        in.IsStaff,
	}
	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		user.FullName = &fullName
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Printf("[AUTH] CreateUser failed: database error: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AUTH] CreateUser successful: username=%s, id=%d", username, user.ID)
	return &user, nil
}

// ListUsers returns back-office users, newest first
func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	log.Printf("[AUTH] ListUsers request: skip=%d, limit=%d", skip, limit)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(limit)

	var users []domain.User
	if err := query.Find(&users).Error; err != nil {
		log.Printf("[AUTH] ListUsers failed: database error: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	log.Printf("[AUTH] ListUsers successful: returned %d users", len(users))
	return users, nil
}

// GetUser returns one user by id
func (s *AuthService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	log.Printf("[AUTH] GetUser request: id=%d", id)

	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		log.Printf("[AUTH] GetUser failed: database error: %v", err)
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput carries the optional fields of a user update
type UpdateUserInput struct {
	Username *string
	Email    *string
	FullName *string
	Password *string
	IsActive *bool
	IsAdmin  *bool
	IsStaff  *bool
}

// UpdateUser changes the provided fields of a user (admin only)
func (s *AuthService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error) {
	log.Printf("[AUTH] UpdateUser request: id=%d", id)

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		var existing domain.User
		if err := s.db.WithContext(ctx).Where("username = ? AND id != ?", username, id).First(&existing).Error; err == nil {
			return nil, NewBadRequestError("username already taken")
		}
		user.Username = username
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		var existing domain.User
		if err := s.db.WithContext(ctx).Where("email = ? AND id != ?", email, id).First(&existing).Error; err == nil {
			return nil, NewBadRequestError("email already taken")
		}
		user.Email = email
	}
	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		user.FullName = &fullName
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if in.Password != nil {
		hashedPassword, err := util.HashPassword(strings.TrimSpace(*in.Password))
		if err != nil {
			log.Printf("[AUTH] UpdateUser failed: password hashing error: %v", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashedPassword
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Printf("[AUTH] UpdateUser failed: database error: %v", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Printf("[AUTH] UpdateUser successful: id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

// DeleteUser removes a user; self-deletion is rejected
func (s *AuthService) DeleteUser(ctx context.Context, id uint, currentUser *domain.User) error {
	if currentUser == nil {
		return NewUnauthorizedError("not authenticated")
	}
	log.Printf("[AUTH] DeleteUser request: id=%d by user=%s", id, currentUser.Username)

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if user.ID == currentUser.ID {
		log.Printf("[AUTH] DeleteUser failed: user '%s' attempted self-deletion", currentUser.Username)
		return NewBadRequestError("cannot delete your own account")
	}

	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		log.Printf("[AUTH] DeleteUser failed: database error: %v", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Printf("[AUTH] DeleteUser successful: deleted user id=%d, username=%s", user.ID, user.Username)
	return nil
}
