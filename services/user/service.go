package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	userRepo "reservio/database/repository/user"
	"reservio/models"
	"reservio/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenDuration is the lifetime of an issued session token.
const TokenDuration = 24 * time.Hour

// UserService manages accounts and session tokens. Role-to-permission
// mapping happens at the boundary; the scheduling core only consumes "user
// exists" and the role string.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a member account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("name, email and a password of at least 8 characters are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleMember,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and issues a session token. The token
// hash is cached so it can be revoked before expiry.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Role, TokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	cache := utils.GetAuthCacheClient()
	key := utils.AuthCachePrefix + u.ID
	if err := cache.Set(ctx, key, utils.HashToken(token), TokenDuration).Err(); err != nil {
		return nil, "", fmt.Errorf("failed to cache session: %w", err)
	}
	return u, token, nil
}

// GetByID fetches an account by ID; nil result means the user does not exist.
func (s *DefaultUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}
