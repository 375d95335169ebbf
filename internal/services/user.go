// Package services provides the business logic for the marketplace:
// job posting, the application lifecycle, and notification emission.
package services

import (
	"context"
	"fmt"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/types"
)

// User provides business logic for user operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository) *User {
	return &User{repo: repo}
}

// CreateUser registers a new user. Email addresses are unique; a taken
// address is a conflict, not a validation failure.
func (s *User) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	role, err := models.ParseUserRole(req.Role)
	if err != nil {
		return nil, &types.ValidationError{Field: "role", Reason: err.Error()}
	}
	if req.Name == "" {
		return nil, &types.ValidationError{Field: "name", Reason: "name is required"}
	}
	if req.Email == "" {
		return nil, &types.ValidationError{Field: "email", Reason: "email is required"}
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &types.ConflictError{Reason: fmt.Sprintf("email %s is already registered", req.Email)}
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *User) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers retrieves a paginated list of users, optionally filtered by role
func (s *User) ListUsers(ctx context.Context, role *models.UserRole, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.List(ctx, role, opts)
}
