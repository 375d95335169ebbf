// Package repos provides access to the marketplace database entities.
package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/db"
	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/types"
)

// UserRepository provides access to user-related database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user in the database. A unique-key violation on
// the email column surfaces as a ConflictError.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsDuplicateKeyError(err) {
			return &types.ConflictError{Reason: fmt.Sprintf("email %s is already registered", user.Email)}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email. A missing user is not an
// error; the caller gets a nil user instead.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(&models.User{Email: email}).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// List returns a paginated list of users, optionally filtered by role
func (r *UserRepository) List(ctx context.Context, role *models.UserRole, opts *models.ListOptions) ([]models.User, error) {
	opts = opts.WithDefaults()
	var users []models.User

	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}

	err := query.
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.CreatedAtField + " DESC").
		Find(&users).Error
	return users, err
}
