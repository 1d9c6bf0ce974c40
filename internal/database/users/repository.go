// Package users provides database operations for credential records.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.FindOne(map[string]any{"email": email})
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/userauth/internal/entities"
)

var (
	// ErrNotFound is returned when no record matches all given predicates.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidField is returned when a lookup or update names a column
	// that does not exist on the users table.
	ErrInvalidField = errors.New("invalid field")
)

// queryableFields are the columns lookups and updates may reference.
// Unknown names fail fast instead of being silently ignored.
var queryableFields = map[string]bool{
	"id":              true,
	"email":           true,
	"hashed_password": true,
	"session_id":      true,
	"reset_token":     true,
	"first_name":      true,
	"last_name":       true,
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func validateFields(fields map[string]any) error {
	for name := range fields {
		if !queryableFields[name] {
			return fmt.Errorf("%w: %q", ErrInvalidField, name)
		}
	}
	return nil
}

// FindOne returns the unique record whose columns match every given
// predicate, or ErrNotFound.
func (r *Repository) FindOne(fields map[string]any) (*entities.User, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	var user entities.User
	err := r.db.Where(fields).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Insert creates a new user record and returns it with its assigned ID.
func (r *Repository) Insert(user *entities.User) (*entities.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Update sets the given columns on the record with the given ID.
func (r *Repository) Update(id uint, fields map[string]any) error {
	if err := validateFields(fields); err != nil {
		return err
	}

	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
