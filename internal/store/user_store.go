package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lms-portal/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore owns the users table and password verification.
type UserStore struct {
	db   *gorm.DB
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db, cost: bcrypt.DefaultCost}
}

// Register creates a new active user. The existence check and the insert
// share one transaction, and a unique-index violation from a concurrent
// insert is reported as ErrDuplicateUsername too.
func (s *UserStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(user).Error
	})
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, ErrDuplicateUsername
	default:
		return nil, fmt.Errorf("create user: %w", err)
	}
}

// Authenticate returns the active user matching username and password.
// Every rejection is ErrInvalidCredentials so callers cannot tell which check failed.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Spend the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID loads a user by primary key.
func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

// SetActive toggles the active flag for username.
func (s *UserStore) SetActive(ctx context.Context, username string, active bool) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("update user %q: %w", username, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}
