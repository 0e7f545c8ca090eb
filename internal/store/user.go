package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/expense-api/internal/model"
	"bitwise74/expense-api/pkg/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// NewUserInput is a user about to be registered. PasswordHash must already be
// hashed.
type NewUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Phone        string
}

func (s *UserStore) Create(ctx context.Context, in NewUserInput) (*model.User, error) {
	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	u := &model.User{
		ID:           id,
		Username:     in.Username,
		Email:        validators.NormalizeEmail(in.Email),
		PasswordHash: in.PasswordHash,
	}

	if in.Phone != "" {
		u.Phone = &in.Phone
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken bool

		if err := tx.Model(&model.User{}).
			Select("count(*) > 0").
			Where("email = ?", u.Email).
			Find(&taken).Error; err != nil {
			return err
		}

		if taken {
			return ErrEmailTaken
		}

		if err := tx.Model(&model.User{}).
			Select("count(*) > 0").
			Where("username = ?", in.Username).
			Find(&taken).Error; err != nil {
			return err
		}

		if taken {
			return ErrUsernameTaken
		}

		return tx.Create(u).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return u, nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", validators.NormalizeEmail(email))
}

func (s *UserStore) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &u, nil
}

// GetBudget returns the stored budget, 0 if it was never set
func (s *UserStore) GetBudget(ctx context.Context, userID string) (float64, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Select("id", "budget").
		Where("id = ?", userID).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}

		return 0, fmt.Errorf("failed to fetch budget, %w", err)
	}

	return u.Budget, nil
}

// SetBudget overwrites the budget. Invalid values leave the stored one untouched.
func (s *UserStore) SetBudget(ctx context.Context, userID string, value *float64) error {
	if err := validators.BudgetValidator(value); err != nil {
		return err
	}

	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("budget", *value)
	if r.Error != nil {
		return fmt.Errorf("failed to update budget, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *UserStore) SetResetToken(ctx context.Context, userID, hash string, expiresAt time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token_hash":   hash,
			"reset_token_expiry": expiresAt.UTC(),
		}).
		Error
	if err != nil {
		return fmt.Errorf("failed to store reset token, %w", err)
	}

	return nil
}

func (s *UserStore) ClearResetToken(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		}).
		Error
	if err != nil {
		return fmt.Errorf("failed to clear reset token, %w", err)
	}

	return nil
}

// ResetPassword swaps the password of the user holding an unexpired reset
// token with the given hash. The token can only be used once.
func (s *UserStore) ResetPassword(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("reset_token_hash = ? AND reset_token_expiry > ?", tokenHash, now.UTC()).
			First(&u).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}

			return err
		}

		return tx.Model(&u).Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to reset password, %w", err)
	}

	return &u, nil
}

// ClearExpiredResetTokens removes every reset token that expired before now
func (s *UserStore) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("reset_token_expiry IS NOT NULL AND reset_token_expiry < ?", now.UTC()).
		Updates(map[string]any{
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens, %w", r.Error)
	}

	return r.RowsAffected, nil
}
