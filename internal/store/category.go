package store

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/expense-api/internal/category"
	"bitwise74/expense-api/internal/model"
	"bitwise74/expense-api/pkg/validators"

	"gorm.io/gorm"
)

var ErrDefaultCategory = &validators.ValidationError{Msg: "default categories can't be deleted"}

type CategoryStore struct {
	db       *gorm.DB
	defaults []string
}

// NewCategoryStore returns a store presenting defaults to every user on top of
// their own categories
func NewCategoryStore(db *gorm.DB, defaults []string) *CategoryStore {
	return &CategoryStore{db: db, defaults: defaults}
}

func (s *CategoryStore) Defaults() []string {
	return s.defaults
}

func (s *CategoryStore) List(ctx context.Context, userID string) ([]category.Entry, error) {
	var custom []model.Category

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&custom).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories, %w", err)
	}

	return category.Merge(s.defaults, custom), nil
}

func (s *CategoryStore) Create(ctx context.Context, userID, name, color string) (*model.Category, error) {
	name = category.Normalize(name)
	if name == "" {
		return nil, validators.ErrCategoryEmpty
	}

	if err := validators.ColorValidator(color); err != nil {
		return nil, err
	}

	if category.IsDefault(name, s.defaults) {
		return nil, ErrCategoryExists
	}

	c := &model.Category{UserID: userID, Name: name}
	if color != "" {
		c.Color = &color
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found bool

		err := tx.Model(&model.Category{}).
			Select("count(*) > 0").
			Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
			Find(&found).
			Error
		if err != nil {
			return err
		}

		if found {
			return ErrCategoryExists
		}

		return tx.Create(c).Error
	})
	if err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create category, %w", err)
	}

	return c, nil
}

func (s *CategoryStore) Delete(ctx context.Context, userID, name string) error {
	name = category.Normalize(name)
	if name == "" {
		return validators.ErrCategoryEmpty
	}

	if category.IsDefault(name, s.defaults) {
		return ErrDefaultCategory
	}

	r := s.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Delete(&model.Category{})
	if r.Error != nil {
		return fmt.Errorf("failed to delete category, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
