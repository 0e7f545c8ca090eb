package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bitwise74/expense-api/internal/category"
	"bitwise74/expense-api/internal/model"
	"bitwise74/expense-api/pkg/validators"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	dayLayout     = "2006-01-02"
	MaxListLimit  = 250
	MaxTrendDays  = 366
	DefaultWindow = 30
)

var ValidSortOpts = map[string]string{
	"newest":      "date desc, id desc",
	"oldest":      "date asc, id asc",
	"amount-asc":  "amount asc, id asc",
	"amount-desc": "amount desc, id desc",
}

var (
	ErrInvalidSort   = &validators.ValidationError{Msg: "invalid sorting option"}
	ErrInvalidWindow = &validators.ValidationError{Msg: fmt.Sprintf("days must be between 1 and %d", MaxTrendDays)}
)

type ExpenseStore struct {
	db  *gorm.DB
	Now func() time.Time
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db, Now: time.Now}
}

// ExpenseInput holds the fields of a new expense. Empty category falls back to
// Other and a nil date to now.
type ExpenseInput struct {
	Description string
	Amount      *float64
	Category    string
	Date        *time.Time
}

// ExpensePatch holds the fields to change, nil fields are left alone
type ExpensePatch struct {
	Description *string
	Amount      *float64
	Category    *string
	Date        *time.Time
}

type ExpenseFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
	Sort     string
}

func (s *ExpenseStore) Create(ctx context.Context, userID string, in ExpenseInput) (*model.Expense, error) {
	if err := validators.DescriptionValidator(in.Description); err != nil {
		return nil, err
	}

	if err := validators.AmountValidator(in.Amount); err != nil {
		return nil, err
	}

	date := s.Now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	e := &model.Expense{
		UserID:      userID,
		Description: in.Description,
		Amount:      *in.Amount,
		Category:    category.ForExpense(in.Category),
		Date:        date.UTC(),
	}

	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create expense, %w", err)
	}

	return e, nil
}

// Get returns the expense with the given id. ErrForbidden is returned when it
// belongs to someone else.
func (s *ExpenseStore) Get(ctx context.Context, userID string, id uint) (*model.Expense, error) {
	var e model.Expense

	err := s.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch expense, %w", err)
	}

	if e.UserID != userID {
		return nil, ErrForbidden
	}

	return &e, nil
}

func (s *ExpenseStore) List(ctx context.Context, userID string, f ExpenseFilter) ([]model.Expense, error) {
	if f.Sort == "" {
		f.Sort = "newest"
	}

	order, ok := ValidSortOpts[f.Sort]
	if !ok {
		return nil, ErrInvalidSort
	}

	if f.Limit <= 0 || f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if f.Category != "" {
		q = q.Where("category = ?", category.Normalize(f.Category))
	}

	if f.From != nil {
		q = q.Where("date >= ?", f.From.UTC())
	}

	if f.To != nil {
		q = q.Where("date <= ?", f.To.UTC())
	}

	entries := []model.Expense{}

	err := q.
		Order(order).
		Offset(max(f.Page, 0) * f.Limit).
		Limit(f.Limit).
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses, %w", err)
	}

	return entries, nil
}

// Recent returns the n latest expenses by date
func (s *ExpenseStore) Recent(ctx context.Context, userID string, n int) ([]model.Expense, error) {
	entries := []model.Expense{}

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, id desc").
		Limit(n).
		Find(&entries).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent expenses, %w", err)
	}

	return entries, nil
}

func (s *ExpenseStore) Update(ctx context.Context, userID string, id uint, p ExpensePatch) (*model.Expense, error) {
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if p.Description != nil {
		if err := validators.DescriptionValidator(*p.Description); err != nil {
			return nil, err
		}
		e.Description = *p.Description
	}

	if p.Amount != nil {
		if err := validators.AmountValidator(p.Amount); err != nil {
			return nil, err
		}
		e.Amount = *p.Amount
	}

	if p.Category != nil {
		e.Category = category.ForExpense(*p.Category)
	}

	if p.Date != nil && !p.Date.IsZero() {
		e.Date = p.Date.UTC()
	}

	err = s.db.WithContext(ctx).
		Model(e).
		Where("user_id = ?", userID).
		Select("description", "amount", "category", "date", "updated_at").
		Updates(e).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update expense, %w", err)
	}

	return e, nil
}

func (s *ExpenseStore) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Expense{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete expense, %w", err)
	}

	return nil
}

type categoryTotal struct {
	Category string
	Total    float64
}

// SumByCategory groups the user's expenses by category. Totals are rounded to
// cents.
func (s *ExpenseStore) SumByCategory(ctx context.Context, userID string) (*model.CategoryStats, error) {
	var rows []categoryTotal

	err := s.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category, %w", err)
	}

	stats := &model.CategoryStats{ByCategory: make(map[string]float64, len(rows))}
	total := decimal.Zero

	for _, r := range rows {
		d := decimal.NewFromFloat(r.Total).Round(2)
		stats.ByCategory[r.Category] = d.InexactFloat64()
		total = total.Add(d)
	}

	stats.Total = total.InexactFloat64()
	return stats, nil
}

type datedAmount struct {
	Date   time.Time
	Amount float64
}

// DailyTrend buckets the user's expenses by UTC calendar day over the last
// days days, today included. Days without expenses are left out unless
// zeroFill is set.
func (s *ExpenseStore) DailyTrend(ctx context.Context, userID string, days int, zeroFill bool) ([]model.DailyTotal, error) {
	if days <= 0 || days > MaxTrendDays {
		return nil, ErrInvalidWindow
	}

	now := s.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1)

	var rows []datedAmount

	err := s.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("date, amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by day, %w", err)
	}

	buckets := make(map[string]decimal.Decimal)
	for _, r := range rows {
		key := r.Date.UTC().Format(dayLayout)
		buckets[key] = buckets[key].Add(decimal.NewFromFloat(r.Amount))
	}

	if zeroFill {
		out := make([]model.DailyTotal, 0, days)
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(dayLayout)
			out = append(out, model.DailyTotal{Date: key, Total: buckets[key].Round(2).InexactFloat64()})
		}

		return out, nil
	}

	out := make([]model.DailyTotal, 0, len(buckets))
	for k, v := range buckets {
		out = append(out, model.DailyTotal{Date: k, Total: v.Round(2).InexactFloat64()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
