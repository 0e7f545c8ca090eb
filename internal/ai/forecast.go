package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"bitwise74/expense-api/internal/model"
)

const forecastPrompt = `You are a personal finance assistant.
Below is the user's expense history as JSON (amount, category, date) and their monthly budget of %s.
Predict their spending for the next 30 days and answer with a single JSON object and nothing else:
{
  "predictedTotal": number, total expected spend over the next 30 days,
  "topCategories": up to 3 objects {"category": string, "amount": number} with the highest predicted spend,
  "insights": 3 short actionable tips as strings,
  "confidence": number between 0 and 100
}

History:
%s`

type CategoryForecast struct {
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// Forecast is the predicted spend of the next 30 days
type Forecast struct {
	PredictedTotal float64            `json:"predictedTotal"`
	TopCategories  []CategoryForecast `json:"topCategories"`
	Insights       []string           `json:"insights"`
	Confidence     float64            `json:"confidence"`
}

type forecastWire struct {
	PredictedTotal *float64           `json:"predictedTotal" validate:"required,gte=0"`
	TopCategories  []CategoryForecast `json:"topCategories" validate:"required,dive"`
	Insights       []string           `json:"insights" validate:"required,min=1,dive,required"`
	Confidence     *float64           `json:"confidence" validate:"required,gte=0,lte=100"`
}

type historyItem struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

type Forecaster struct {
	Model      Model
	MinHistory int
	MaxHistory int
}

func NewForecaster(m Model, minHistory, maxHistory int) *Forecaster {
	return &Forecaster{Model: m, MinHistory: minHistory, MaxHistory: maxHistory}
}

// Predict forecasts the next 30 days from history. Less than MinHistory
// expenses fail with ErrInsufficientHistory before the model is called. Only
// the MaxHistory most recent expenses are sent.
func (f *Forecaster) Predict(ctx context.Context, history []model.Expense, budget float64) (*Forecast, error) {
	if len(history) < f.MinHistory {
		return nil, fmt.Errorf("%w, at least %d expenses are needed", ErrInsufficientHistory, f.MinHistory)
	}

	recent := slices.Clone(history)
	slices.SortStableFunc(recent, func(a, b model.Expense) int {
		return b.Date.Compare(a.Date)
	})

	if f.MaxHistory > 0 && len(recent) > f.MaxHistory {
		recent = recent[:f.MaxHistory]
	}

	items := make([]historyItem, len(recent))
	for i, e := range recent {
		items[i] = historyItem{
			Amount:   e.Amount,
			Category: e.Category,
			Date:     e.Date.UTC().Format("2006-01-02"),
		}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history, %w", err)
	}

	prompt := fmt.Sprintf(forecastPrompt, formatBudget(budget), payload)

	raw, err := f.Model.Generate(ctx, prompt)
	if err != nil {
		return nil, &UpstreamError{Op: "forecast", Err: err}
	}

	var w forecastWire
	if err := decode("forecast", raw, &w); err != nil {
		return nil, err
	}

	out := &Forecast{
		PredictedTotal: *w.PredictedTotal,
		TopCategories:  w.TopCategories,
		Insights:       make([]string, 0, len(w.Insights)),
		Confidence:     *w.Confidence,
	}

	if len(out.TopCategories) > 3 {
		out.TopCategories = out.TopCategories[:3]
	}

	for _, in := range w.Insights {
		if len(out.Insights) == 3 {
			break
		}
		out.Insights = append(out.Insights, strings.TrimSpace(in))
	}

	return out, nil
}

func formatBudget(b float64) string {
	if b <= 0 {
		return "0 (not set)"
	}

	return fmt.Sprintf("%.2f", b)
}
