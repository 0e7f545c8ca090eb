package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitwise74/expense-api/internal/category"
)

const receiptPrompt = `You are reading a photo of a shopping receipt.
Extract the following fields and answer with a single JSON object and nothing else:
{
  "amount": number, the grand total paid, or null if unreadable,
  "date": string in YYYY-MM-DD format, or null if unreadable,
  "merchant": string, the store name, or "" if unreadable,
  "category": one of %s, or null if none fits
}`

// Receipt is a best effort guess of an expense read from a receipt image
type Receipt struct {
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
	Merchant string   `json:"merchant"`
	Category *string  `json:"category"`
}

type receiptWire struct {
	Amount   *float64 `json:"amount" validate:"omitempty,gte=0"`
	Date     *string  `json:"date"`
	Merchant *string  `json:"merchant"`
	Category *string  `json:"category"`
}

type ReceiptScanner struct {
	Model      Model
	Categories []string
}

func NewReceiptScanner(m Model, categories []string) *ReceiptScanner {
	return &ReceiptScanner{Model: m, Categories: categories}
}

func (s *ReceiptScanner) prompt() string {
	quoted := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		quoted[i] = `"` + c + `"`
	}

	return fmt.Sprintf(receiptPrompt, strings.Join(quoted, ", "))
}

// Scan asks the model to read img. Categories outside the scanner's set and
// dates not in YYYY-MM-DD are returned as nil.
func (s *ReceiptScanner) Scan(ctx context.Context, img Image) (*Receipt, error) {
	if len(img.Data) == 0 {
		return nil, errors.New("empty image")
	}

	raw, err := s.Model.Generate(ctx, s.prompt(), img)
	if err != nil {
		return nil, &UpstreamError{Op: "receipt scan", Err: err}
	}

	var w receiptWire
	if err := decode("receipt scan", raw, &w); err != nil {
		return nil, err
	}

	r := &Receipt{Amount: w.Amount}

	if w.Merchant != nil {
		r.Merchant = strings.TrimSpace(*w.Merchant)
	}

	if w.Category != nil {
		r.Category = category.Coerce(*w.Category, s.Categories)
	}

	if w.Date != nil {
		d := strings.TrimSpace(*w.Date)
		if _, err := time.Parse("2006-01-02", d); err == nil {
			r.Date = &d
		}
	}

	return r, nil
}
