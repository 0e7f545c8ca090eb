package model

// DailyTotal is the amount spent on a single UTC calendar day
type DailyTotal struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Total float64 `json:"total"`
}

// CategoryStats is the response of the per category aggregation
type CategoryStats struct {
	ByCategory map[string]float64 `json:"byCategory"`
	Total      float64            `json:"total"`
}
