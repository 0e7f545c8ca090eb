// Package category holds the category vocabulary of the app: the default
// list shown to every user, the closed set used by receipt scanning and the
// normalization applied to every stored name.
package category

import (
	"slices"
	"strings"

	"bitwise74/expense-api/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults is the list of categories every user has
var Defaults = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Utilities",
	"Healthcare",
	"Shopping",
	"Subscription",
	"Other",
}

// Receipt is the closed set a scanned receipt can be filed under
var Receipt = []string{
	"Food",
	"Travel",
	"Groceries",
	"Bills",
	"Entertainment",
	"Health",
	"Shopping",
	"Education",
	"Other",
}

// Fallback is used for expenses stored without a category
const Fallback = "Other"

// Entry is a category as presented to a user
type Entry struct {
	Name   string  `json:"name"`
	Color  *string `json:"color,omitempty"`
	Custom bool    `json:"custom"`
}

// Normalize trims s, collapses inner whitespace and title cases every word.
// "  eating   OUT " becomes "Eating Out".
func Normalize(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	return cases.Title(language.English).String(strings.Join(fields, " "))
}

// ForExpense normalizes s and falls back to Fallback when it's empty
func ForExpense(s string) string {
	if n := Normalize(s); n != "" {
		return n
	}

	return Fallback
}

// Coerce maps s onto one of the names in set, ignoring case and surrounding
// whitespace. Unknown values return nil.
func Coerce(s string, set []string) *string {
	s = strings.TrimSpace(s)
	for _, c := range set {
		if strings.EqualFold(c, s) {
			out := c
			return &out
		}
	}

	return nil
}

// IsDefault reports whether name matches one of defaults, ignoring case
func IsDefault(name string, defaults []string) bool {
	return Coerce(name, defaults) != nil
}

// Merge returns defaults followed by the custom categories sorted by name.
// Custom rows that collide with a default or with each other (ignoring case)
// are dropped.
func Merge(defaults []string, custom []model.Category) []Entry {
	out := make([]Entry, 0, len(defaults)+len(custom))
	seen := make(map[string]struct{}, len(defaults)+len(custom))

	for _, d := range defaults {
		key := strings.ToLower(d)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, Entry{Name: d})
	}

	sorted := slices.Clone(custom)
	slices.SortFunc(sorted, func(a, b model.Category) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	for _, c := range sorted {
		key := strings.ToLower(c.Name)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, Entry{Name: c.Name, Color: c.Color, Custom: true})
	}

	return out
}
