package model

import "time"

// Category is a user defined category. The defaults are never stored.
type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_category;not null" json:"-"`
	Name      string    `gorm:"uniqueIndex:idx_user_category;not null" json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
