// Package model defines database models
package model

import "time"

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Phone        *string `json:"phone,omitempty"`
	Budget       float64 `gorm:"not null;default:0" json:"budget"`

	// Only the SHA-256 of the emailed token is stored
	ResetTokenHash   *string    `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Expenses   []Expense  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Categories []Category `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
