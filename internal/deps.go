package internal

import (
	"time"

	"bitwise74/expense-api/internal/ai"
	"bitwise74/expense-api/internal/service"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/security"

	"gorm.io/gorm"
)

// Settings are the config values handlers need at request time
type Settings struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ResetTokenTTL  time.Duration
	FrontendURL    string
	MaxUploadSize  int64
	MaxUploadFiles int
}

type Deps struct {
	DB         *gorm.DB
	Argon      *security.ArgonHash
	Users      *store.UserStore
	Expenses   *store.ExpenseStore
	Categories *store.CategoryStore
	Scanner    *ai.ReceiptScanner
	Forecaster *ai.Forecaster
	Mailer     service.Mailer
	// Archive is nil unless receipts.archive.enabled is set
	Archive  *service.ReceiptArchive
	Settings Settings
}
