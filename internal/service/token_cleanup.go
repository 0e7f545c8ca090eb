package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type resetTokenClearer interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// TokenCleanup periodically clears password reset tokens that expired. It
// returns when ctx is done.
func TokenCleanup(ctx context.Context, t time.Duration, users resetTokenClearer) {
	ticker := time.NewTicker(t)
	defer ticker.Stop()

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := users.ClearExpiredResetTokens(ctx, now)
			if err != nil {
				zap.L().Error("Failed to clear expired reset tokens", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Cleared expired reset tokens", zap.Int64("count", n))
			}
		}
	}
}
