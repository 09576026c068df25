package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// DB interface for database operations
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SubmissionLimiter caps how many verification requests a provider may file
// inside a sliding window. It counts stored requests directly, so no
// separate counter table needs maintaining.
type SubmissionLimiter struct {
	db     DB
	window time.Duration
	limit  int
}

const (
	DefaultWindow = 24 * time.Hour
	DefaultLimit  = 10
)

func NewSubmissionLimiter(db DB, window time.Duration, limit int) *SubmissionLimiter {
	if window == 0 {
		window = DefaultWindow
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	return &SubmissionLimiter{
		db:     db,
		window: window,
		limit:  limit,
	}
}

// Check returns domain.ErrRateLimitExceeded when the provider has already
// filed the maximum number of requests in the current window. A limit of -1
// disables the check.
func (l *SubmissionLimiter) Check(ctx context.Context, providerID uuid.UUID) error {
	if l.limit < 0 {
		return nil
	}

	windowStart := time.Now().Add(-l.window)

	query := `
		SELECT COUNT(*)
		FROM verification_requests
		WHERE provider_id = $1 AND submitted_at > $2
	`

	var count int
	if err := l.db.QueryRow(ctx, query, providerID, windowStart).Scan(&count); err != nil {
		return fmt.Errorf("count recent submissions: %w", err)
	}

	if count >= l.limit {
		return domain.ErrRateLimitExceeded
	}

	return nil
}
