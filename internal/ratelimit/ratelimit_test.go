package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

func TestSubmissionLimiter_Check(t *testing.T) {
	providerID := uuid.New()

	tests := []struct {
		name    string
		count   int
		limit   int
		wantErr error
	}{
		{
			name:  "under the limit",
			count: 3,
			limit: 10,
		},
		{
			name:    "at the limit",
			count:   10,
			limit:   10,
			wantErr: domain.ErrRateLimitExceeded,
		},
		{
			name:    "over the limit",
			count:   25,
			limit:   10,
			wantErr: domain.ErrRateLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM verification_requests`).
				WithArgs(providerID, pgxmock.AnyArg()).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(tt.count))

			limiter := NewSubmissionLimiter(mock, time.Hour, tt.limit)

			err = limiter.Check(context.Background(), providerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmissionLimiter_DisabledLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	limiter := NewSubmissionLimiter(mock, time.Hour, -1)

	// No query expected: a negative limit skips the database entirely.
	assert.NoError(t, limiter.Check(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionLimiter_Defaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	limiter := NewSubmissionLimiter(mock, 0, 0)

	assert.Equal(t, DefaultWindow, limiter.window)
	assert.Equal(t, DefaultLimit, limiter.limit)
}

func TestSubmissionLimiter_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM verification_requests`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	limiter := NewSubmissionLimiter(mock, time.Hour, 10)

	err = limiter.Check(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRateLimitExceeded)
}
