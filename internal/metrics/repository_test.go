package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overviewColumns = []string{
	"pending", "pending_preverified", "approved", "rejected", "superseded",
	"avg_review_seconds", "oldest_pending_seconds",
}

func TestRepository_Overview(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      *Overview
		wantErr   bool
	}{
		{
			name: "computes approval rate from decided requests",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(overviewColumns).
					AddRow(5, 2, 30, 10, 3, 3600.0, 7200.0)
				mock.ExpectQuery(`SELECT\s+COUNT\(\*\) FILTER`).
					WillReturnRows(rows)
			},
			want: &Overview{
				Pending:            5,
				PendingPreverified: 2,
				Approved:           30,
				Rejected:           10,
				Superseded:         3,
				ApprovalRate:       0.75,
				AvgReviewSeconds:   3600.0,
				OldestPendingAge:   7200.0,
			},
		},
		{
			name: "empty pipeline has zero approval rate",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(overviewColumns).
					AddRow(0, 0, 0, 0, 0, 0.0, 0.0)
				mock.ExpectQuery(`SELECT\s+COUNT\(\*\) FILTER`).
					WillReturnRows(rows)
			},
			want: &Overview{},
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT\s+COUNT\(\*\) FILTER`).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRepository(mock)
			got, err := repo.Overview(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Timeline(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("buckets submissions by day", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"period", "submitted", "approved", "rejected", "preverified"}).
			AddRow(start, 4, 2, 1, 3).
			AddRow(start.AddDate(0, 0, 1), 6, 5, 0, 4)

		mock.ExpectQuery(`date_trunc\(\$1, submitted_at\)`).
			WithArgs("day", start, end).
			WillReturnRows(rows)

		repo := NewRepository(mock)
		points, err := repo.Timeline(context.Background(), start, end, "day")
		require.NoError(t, err)

		require.Len(t, points, 2)
		assert.Equal(t, 4, points[0].Submitted)
		assert.Equal(t, 2, points[0].Approved)
		assert.Equal(t, 5, points[1].Approved)
		assert.Equal(t, 4, points[1].Preverified)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown interval before touching the database", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewRepository(mock)
		_, err = repo.Timeline(context.Background(), start, end, "decade; DROP TABLE verification_requests")
		require.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
