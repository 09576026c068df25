package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of the pgx pool the metrics queries need.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Overview is a point-in-time summary of the verification pipeline. Counts
// are computed live from verification_requests; the table stays small enough
// that pre-aggregation is not worth the staleness.
type Overview struct {
	Pending            int     `json:"pending"`
	PendingPreverified int     `json:"pending_preverified"`
	Approved           int     `json:"approved"`
	Rejected           int     `json:"rejected"`
	Superseded         int     `json:"superseded"`
	ApprovalRate       float64 `json:"approval_rate"`
	AvgReviewSeconds   float64 `json:"avg_review_seconds"`
	OldestPendingAge   float64 `json:"oldest_pending_seconds"`
}

// TimelinePoint is one bucket of the submissions timeline.
type TimelinePoint struct {
	Period      time.Time `json:"period"`
	Submitted   int       `json:"submitted"`
	Approved    int       `json:"approved"`
	Rejected    int       `json:"rejected"`
	Preverified int       `json:"preverified"`
}

// Interval buckets supported by Timeline. date_trunc takes the value
// verbatim, so anything outside this set is rejected up front.
var validIntervals = map[string]bool{
	"hour":  true,
	"day":   true,
	"week":  true,
	"month": true,
}

// Repository computes verification pipeline metrics for the admin surface
// and the backlog watcher.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Overview returns current pipeline counts plus review latency. The oldest
// pending age is what the backlog watcher alerts on.
func (r *Repository) Overview(ctx context.Context) (*Overview, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'pending' AND preverified),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'superseded'),
			COALESCE(EXTRACT(EPOCH FROM AVG(reviewed_at - submitted_at) FILTER (WHERE reviewed_at IS NOT NULL)), 0),
			COALESCE(EXTRACT(EPOCH FROM NOW() - MIN(submitted_at) FILTER (WHERE status = 'pending')), 0)
		FROM verification_requests
	`

	var o Overview
	err := r.db.QueryRow(ctx, query).Scan(
		&o.Pending,
		&o.PendingPreverified,
		&o.Approved,
		&o.Rejected,
		&o.Superseded,
		&o.AvgReviewSeconds,
		&o.OldestPendingAge,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics overview: %w", err)
	}

	if decided := o.Approved + o.Rejected; decided > 0 {
		o.ApprovalRate = float64(o.Approved) / float64(decided)
	}

	return &o, nil
}

// Timeline buckets submissions between start and end by the given interval.
func (r *Repository) Timeline(ctx context.Context, start, end time.Time, interval string) ([]TimelinePoint, error) {
	if !validIntervals[interval] {
		return nil, fmt.Errorf("invalid interval %q", interval)
	}

	query := `
		SELECT
			date_trunc($1, submitted_at) AS period,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE preverified)
		FROM verification_requests
		WHERE submitted_at >= $2 AND submitted_at < $3
		GROUP BY period
		ORDER BY period ASC
	`

	rows, err := r.db.Query(ctx, query, interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics timeline: %w", err)
	}
	defer rows.Close()

	var points []TimelinePoint
	for rows.Next() {
		var p TimelinePoint
		if err := rows.Scan(&p.Period, &p.Submitted, &p.Approved, &p.Rejected, &p.Preverified); err != nil {
			return nil, fmt.Errorf("scan timeline point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return points, nil
}
