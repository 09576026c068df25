package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

const requestColumns = `
	id, provider_id, provider_name, status, expectation,
	license_ref, license_ocr, identity_ref, identity_ocr,
	additional_notes, preverified, submitted_at, reviewed_at, review_notes
`

// QueueFilter narrows admin queue listings.
type QueueFilter struct {
	Status domain.RequestStatus
	Limit  int
	Offset int
}

type RequestRepository struct {
	pool PgxPool
}

func NewRequestRepository(pool PgxPool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE id = $1
	`

	request, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verification request: %w", err)
	}

	return request, nil
}

// GetLatestByProvider returns the provider's most recent request regardless
// of status, so the collaborator service can show submission progress.
func (r *RequestRepository) GetLatestByProvider(ctx context.Context, providerID uuid.UUID) (*domain.VerificationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE provider_id = $1
		ORDER BY submitted_at DESC
		LIMIT 1
	`

	request, err := scanRequest(r.pool.QueryRow(ctx, query, providerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest verification request: %w", err)
	}

	return request, nil
}

// ListQueue returns requests ordered for admin review: pre-verified first,
// then oldest submissions.
func (r *RequestRepository) ListQueue(ctx context.Context, filter QueueFilter) ([]domain.VerificationRequest, error) {
	status := filter.Status
	if status == "" {
		status = domain.RequestPending
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE status = $1
		ORDER BY preverified DESC, submitted_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, status, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list verification requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.VerificationRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) CountQueue(ctx context.Context, filter QueueFilter) (int, error) {
	status := filter.Status
	if status == "" {
		status = domain.RequestPending
	}

	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM verification_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count verification requests: %w", err)
	}

	return count, nil
}

func scanRequest(row pgx.Row) (*domain.VerificationRequest, error) {
	var request domain.VerificationRequest
	var expectationJSON, licenseOCRJSON, identityOCRJSON []byte

	err := row.Scan(
		&request.ID,
		&request.ProviderID,
		&request.ProviderName,
		&request.Status,
		&expectationJSON,
		&request.LicenseRef,
		&licenseOCRJSON,
		&request.IdentityRef,
		&identityOCRJSON,
		&request.AdditionalNotes,
		&request.Preverified,
		&request.SubmittedAt,
		&request.ReviewedAt,
		&request.ReviewNotes,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(expectationJSON, &request.Expectation); err != nil {
		return nil, fmt.Errorf("unmarshal expectation: %w", err)
	}
	if len(licenseOCRJSON) > 0 {
		if err := json.Unmarshal(licenseOCRJSON, &request.LicenseOCR); err != nil {
			return nil, fmt.Errorf("unmarshal license ocr: %w", err)
		}
	}
	if len(identityOCRJSON) > 0 {
		if err := json.Unmarshal(identityOCRJSON, &request.IdentityOCR); err != nil {
			return nil, fmt.Errorf("unmarshal identity ocr: %w", err)
		}
	}

	return &request, nil
}
