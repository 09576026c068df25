package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// TrustRepository owns the provider trust state machine. Every transition
// runs in one transaction and re-checks its status precondition after taking
// the provider row lock, so concurrent decide/revoke/update calls serialize
// instead of clobbering each other.
type TrustRepository struct {
	pool PgxPool
}

func NewTrustRepository(pool PgxPool) *TrustRepository {
	return &TrustRepository{pool: pool}
}

func (r *TrustRepository) GetState(ctx context.Context, providerID uuid.UUID) (*domain.ProviderTrustState, error) {
	query := `
		SELECT provider_id, status, is_public, last_approved_snapshot,
		       revoked_at, revoked_reason, created_at, updated_at
		FROM provider_trust_states
		WHERE provider_id = $1
	`

	state, err := scanTrustState(r.pool.QueryRow(ctx, query, providerID))
	if errors.Is(err, pgx.ErrNoRows) {
		// Providers without a row have never entered the pipeline.
		return &domain.ProviderTrustState{
			ProviderID: providerID,
			Status:     domain.StatusNone,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trust state: %w", err)
	}

	return state, nil
}

func (r *TrustRepository) GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error) {
	query := `
		SELECT provider_id, name, fields, created_at, updated_at
		FROM provider_profiles
		WHERE provider_id = $1
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, providerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get provider profile: %w", err)
	}

	return profile, nil
}

func (r *TrustRepository) UpsertProfile(ctx context.Context, profile *domain.ProviderProfile) error {
	if profile.ProviderID == uuid.Nil {
		profile.ProviderID = uuid.New()
	}

	fieldsJSON, err := json.Marshal(profile.Fields)
	if err != nil {
		return fmt.Errorf("marshal profile fields: %w", err)
	}

	query := `
		INSERT INTO provider_profiles (provider_id, name, fields, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (provider_id) DO UPDATE
		SET name = EXCLUDED.name, fields = EXCLUDED.fields, updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query, profile.ProviderID, profile.Name, fieldsJSON).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert provider profile: %w", err)
	}

	return nil
}

// Submit stores a new verification request and moves the provider to pending.
// An existing pending request for the same provider is superseded first; two
// submissions racing each other resolve on the partial unique index, the
// loser gets ErrConcurrentSubmission.
func (r *TrustRepository) Submit(ctx context.Context, request *domain.VerificationRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin submit: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var providerName string
	err = tx.QueryRow(ctx, `SELECT name FROM provider_profiles WHERE provider_id = $1`, request.ProviderID).
		Scan(&providerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrProviderNotFound
	}
	if err != nil {
		return fmt.Errorf("load provider for submit: %w", err)
	}
	if request.ProviderName == "" {
		request.ProviderName = providerName
	}

	_, err = tx.Exec(ctx, `
		UPDATE verification_requests
		SET status = 'superseded'
		WHERE provider_id = $1 AND status = 'pending'
	`, request.ProviderID)
	if err != nil {
		return fmt.Errorf("supersede pending request: %w", err)
	}

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}

	expectationJSON, err := json.Marshal(request.Expectation)
	if err != nil {
		return fmt.Errorf("marshal expectation: %w", err)
	}
	licenseOCRJSON, err := marshalNullable(request.LicenseOCR)
	if err != nil {
		return fmt.Errorf("marshal license ocr: %w", err)
	}
	identityOCRJSON, err := marshalNullable(request.IdentityOCR)
	if err != nil {
		return fmt.Errorf("marshal identity ocr: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO verification_requests (
			id, provider_id, provider_name, status, expectation,
			license_ref, license_ocr, identity_ref, identity_ocr,
			additional_notes, preverified, submitted_at
		)
		VALUES ($1, $2, $3, 'pending', $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING submitted_at
	`,
		request.ID,
		request.ProviderID,
		request.ProviderName,
		expectationJSON,
		request.LicenseRef,
		licenseOCRJSON,
		request.IdentityRef,
		identityOCRJSON,
		request.AdditionalNotes,
		request.Preverified,
	).Scan(&request.SubmittedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConcurrentSubmission
		}
		return fmt.Errorf("insert verification request: %w", err)
	}

	// An approved provider resubmitting stays approved and public until the
	// new request is decided.
	_, err = tx.Exec(ctx, `
		INSERT INTO provider_trust_states (provider_id, status, created_at, updated_at)
		VALUES ($1, 'pending', NOW(), NOW())
		ON CONFLICT (provider_id) DO UPDATE
		SET status = 'pending', updated_at = NOW()
		WHERE provider_trust_states.status <> 'approved'
	`, request.ProviderID)
	if err != nil {
		return fmt.Errorf("update trust state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConcurrentSubmission
		}
		return fmt.Errorf("commit submit: %w", err)
	}
	request.Status = domain.RequestPending

	return nil
}

// Decide applies an admin decision to a pending request. Approval captures
// the provider's current profile as the last approved snapshot and publishes
// the provider; rejection clears both.
func (r *TrustRepository) Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin decide: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var providerID uuid.UUID
	var status domain.RequestStatus
	err = tx.QueryRow(ctx, `
		SELECT provider_id, status
		FROM verification_requests
		WHERE id = $1
		FOR UPDATE
	`, requestID).Scan(&providerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock verification request: %w", err)
	}

	if status != domain.RequestPending {
		return nil, domain.ErrInvalidStateTransition.WithError(
			fmt.Errorf("request %s is %s, expected pending", requestID, status))
	}

	request, err := scanRequest(tx.QueryRow(ctx, `
		UPDATE verification_requests
		SET status = $2, reviewed_at = NOW(), review_notes = $3
		WHERE id = $1
		RETURNING `+requestColumns+`
	`, requestID, string(outcome), notes))
	if err != nil {
		return nil, fmt.Errorf("update verification request: %w", err)
	}

	if outcome == domain.OutcomeApproved {
		var fieldsJSON []byte
		err = tx.QueryRow(ctx, `SELECT fields FROM provider_profiles WHERE provider_id = $1`, providerID).
			Scan(&fieldsJSON)
		if err != nil {
			return nil, fmt.Errorf("load profile snapshot: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO provider_trust_states (provider_id, status, is_public, last_approved_snapshot, created_at, updated_at)
			VALUES ($1, 'approved', TRUE, $2, NOW(), NOW())
			ON CONFLICT (provider_id) DO UPDATE
			SET status = 'approved', is_public = TRUE, last_approved_snapshot = $2,
			    revoked_at = NULL, revoked_reason = NULL, updated_at = NOW()
		`, providerID, fieldsJSON)
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO provider_trust_states (provider_id, status, is_public, created_at, updated_at)
			VALUES ($1, 'rejected', FALSE, NOW(), NOW())
			ON CONFLICT (provider_id) DO UPDATE
			SET status = 'rejected', is_public = FALSE, last_approved_snapshot = NULL, updated_at = NOW()
		`, providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("update trust state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit decide: %w", err)
	}

	return request, nil
}

// Revoke withdraws an approved provider's verification and puts the provider
// back in pending review. Only approved providers can be revoked; no new
// verification request is created.
func (r *TrustRepository) Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin revoke: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status domain.VerificationStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM provider_trust_states WHERE provider_id = $1 FOR UPDATE
	`, providerID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock trust state: %w", err)
	}

	if status != domain.StatusApproved {
		return nil, domain.ErrInvalidStateTransition.WithError(
			fmt.Errorf("provider %s is %s, expected approved", providerID, status))
	}

	state, err := scanTrustState(tx.QueryRow(ctx, `
		UPDATE provider_trust_states
		SET status = 'pending', is_public = FALSE, last_approved_snapshot = NULL,
		    revoked_at = NOW(), revoked_reason = $2, updated_at = NOW()
		WHERE provider_id = $1
		RETURNING provider_id, status, is_public, last_approved_snapshot,
		          revoked_at, revoked_reason, created_at, updated_at
	`, providerID, reason))
	if err != nil {
		return nil, fmt.Errorf("revoke trust state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit revoke: %w", err)
	}

	return state, nil
}

// ApplyProfileUpdate writes the profile change and, when the provider is
// approved and a protected field differs from the last approved snapshot,
// revokes the verification in the same transaction. The profile write and
// the revocation land together or not at all.
func (r *TrustRepository) ApplyProfileUpdate(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin profile update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var name string
	var currentJSON []byte
	err = tx.QueryRow(ctx, `
		SELECT name, fields FROM provider_profiles WHERE provider_id = $1 FOR UPDATE
	`, providerID).Scan(&name, &currentJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock provider profile: %w", err)
	}

	current := map[string]string{}
	if len(currentJSON) > 0 {
		if err := json.Unmarshal(currentJSON, &current); err != nil {
			return nil, fmt.Errorf("unmarshal profile fields: %w", err)
		}
	}

	// Partial update: unmentioned keys keep their current value.
	for key, value := range fields {
		current[key] = value
	}
	if updatedName, ok := fields["name"]; ok {
		name = updatedName
	}

	mergedJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal profile fields: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE provider_profiles
		SET name = $2, fields = $3, updated_at = NOW()
		WHERE provider_id = $1
	`, providerID, name, mergedJSON)
	if err != nil {
		return nil, fmt.Errorf("update provider profile: %w", err)
	}

	result := &domain.ProfileUpdateResult{
		ProviderID:   providerID,
		ProviderName: name,
		Status:       domain.StatusNone,
	}

	var status domain.VerificationStatus
	var isPublic bool
	var snapshotJSON []byte
	err = tx.QueryRow(ctx, `
		SELECT status, is_public, last_approved_snapshot
		FROM provider_trust_states
		WHERE provider_id = $1
		FOR UPDATE
	`, providerID).Scan(&status, &isPublic, &snapshotJSON)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lock trust state: %w", err)
	}
	if err == nil {
		result.Status = status
		result.IsPublic = isPublic
	}

	if status == domain.StatusApproved && len(snapshotJSON) > 0 {
		snapshot := map[string]string{}
		if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal approved snapshot: %w", err)
		}

		// Diff only the submitted fields; untouched keys cannot revoke.
		modified := domain.DiffProtectedFields(fields, snapshot)
		if len(modified) > 0 {
			reason := "sensitive profile fields changed: " + strings.Join(modified, ", ")
			_, err = tx.Exec(ctx, `
				UPDATE provider_trust_states
				SET status = 'pending', is_public = FALSE, last_approved_snapshot = NULL,
				    revoked_at = NOW(), revoked_reason = $2, updated_at = NOW()
				WHERE provider_id = $1
			`, providerID, reason)
			if err != nil {
				return nil, fmt.Errorf("revoke on profile update: %w", err)
			}

			result.VerificationRevoked = true
			result.ModifiedSensitiveFields = modified
			result.Status = domain.StatusPending
			result.IsPublic = false
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit profile update: %w", err)
	}

	return result, nil
}

func scanTrustState(row pgx.Row) (*domain.ProviderTrustState, error) {
	var state domain.ProviderTrustState
	var snapshotJSON []byte
	var revokedReason *string

	err := row.Scan(
		&state.ProviderID,
		&state.Status,
		&state.IsPublic,
		&snapshotJSON,
		&state.RevokedAt,
		&revokedReason,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if revokedReason != nil {
		state.RevokedReason = *revokedReason
	}
	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &state.LastApprovedSnapshot); err != nil {
			return nil, fmt.Errorf("unmarshal approved snapshot: %w", err)
		}
	}

	return &state, nil
}

func scanProfile(row pgx.Row) (*domain.ProviderProfile, error) {
	var profile domain.ProviderProfile
	var fieldsJSON []byte

	err := row.Scan(
		&profile.ProviderID,
		&profile.Name,
		&fieldsJSON,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &profile.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal profile fields: %w", err)
		}
	}

	return &profile, nil
}

func marshalNullable(result *domain.OCRResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	return json.Marshal(result)
}
