package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

var requestColumnNames = []string{
	"id", "provider_id", "provider_name", "status", "expectation",
	"license_ref", "license_ocr", "identity_ref", "identity_ocr",
	"additional_notes", "preverified", "submitted_at", "reviewed_at", "review_notes",
}

func requestRow(id, providerID uuid.UUID, status domain.RequestStatus, preverified bool, submittedAt time.Time) []any {
	return []any{
		id, providerID, "Clinic Benali", status,
		[]byte(`{"full_name":"Dr Ahmed Benali","registration_number":"REG-4412"}`),
		"docs/license.jpg", []byte(`{"success":true,"overall_score":96.5,"fields":{}}`),
		"", nil,
		"", preverified, submittedAt, nil, "",
	}
}

// RequestRepository Tests

func TestRequestRepository_GetByID(t *testing.T) {
	requestID := uuid.New()
	providerID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful retrieval",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(requestColumnNames).
					AddRow(requestRow(requestID, providerID, domain.RequestPending, true, now)...)

				mock.ExpectQuery(`SELECT (.+) FROM verification_requests\s+WHERE id = \$1`).
					WithArgs(requestID).
					WillReturnRows(rows)
			},
		},
		{
			name: "request not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM verification_requests\s+WHERE id = \$1`).
					WithArgs(requestID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrRequestNotFound,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM verification_requests\s+WHERE id = \$1`).
					WithArgs(requestID).
					WillReturnError(errors.New("database connection error"))
			},
			wantErr: errors.New("get verification request"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRequestRepository(mock)
			got, err := repo.GetByID(context.Background(), requestID)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrRequestNotFound) {
					assert.ErrorIs(t, err, domain.ErrRequestNotFound)
				} else {
					assert.Contains(t, err.Error(), "get verification request")
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, requestID, got.ID)
				assert.Equal(t, providerID, got.ProviderID)
				assert.Equal(t, "Dr Ahmed Benali", got.Expectation.FullName)
				require.NotNil(t, got.LicenseOCR)
				assert.True(t, got.LicenseOCR.Success)
				assert.Nil(t, got.IdentityOCR)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRequestRepository_ListQueue(t *testing.T) {
	providerID := uuid.New()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first := uuid.New()
	second := uuid.New()
	rows := pgxmock.NewRows(requestColumnNames).
		AddRow(requestRow(first, providerID, domain.RequestPending, true, now.Add(-time.Hour))...).
		AddRow(requestRow(second, uuid.New(), domain.RequestPending, false, now.Add(-2*time.Hour))...)

	mock.ExpectQuery(`SELECT (.+) FROM verification_requests\s+WHERE status = \$1\s+ORDER BY preverified DESC, submitted_at ASC`).
		WithArgs(domain.RequestPending, 20, 0).
		WillReturnRows(rows)

	repo := NewRequestRepository(mock)
	requests, err := repo.ListQueue(context.Background(), QueueFilter{})
	require.NoError(t, err)

	require.Len(t, requests, 2)
	assert.Equal(t, first, requests[0].ID)
	assert.True(t, requests[0].Preverified)
	assert.Equal(t, second, requests[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TrustRepository Tests

func TestTrustRepository_GetState_DefaultsToNone(t *testing.T) {
	providerID := uuid.New()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT provider_id, status, is_public, last_approved_snapshot`).
		WithArgs(providerID).
		WillReturnError(pgx.ErrNoRows)

	repo := NewTrustRepository(mock)
	state, err := repo.GetState(context.Background(), providerID)
	require.NoError(t, err)

	assert.Equal(t, providerID, state.ProviderID)
	assert.Equal(t, domain.StatusNone, state.Status)
	assert.False(t, state.IsPublic)
	assert.Nil(t, state.LastApprovedSnapshot)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrustRepository_GetState_Approved(t *testing.T) {
	providerID := uuid.New()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"provider_id", "status", "is_public", "last_approved_snapshot",
		"revoked_at", "revoked_reason", "created_at", "updated_at",
	}).AddRow(providerID, domain.StatusApproved, true, []byte(`{"phone":"+20111"}`), nil, nil, now, now)

	mock.ExpectQuery(`SELECT provider_id, status, is_public, last_approved_snapshot`).
		WithArgs(providerID).
		WillReturnRows(rows)

	repo := NewTrustRepository(mock)
	state, err := repo.GetState(context.Background(), providerID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, state.Status)
	assert.True(t, state.IsPublic)
	assert.Equal(t, map[string]string{"phone": "+20111"}, state.LastApprovedSnapshot)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrustRepository_Submit(t *testing.T) {
	providerID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful submission supersedes old pending",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name FROM provider_profiles WHERE provider_id = \$1`).
					WithArgs(providerID).
					WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Clinic Benali"))
				mock.ExpectExec(`UPDATE verification_requests\s+SET status = 'superseded'`).
					WithArgs(providerID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`INSERT INTO verification_requests`).
					WithArgs(pgxmock.AnyArg(), providerID, "Clinic Benali", pgxmock.AnyArg(),
						"docs/license.jpg", pgxmock.AnyArg(), "", pgxmock.AnyArg(), "", true).
					WillReturnRows(pgxmock.NewRows([]string{"submitted_at"}).AddRow(time.Now()))
				mock.ExpectExec(`INSERT INTO provider_trust_states`).
					WithArgs(providerID).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "provider not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name FROM provider_profiles WHERE provider_id = \$1`).
					WithArgs(providerID).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrProviderNotFound,
		},
		{
			name: "concurrent submission loses on unique index",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name FROM provider_profiles WHERE provider_id = \$1`).
					WithArgs(providerID).
					WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Clinic Benali"))
				mock.ExpectExec(`UPDATE verification_requests\s+SET status = 'superseded'`).
					WithArgs(providerID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				mock.ExpectQuery(`INSERT INTO verification_requests`).
					WithArgs(pgxmock.AnyArg(), providerID, "Clinic Benali", pgxmock.AnyArg(),
						"docs/license.jpg", pgxmock.AnyArg(), "", pgxmock.AnyArg(), "", true).
					WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_verification_requests_pending" (SQLSTATE 23505)`))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConcurrentSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewTrustRepository(mock)
			request := &domain.VerificationRequest{
				ProviderID:  providerID,
				Expectation: domain.IdentityExpectation{FullName: "Dr Ahmed Benali"},
				LicenseRef:  "docs/license.jpg",
				LicenseOCR:  &domain.OCRResult{Success: true, OverallScore: 95},
				Preverified: true,
			}
			err = repo.Submit(context.Background(), request)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, request.ID)
				assert.Equal(t, domain.RequestPending, request.Status)
				assert.Equal(t, "Clinic Benali", request.ProviderName)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTrustRepository_Decide(t *testing.T) {
	requestID := uuid.New()
	providerID := uuid.New()
	now := time.Now()

	decidedRow := func(status domain.RequestStatus, notes string) []any {
		row := requestRow(requestID, providerID, status, true, now.Add(-time.Hour))
		// reviewed_at is scanned into a *time.Time, so the fixture value must
		// itself be a pointer for pgxmock's assignability check.
		row[12] = &now
		row[13] = notes
		return row
	}

	tests := []struct {
		name      string
		outcome   domain.DecisionOutcome
		notes     string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name:    "approval captures snapshot and publishes",
			outcome: domain.OutcomeApproved,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT provider_id, status\s+FROM verification_requests\s+WHERE id = \$1\s+FOR UPDATE`).
					WithArgs(requestID).
					WillReturnRows(pgxmock.NewRows([]string{"provider_id", "status"}).
						AddRow(providerID, domain.RequestPending))
				mock.ExpectQuery(`UPDATE verification_requests\s+SET status = \$2`).
					WithArgs(requestID, "approved", "").
					WillReturnRows(pgxmock.NewRows(requestColumnNames).
						AddRow(decidedRow(domain.RequestApproved, "")...))
				mock.ExpectQuery(`SELECT fields FROM provider_profiles WHERE provider_id = \$1`).
					WithArgs(providerID).
					WillReturnRows(pgxmock.NewRows([]string{"fields"}).
						AddRow([]byte(`{"phone":"+20111","city":"Cairo"}`)))
				mock.ExpectExec(`INSERT INTO provider_trust_states`).
					WithArgs(providerID, pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name:    "rejection clears snapshot",
			outcome: domain.OutcomeRejected,
			notes:   "documents unreadable",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT provider_id, status\s+FROM verification_requests\s+WHERE id = \$1\s+FOR UPDATE`).
					WithArgs(requestID).
					WillReturnRows(pgxmock.NewRows([]string{"provider_id", "status"}).
						AddRow(providerID, domain.RequestPending))
				mock.ExpectQuery(`UPDATE verification_requests\s+SET status = \$2`).
					WithArgs(requestID, "rejected", "documents unreadable").
					WillReturnRows(pgxmock.NewRows(requestColumnNames).
						AddRow(decidedRow(domain.RequestRejected, "documents unreadable")...))
				mock.ExpectExec(`INSERT INTO provider_trust_states`).
					WithArgs(providerID).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
		},
		{
			name:    "already decided request rejects transition",
			outcome: domain.OutcomeRejected,
			notes:   "second thoughts",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT provider_id, status\s+FROM verification_requests\s+WHERE id = \$1\s+FOR UPDATE`).
					WithArgs(requestID).
					WillReturnRows(pgxmock.NewRows([]string{"provider_id", "status"}).
						AddRow(providerID, domain.RequestApproved))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrInvalidStateTransition,
		},
		{
			name:    "request not found",
			outcome: domain.OutcomeApproved,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT provider_id, status\s+FROM verification_requests\s+WHERE id = \$1\s+FOR UPDATE`).
					WithArgs(requestID).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewTrustRepository(mock)
			got, err := repo.Decide(context.Background(), requestID, tt.outcome, tt.notes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, domain.RequestStatus(tt.outcome), got.Status)
				assert.NotNil(t, got.ReviewedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTrustRepository_Revoke(t *testing.T) {
	providerID := uuid.New()
	now := time.Now()
	// revoked_at and revoked_reason are scanned into pointers, so the fixture
	// values must themselves be pointers for pgxmock's assignability check.
	reason := "manual revocation"

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "approved provider is revoked",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT status FROM provider_trust_states WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(domain.StatusApproved))
				mock.ExpectQuery(`UPDATE provider_trust_states\s+SET status = 'pending'`).
					WithArgs(providerID, "manual revocation").
					WillReturnRows(pgxmock.NewRows([]string{
						"provider_id", "status", "is_public", "last_approved_snapshot",
						"revoked_at", "revoked_reason", "created_at", "updated_at",
					}).AddRow(providerID, domain.StatusPending, false, nil, &now, &reason, now, now))
				mock.ExpectCommit()
			},
		},
		{
			name: "pending provider cannot be revoked",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT status FROM provider_trust_states WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(domain.StatusPending))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrInvalidStateTransition,
		},
		{
			name: "unknown provider",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT status FROM provider_trust_states WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrProviderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewTrustRepository(mock)
			state, err := repo.Revoke(context.Background(), providerID, "manual revocation")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				// Revocation puts the provider back in pending review.
				assert.Equal(t, domain.StatusPending, state.Status)
				assert.False(t, state.IsPublic)
				assert.Nil(t, state.LastApprovedSnapshot)
				assert.NotNil(t, state.RevokedAt)
				assert.Equal(t, "manual revocation", state.RevokedReason)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTrustRepository_ApplyProfileUpdate(t *testing.T) {
	providerID := uuid.New()

	profileRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"name", "fields"}).
			AddRow("Clinic Benali", []byte(`{"phone":"+20111","city":"Cairo","description":"old text"}`))
	}
	trustRows := func(status domain.VerificationStatus, isPublic bool, snapshot string) *pgxmock.Rows {
		rows := pgxmock.NewRows([]string{"status", "is_public", "last_approved_snapshot"})
		if snapshot == "" {
			return rows.AddRow(status, isPublic, nil)
		}
		return rows.AddRow(status, isPublic, []byte(snapshot))
	}

	tests := []struct {
		name        string
		fields      map[string]string
		mockSetup   func(mock pgxmock.PgxPoolIface)
		wantRevoked bool
		wantFields  []string
	}{
		{
			name:   "protected field change revokes approval",
			fields: map[string]string{"phone": "+20999"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name, fields FROM provider_profiles WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(profileRows())
				mock.ExpectExec(`UPDATE provider_profiles`).
					WithArgs(providerID, "Clinic Benali", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`SELECT status, is_public, last_approved_snapshot`).
					WithArgs(providerID).
					WillReturnRows(trustRows(domain.StatusApproved, true, `{"phone":"+20111","city":"Cairo"}`))
				mock.ExpectExec(`UPDATE provider_trust_states\s+SET status = 'pending'`).
					WithArgs(providerID, "sensitive profile fields changed: phone").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			wantRevoked: true,
			wantFields:  []string{"phone"},
		},
		{
			name:   "non-protected field change keeps approval",
			fields: map[string]string{"description": "new text"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name, fields FROM provider_profiles WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(profileRows())
				mock.ExpectExec(`UPDATE provider_profiles`).
					WithArgs(providerID, "Clinic Benali", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`SELECT status, is_public, last_approved_snapshot`).
					WithArgs(providerID).
					WillReturnRows(trustRows(domain.StatusApproved, true, `{"phone":"+20111","city":"Cairo"}`))
				mock.ExpectCommit()
			},
			wantRevoked: false,
		},
		{
			name:   "protected field resubmitted unchanged keeps approval",
			fields: map[string]string{"phone": "+20111"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name, fields FROM provider_profiles WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(profileRows())
				mock.ExpectExec(`UPDATE provider_profiles`).
					WithArgs(providerID, "Clinic Benali", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`SELECT status, is_public, last_approved_snapshot`).
					WithArgs(providerID).
					WillReturnRows(trustRows(domain.StatusApproved, true, `{"phone":"+20111","city":"Cairo"}`))
				mock.ExpectCommit()
			},
			wantRevoked: false,
		},
		{
			name:   "unverified provider never revokes",
			fields: map[string]string{"phone": "+20999"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT name, fields FROM provider_profiles WHERE provider_id = \$1 FOR UPDATE`).
					WithArgs(providerID).
					WillReturnRows(profileRows())
				mock.ExpectExec(`UPDATE provider_profiles`).
					WithArgs(providerID, "Clinic Benali", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`SELECT status, is_public, last_approved_snapshot`).
					WithArgs(providerID).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectCommit()
			},
			wantRevoked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewTrustRepository(mock)
			result, err := repo.ApplyProfileUpdate(context.Background(), providerID, tt.fields)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRevoked, result.VerificationRevoked)
			assert.Equal(t, "Clinic Benali", result.ProviderName)
			if tt.wantRevoked {
				assert.Equal(t, tt.wantFields, result.ModifiedSensitiveFields)
				assert.Equal(t, domain.StatusPending, result.Status)
				assert.False(t, result.IsPublic)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// APIKeyRepository Tests

func TestAPIKeyRepository_GetByHash(t *testing.T) {
	keyID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		hash      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful retrieval",
			hash: "hash_valid_key",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "name", "key_hash", "key_prefix", "environment", "is_active", "last_used_at", "created_at",
				}).AddRow(keyID, "booking-app", "hash_valid_key", "fk_live_ab12cd", "live", true, nil, now)

				mock.ExpectQuery(`SELECT id, name, key_hash, key_prefix, environment, is_active, last_used_at, created_at\s+FROM api_keys\s+WHERE key_hash = \$1`).
					WithArgs("hash_valid_key").
					WillReturnRows(rows)
			},
		},
		{
			name: "key not found",
			hash: "hash_missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, key_hash, key_prefix, environment, is_active, last_used_at, created_at\s+FROM api_keys\s+WHERE key_hash = \$1`).
					WithArgs("hash_missing").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrAPIKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewAPIKeyRepository(mock)
			got, err := repo.GetByHash(context.Background(), tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, keyID, got.ID)
				assert.Equal(t, "booking-app", got.Name)
				assert.True(t, got.IsActive)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAPIKeyRepository_UpdateLastUsed(t *testing.T) {
	keyID := uuid.New()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE api_keys\s+SET last_used_at = NOW\(\)`).
		WithArgs(keyID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewAPIKeyRepository(mock)
	assert.NoError(t, repo.UpdateLastUsed(context.Background(), keyID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
