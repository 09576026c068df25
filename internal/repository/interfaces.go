package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it for tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RequestRepositoryInterface defines read access to verification requests.
// Writes happen through TrustRepositoryInterface so status changes stay
// transactional with the provider trust state.
type RequestRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error)
	GetLatestByProvider(ctx context.Context, providerID uuid.UUID) (*domain.VerificationRequest, error)
	ListQueue(ctx context.Context, filter QueueFilter) ([]domain.VerificationRequest, error)
	CountQueue(ctx context.Context, filter QueueFilter) (int, error)
}

// TrustRepositoryInterface owns every transition of the trust state machine.
// Each method is a single transaction; preconditions are re-checked inside
// the transaction so concurrent actors serialize on the provider row.
type TrustRepositoryInterface interface {
	GetState(ctx context.Context, providerID uuid.UUID) (*domain.ProviderTrustState, error)
	GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.ProviderProfile) error
	Submit(ctx context.Context, request *domain.VerificationRequest) error
	Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error)
	Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error)
	ApplyProfileUpdate(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error)
}

// APIKeyRepositoryInterface defines operations for API key data access
type APIKeyRepositoryInterface interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByHash(ctx context.Context, hash string) (*domain.APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error)
	List(ctx context.Context) ([]domain.APIKey, error)
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
