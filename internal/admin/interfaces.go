package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
)

// QueueReaderInterface lists pending verification requests for review.
type QueueReaderInterface interface {
	ListQueue(ctx context.Context, filter repository.QueueFilter) ([]domain.VerificationRequest, error)
	CountQueue(ctx context.Context, filter repository.QueueFilter) (int, error)
}

// DeciderInterface applies admin decisions. Implemented by the trust
// service so decisions go through the full pipeline, not raw SQL.
type DeciderInterface interface {
	GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.VerificationRequest, error)
	Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error)
	Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error)
}

// Pinger reports database connectivity for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
