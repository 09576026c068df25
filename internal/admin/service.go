package admin

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
)

// Service handles the admin review queue and system introspection.
type Service struct {
	queue     QueueReaderInterface
	decider   DeciderInterface
	db        Pinger
	logger    *slog.Logger
	startedAt time.Time
	version   string
}

func NewService(queue QueueReaderInterface, decider DeciderInterface, db Pinger, logger *slog.Logger, version string) *Service {
	return &Service{
		queue:     queue,
		decider:   decider,
		db:        db,
		logger:    logger,
		startedAt: time.Now(),
		version:   version,
	}
}

// ListQueue returns the review queue: pre-verified requests first, then by
// submission age.
func (s *Service) ListQueue(ctx context.Context, params QueueParams) (*QueueResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := repository.QueueFilter{
		Status: domain.RequestStatus(params.Status),
		Limit:  limit,
		Offset: params.Offset,
	}

	requests, err := s.queue.ListQueue(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}

	total, err := s.queue.CountQueue(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count review queue: %w", err)
	}

	if requests == nil {
		requests = []domain.VerificationRequest{}
	}

	return &QueueResponse{
		Data: requests,
		Pagination: PaginationMeta{
			Total:  total,
			Limit:  limit,
			Offset: params.Offset,
		},
	}, nil
}

func (s *Service) GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.VerificationRequest, error) {
	return s.decider.GetRequest(ctx, requestID)
}

// Approve marks a pending request approved. Notes are optional.
func (s *Service) Approve(ctx context.Context, requestID uuid.UUID, notes string) (*domain.VerificationRequest, error) {
	request, err := s.decider.Decide(ctx, requestID, domain.OutcomeApproved, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("request approved by admin", "request_id", requestID)
	return request, nil
}

// Reject marks a pending request rejected. Notes are mandatory and the
// decision pipeline enforces it.
func (s *Service) Reject(ctx context.Context, requestID uuid.UUID, notes string) (*domain.VerificationRequest, error) {
	request, err := s.decider.Decide(ctx, requestID, domain.OutcomeRejected, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("request rejected by admin", "request_id", requestID)
	return request, nil
}

// RevokeProvider manually withdraws an approved provider's verification.
func (s *Service) RevokeProvider(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error) {
	state, err := s.decider.Revoke(ctx, providerID, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info("provider revoked by admin", "provider_id", providerID)
	return state, nil
}

// GetSystemHealth reports overall service health.
func (s *Service) GetSystemHealth(ctx context.Context) *SystemHealth {
	health := &SystemHealth{
		Status:  "healthy",
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
		Version: s.version,
	}

	start := time.Now()
	if err := s.db.Ping(ctx); err != nil {
		health.Status = "degraded"
		health.Database = ServiceHealth{
			Status:  "unhealthy",
			Latency: time.Since(start).String(),
			Message: err.Error(),
		}
		return health
	}

	health.Database = ServiceHealth{
		Status:  "healthy",
		Latency: time.Since(start).String(),
	}
	return health
}

// GetSystemMetrics reports Go runtime metrics.
func (s *Service) GetSystemMetrics(_ context.Context) *SystemMetrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &SystemMetrics{
		Memory: MemoryMetrics{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
	}
}
