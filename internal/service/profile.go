package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

type ProfileRepositoryInterface interface {
	GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.ProviderProfile) error
	ApplyProfileUpdate(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error)
}

// ProfileService applies provider profile changes coming from the
// collaborator service and triggers automatic revocation when an approved
// provider edits a protected field.
type ProfileService struct {
	repo        ProfileRepositoryInterface
	notifier    Notifier
	auditLogger audit.Logger
	logger      *slog.Logger
}

func NewProfileService(repo ProfileRepositoryInterface, notifier Notifier, auditLogger audit.Logger, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:        repo,
		notifier:    notifier,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Sync creates or replaces a provider's declared profile wholesale. Used
// when the collaborator service registers a provider; sync never triggers
// revocation because it precedes any verification.
func (s *ProfileService) Sync(ctx context.Context, profile *domain.ProviderProfile) error {
	if profile.Name == "" {
		return domain.ErrValidationFailed
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("provider profile synced", "provider_id", profile.ProviderID)
	return nil
}

func (s *ProfileService) Get(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error) {
	return s.repo.GetProfile(ctx, providerID)
}

// Update applies a partial profile edit. The write and any resulting
// revocation commit atomically; the revocation notification is fire and
// forget and can never undo the update.
func (s *ProfileService) Update(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error) {
	if len(fields) == 0 {
		return nil, domain.ErrValidationFailed
	}

	result, err := s.repo.ApplyProfileUpdate(ctx, providerID, fields)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		ProviderID: providerID,
		EventType:  audit.EventProfileUpdated,
		Success:    true,
		Metadata:   map[string]string{"revoked": boolString(result.VerificationRevoked)},
	})

	if result.VerificationRevoked {
		s.logger.Info("verification revoked by profile edit",
			"provider_id", providerID,
			"modified_fields", strings.Join(result.ModifiedSensitiveFields, ","),
		)
		s.logAudit(ctx, audit.Event{
			ProviderID: providerID,
			EventType:  audit.EventTrustRevoked,
			Success:    true,
			Metadata:   map[string]string{"modified_fields": strings.Join(result.ModifiedSensitiveFields, ",")},
		})
		if s.notifier != nil {
			s.notifier.Dispatch(ctx, EventTrustRevoked, result)
		}
	}

	return result, nil
}

func (s *ProfileService) logAudit(ctx context.Context, event audit.Event) {
	if s.auditLogger == nil {
		return
	}
	if err := s.auditLogger.Log(ctx, event); err != nil {
		s.logger.Warn("audit log write failed", "error", err)
	}
}
