package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/scoring"
)

type TrustRepositoryInterface interface {
	GetState(ctx context.Context, providerID uuid.UUID) (*domain.ProviderTrustState, error)
	GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error)
	Submit(ctx context.Context, request *domain.VerificationRequest) error
	Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error)
	Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error)
}

type RequestReaderInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error)
	GetLatestByProvider(ctx context.Context, providerID uuid.UUID) (*domain.VerificationRequest, error)
}

// Notifier delivers events to the collaborator service. Delivery failures
// are the notifier's problem; callers never block or fail on it.
type Notifier interface {
	Dispatch(ctx context.Context, eventType string, data any)
}

// SubmissionLimiterInterface caps how often a provider may submit. A nil
// limiter means unlimited.
type SubmissionLimiterInterface interface {
	Check(ctx context.Context, providerID uuid.UUID) error
}

// Notification event types.
const (
	EventVerificationSubmitted = "verification.submitted"
	EventVerificationDecided   = "verification.decided"
	EventTrustRevoked          = "trust.revoked"
)

// SubmitInput carries one verification submission. At least one document is
// required; both slots are optional individually.
type SubmitInput struct {
	ProviderID       uuid.UUID
	LicenseRef       string
	LicenseDocument  []byte
	IdentityRef      string
	IdentityDocument []byte
	AdditionalNotes  string
	Progress         scoring.ProgressFunc
}

// TrustStatus combines the provider state with its most recent request for
// the collaborator-facing status endpoint.
type TrustStatus struct {
	State         *domain.ProviderTrustState  `json:"state"`
	LatestRequest *domain.VerificationRequest `json:"latest_request,omitempty"`
}

// TrustService orchestrates the verification pipeline: scoring submitted
// documents, recording requests, applying admin decisions and revocations.
// Scoring runs through a slot runner so a replaced upload cancels the
// in-flight task for its slot and the stale result is never attached.
type TrustService struct {
	trustRepo   TrustRepositoryInterface
	requestRepo RequestReaderInterface
	runner      *scoring.SlotRunner
	notifier    Notifier
	auditLogger audit.Logger
	limiter     SubmissionLimiterInterface
	logger      *slog.Logger
}

func NewTrustService(
	trustRepo TrustRepositoryInterface,
	requestRepo RequestReaderInterface,
	scorer *scoring.Service,
	notifier Notifier,
	auditLogger audit.Logger,
	limiter SubmissionLimiterInterface,
	logger *slog.Logger,
) *TrustService {
	return &TrustService{
		trustRepo:   trustRepo,
		requestRepo: requestRepo,
		runner:      scoring.NewSlotRunner(scorer),
		notifier:    notifier,
		auditLogger: auditLogger,
		limiter:     limiter,
		logger:      logger,
	}
}

// Submit scores the provided documents against the provider's declared
// profile and stores the request. Scoring failures never block submission;
// an unreadable document simply arrives unscored in the review queue.
func (s *TrustService) Submit(ctx context.Context, input SubmitInput) (*domain.VerificationRequest, error) {
	if len(input.LicenseDocument) == 0 && len(input.IdentityDocument) == 0 {
		return nil, domain.ErrNoDocuments
	}

	if s.limiter != nil {
		if err := s.limiter.Check(ctx, input.ProviderID); err != nil {
			return nil, err
		}
	}

	profile, err := s.trustRepo.GetProfile(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	expectation := profile.Expectation()

	documents := make(map[domain.DocumentKind][]byte, 2)
	if len(input.LicenseDocument) > 0 {
		documents[domain.DocumentLicense] = input.LicenseDocument
	}
	if len(input.IdentityDocument) > 0 {
		documents[domain.DocumentIdentity] = input.IdentityDocument
	}

	// A document whose scoring was superseded by a newer upload for the same
	// slot is absent from results and arrives in the queue unscored.
	results := s.runner.ScoreDocuments(ctx, input.ProviderID, documents, expectation, input.Progress)

	request := &domain.VerificationRequest{
		ProviderID:      input.ProviderID,
		ProviderName:    profile.Name,
		Expectation:     expectation,
		AdditionalNotes: input.AdditionalNotes,
	}
	if result, ok := results[domain.DocumentLicense]; ok {
		request.LicenseRef = input.LicenseRef
		request.LicenseOCR = result
	}
	if result, ok := results[domain.DocumentIdentity]; ok {
		request.IdentityRef = input.IdentityRef
		request.IdentityOCR = result
	}
	request.Preverified = request.ComputePreverified()

	if err := s.trustRepo.Submit(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("verification request submitted",
		"request_id", request.ID,
		"provider_id", request.ProviderID,
		"preverified", request.Preverified,
	)
	s.logAudit(ctx, audit.Event{
		ProviderID: request.ProviderID,
		RequestID:  request.ID,
		EventType:  audit.EventRequestSubmitted,
		Success:    true,
		Metadata:   map[string]string{"preverified": boolString(request.Preverified)},
	})
	s.notify(ctx, EventVerificationSubmitted, request)

	return request, nil
}

// Decide applies an admin decision. Rejection requires review notes so the
// provider receives an explanation.
func (s *TrustService) Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error) {
	if outcome == domain.OutcomeRejected && notes == "" {
		return nil, domain.ErrReviewNotesRequired
	}

	request, err := s.trustRepo.Decide(ctx, requestID, outcome, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("verification request decided",
		"request_id", request.ID,
		"provider_id", request.ProviderID,
		"outcome", outcome,
	)
	s.logAudit(ctx, audit.Event{
		ProviderID: request.ProviderID,
		RequestID:  request.ID,
		EventType:  audit.EventRequestDecided,
		Success:    true,
		Metadata:   map[string]string{"outcome": string(outcome)},
	})
	s.notify(ctx, EventVerificationDecided, request)

	return request, nil
}

// Revoke manually withdraws an approved provider's verification.
func (s *TrustService) Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error) {
	if reason == "" {
		reason = "manual revocation"
	}

	state, err := s.trustRepo.Revoke(ctx, providerID, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info("trust revoked",
		"provider_id", providerID,
		"reason", reason,
	)
	s.logAudit(ctx, audit.Event{
		ProviderID: providerID,
		EventType:  audit.EventTrustRevoked,
		Success:    true,
		Metadata:   map[string]string{"reason": reason},
	})
	s.notify(ctx, EventTrustRevoked, state)

	return state, nil
}

// Status returns the provider's trust state together with its latest
// request, if any.
func (s *TrustService) Status(ctx context.Context, providerID uuid.UUID) (*TrustStatus, error) {
	state, err := s.trustRepo.GetState(ctx, providerID)
	if err != nil {
		return nil, err
	}

	status := &TrustStatus{State: state}

	latest, err := s.requestRepo.GetLatestByProvider(ctx, providerID)
	if err == nil {
		status.LatestRequest = latest
	} else if !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, err
	}

	return status, nil
}

func (s *TrustService) GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.VerificationRequest, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *TrustService) notify(ctx context.Context, eventType string, data any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(ctx, eventType, data)
}

func (s *TrustService) logAudit(ctx context.Context, event audit.Event) {
	if s.auditLogger == nil {
		return
	}
	if err := s.auditLogger.Log(ctx, event); err != nil {
		s.logger.Warn("audit log write failed", "error", err)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
