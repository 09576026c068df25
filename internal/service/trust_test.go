package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/scoring"
)

type MockTrustRepository struct {
	mock.Mock
}

func (m *MockTrustRepository) GetState(ctx context.Context, providerID uuid.UUID) (*domain.ProviderTrustState, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderTrustState), args.Error(1)
}

func (m *MockTrustRepository) GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *MockTrustRepository) Submit(ctx context.Context, request *domain.VerificationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockTrustRepository) Decide(ctx context.Context, requestID uuid.UUID, outcome domain.DecisionOutcome, notes string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, requestID, outcome, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}

func (m *MockTrustRepository) Revoke(ctx context.Context, providerID uuid.UUID, reason string) (*domain.ProviderTrustState, error) {
	args := m.Called(ctx, providerID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderTrustState), args.Error(1)
}

type MockRequestReader struct {
	mock.Mock
}

func (m *MockRequestReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}

func (m *MockRequestReader) GetLatestByProvider(ctx context.Context, providerID uuid.UUID) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, eventType string, data any) {
	m.Called(ctx, eventType, data)
}

type staticExtractor struct {
	text string
	err  error
}

func (s *staticExtractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func newTrustService(trustRepo *MockTrustRepository, requestRepo *MockRequestReader, notifier *MockNotifier, text string, extractErr error) *TrustService {
	logger := slog.New(slog.DiscardHandler)
	scorer := scoring.NewService(&staticExtractor{text: text, err: extractErr}, logger)
	return NewTrustService(trustRepo, requestRepo, scorer, notifier, &audit.NoOpLogger{}, nil, logger)
}

type stubLimiter struct {
	err error
}

func (s *stubLimiter) Check(ctx context.Context, providerID uuid.UUID) error {
	return s.err
}

func benaliProfile(providerID uuid.UUID) *domain.ProviderProfile {
	return &domain.ProviderProfile{
		ProviderID: providerID,
		Name:       "Ahmed Benali",
		Fields: map[string]string{
			"registration_number": "REG-4412",
			"phone":               "+20111",
		},
	}
}

func TestTrustService_Submit(t *testing.T) {
	providerID := uuid.New()

	tests := []struct {
		name            string
		input           SubmitInput
		extractedText   string
		extractErr      error
		setupMocks      func(tr *MockTrustRepository, n *MockNotifier)
		wantErr         error
		wantPreverified bool
	}{
		{
			name: "matching documents are preverified",
			input: SubmitInput{
				ProviderID:      providerID,
				LicenseRef:      "docs/license.jpg",
				LicenseDocument: []byte("license-image"),
			},
			extractedText: "Name: Ahmed Benali\nRegistration No: REG-4412",
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("GetProfile", mock.Anything, providerID).Return(benaliProfile(providerID), nil)
				tr.On("Submit", mock.Anything, mock.Anything).Return(nil)
				n.On("Dispatch", mock.Anything, EventVerificationSubmitted, mock.Anything).Return()
			},
			wantPreverified: true,
		},
		{
			name: "unreadable document still submits unscored",
			input: SubmitInput{
				ProviderID:      providerID,
				LicenseRef:      "docs/license.jpg",
				LicenseDocument: []byte("garbage"),
			},
			extractErr: errors.New("engine unavailable"),
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("GetProfile", mock.Anything, providerID).Return(benaliProfile(providerID), nil)
				tr.On("Submit", mock.Anything, mock.Anything).Return(nil)
				n.On("Dispatch", mock.Anything, EventVerificationSubmitted, mock.Anything).Return()
			},
			wantPreverified: false,
		},
		{
			name:       "no documents rejected",
			input:      SubmitInput{ProviderID: providerID},
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {},
			wantErr:    domain.ErrNoDocuments,
		},
		{
			name: "unknown provider",
			input: SubmitInput{
				ProviderID:      providerID,
				LicenseDocument: []byte("license-image"),
			},
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("GetProfile", mock.Anything, providerID).Return(nil, domain.ErrProviderNotFound)
			},
			wantErr: domain.ErrProviderNotFound,
		},
		{
			name: "concurrent submission conflict surfaces",
			input: SubmitInput{
				ProviderID:      providerID,
				LicenseDocument: []byte("license-image"),
			},
			extractedText: "Ahmed Benali REG-4412",
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("GetProfile", mock.Anything, providerID).Return(benaliProfile(providerID), nil)
				tr.On("Submit", mock.Anything, mock.Anything).Return(domain.ErrConcurrentSubmission)
			},
			wantErr: domain.ErrConcurrentSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trustRepo := new(MockTrustRepository)
			requestRepo := new(MockRequestReader)
			notifier := new(MockNotifier)
			tt.setupMocks(trustRepo, notifier)

			svc := newTrustService(trustRepo, requestRepo, notifier, tt.extractedText, tt.extractErr)
			request, err := svc.Submit(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, request)
				assert.Equal(t, tt.wantPreverified, request.Preverified)
				assert.Equal(t, "Ahmed Benali", request.Expectation.FullName)
				require.NotNil(t, request.LicenseOCR)
			}

			trustRepo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestTrustService_Submit_Throttled(t *testing.T) {
	trustRepo := new(MockTrustRepository)
	requestRepo := new(MockRequestReader)
	notifier := new(MockNotifier)

	logger := slog.New(slog.DiscardHandler)
	scorer := scoring.NewService(&staticExtractor{text: "irrelevant"}, logger)
	svc := NewTrustService(trustRepo, requestRepo, scorer, notifier, &audit.NoOpLogger{},
		&stubLimiter{err: domain.ErrRateLimitExceeded}, logger)

	_, err := svc.Submit(context.Background(), SubmitInput{
		ProviderID:      uuid.New(),
		LicenseDocument: []byte("license-image"),
	})

	assert.ErrorIs(t, err, domain.ErrRateLimitExceeded)
	// Throttled submissions never reach the profile lookup or storage.
	trustRepo.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	trustRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

// replacedUploadExtractor blocks its first call until the task context is
// cancelled; later calls return text immediately.
type replacedUploadExtractor struct {
	started chan struct{}
	text    string

	mu    sync.Mutex
	calls int
}

func (e *replacedUploadExtractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	e.mu.Lock()
	e.calls++
	first := e.calls == 1
	e.mu.Unlock()

	if first {
		close(e.started)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return e.text, nil
}

func TestTrustService_Submit_ReplacedUploadDiscardsInFlightScoring(t *testing.T) {
	providerID := uuid.New()

	trustRepo := new(MockTrustRepository)
	notifier := new(MockNotifier)
	trustRepo.On("GetProfile", mock.Anything, providerID).Return(benaliProfile(providerID), nil)
	trustRepo.On("Submit", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Dispatch", mock.Anything, EventVerificationSubmitted, mock.Anything).Return()

	ext := &replacedUploadExtractor{
		started: make(chan struct{}),
		text:    "Name: Ahmed Benali\nRegistration No: REG-4412",
	}
	logger := slog.New(slog.DiscardHandler)
	svc := NewTrustService(trustRepo, new(MockRequestReader), scoring.NewService(ext, logger),
		notifier, &audit.NoOpLogger{}, nil, logger)

	type outcome struct {
		request *domain.VerificationRequest
		err     error
	}
	first := make(chan outcome, 1)
	go func() {
		request, err := svc.Submit(context.Background(), SubmitInput{
			ProviderID:      providerID,
			LicenseRef:      "docs/license-v1.jpg",
			LicenseDocument: []byte("first upload"),
		})
		first <- outcome{request, err}
	}()

	// Replace the upload while the first one is still being scored.
	<-ext.started
	second, err := svc.Submit(context.Background(), SubmitInput{
		ProviderID:      providerID,
		LicenseRef:      "docs/license-v2.jpg",
		LicenseDocument: []byte("second upload"),
	})
	require.NoError(t, err)
	require.NotNil(t, second.LicenseOCR)
	assert.True(t, second.Preverified)

	// The replaced upload's task was cancelled; its result never attaches.
	got := <-first
	require.NoError(t, got.err)
	require.NotNil(t, got.request)
	assert.Nil(t, got.request.LicenseOCR)
	assert.False(t, got.request.Preverified)
}

func TestTrustService_Decide(t *testing.T) {
	requestID := uuid.New()
	providerID := uuid.New()

	decided := &domain.VerificationRequest{
		ID:         requestID,
		ProviderID: providerID,
		Status:     domain.RequestApproved,
	}

	tests := []struct {
		name       string
		outcome    domain.DecisionOutcome
		notes      string
		setupMocks func(tr *MockTrustRepository, n *MockNotifier)
		wantErr    error
	}{
		{
			name:    "approval",
			outcome: domain.OutcomeApproved,
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("Decide", mock.Anything, requestID, domain.OutcomeApproved, "").Return(decided, nil)
				n.On("Dispatch", mock.Anything, EventVerificationDecided, decided).Return()
			},
		},
		{
			name:       "rejection without notes is refused",
			outcome:    domain.OutcomeRejected,
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {},
			wantErr:    domain.ErrReviewNotesRequired,
		},
		{
			name:    "decision on already decided request",
			outcome: domain.OutcomeApproved,
			setupMocks: func(tr *MockTrustRepository, n *MockNotifier) {
				tr.On("Decide", mock.Anything, requestID, domain.OutcomeApproved, "").
					Return(nil, domain.ErrInvalidStateTransition)
			},
			wantErr: domain.ErrInvalidStateTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trustRepo := new(MockTrustRepository)
			notifier := new(MockNotifier)
			tt.setupMocks(trustRepo, notifier)

			svc := newTrustService(trustRepo, new(MockRequestReader), notifier, "", nil)
			got, err := svc.Decide(context.Background(), requestID, tt.outcome, tt.notes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, decided, got)
			}

			trustRepo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestTrustService_Revoke_DefaultsReason(t *testing.T) {
	providerID := uuid.New()
	revoked := &domain.ProviderTrustState{
		ProviderID: providerID,
		Status:     domain.StatusPending,
	}

	trustRepo := new(MockTrustRepository)
	notifier := new(MockNotifier)
	trustRepo.On("Revoke", mock.Anything, providerID, "manual revocation").Return(revoked, nil)
	notifier.On("Dispatch", mock.Anything, EventTrustRevoked, revoked).Return()

	svc := newTrustService(trustRepo, new(MockRequestReader), notifier, "", nil)
	state, err := svc.Revoke(context.Background(), providerID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, state.Status)

	trustRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTrustService_Status(t *testing.T) {
	providerID := uuid.New()
	state := &domain.ProviderTrustState{ProviderID: providerID, Status: domain.StatusPending}
	latest := &domain.VerificationRequest{ID: uuid.New(), ProviderID: providerID, Status: domain.RequestPending}

	t.Run("with latest request", func(t *testing.T) {
		trustRepo := new(MockTrustRepository)
		requestRepo := new(MockRequestReader)
		trustRepo.On("GetState", mock.Anything, providerID).Return(state, nil)
		requestRepo.On("GetLatestByProvider", mock.Anything, providerID).Return(latest, nil)

		svc := newTrustService(trustRepo, requestRepo, new(MockNotifier), "", nil)
		status, err := svc.Status(context.Background(), providerID)
		require.NoError(t, err)
		assert.Equal(t, state, status.State)
		assert.Equal(t, latest, status.LatestRequest)
	})

	t.Run("never submitted", func(t *testing.T) {
		trustRepo := new(MockTrustRepository)
		requestRepo := new(MockRequestReader)
		trustRepo.On("GetState", mock.Anything, providerID).
			Return(&domain.ProviderTrustState{ProviderID: providerID, Status: domain.StatusNone}, nil)
		requestRepo.On("GetLatestByProvider", mock.Anything, providerID).
			Return(nil, domain.ErrRequestNotFound)

		svc := newTrustService(trustRepo, requestRepo, new(MockNotifier), "", nil)
		status, err := svc.Status(context.Background(), providerID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusNone, status.State.Status)
		assert.Nil(t, status.LatestRequest)
	})
}
