package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderProfile), args.Error(1)
}

func (m *MockProfileRepository) UpsertProfile(ctx context.Context, profile *domain.ProviderProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ApplyProfileUpdate(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error) {
	args := m.Called(ctx, providerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileUpdateResult), args.Error(1)
}

func newProfileService(repo *MockProfileRepository, notifier *MockNotifier) *ProfileService {
	return NewProfileService(repo, notifier, &audit.NoOpLogger{}, slog.New(slog.DiscardHandler))
}

func TestProfileService_Update(t *testing.T) {
	providerID := uuid.New()

	tests := []struct {
		name        string
		fields      map[string]string
		setupMocks  func(repo *MockProfileRepository, n *MockNotifier)
		wantErr     error
		wantRevoked bool
	}{
		{
			name:   "protected field edit revokes and notifies",
			fields: map[string]string{"phone": "+20999"},
			setupMocks: func(repo *MockProfileRepository, n *MockNotifier) {
				result := &domain.ProfileUpdateResult{
					ProviderID:              providerID,
					ProviderName:            "Clinic Benali",
					VerificationRevoked:     true,
					ModifiedSensitiveFields: []string{"phone"},
					Status:                  domain.StatusPending,
				}
				repo.On("ApplyProfileUpdate", mock.Anything, providerID, map[string]string{"phone": "+20999"}).
					Return(result, nil)
				// The dispatched payload is the result itself, so the admin
				// notification carries provider id, name and modified fields.
				n.On("Dispatch", mock.Anything, EventTrustRevoked, mock.MatchedBy(func(data any) bool {
					r, ok := data.(*domain.ProfileUpdateResult)
					return ok && r.ProviderName == "Clinic Benali" &&
						len(r.ModifiedSensitiveFields) == 1 && r.ModifiedSensitiveFields[0] == "phone"
				})).Return()
			},
			wantRevoked: true,
		},
		{
			name:   "non-protected edit keeps approval and stays quiet",
			fields: map[string]string{"description": "new opening hours"},
			setupMocks: func(repo *MockProfileRepository, n *MockNotifier) {
				repo.On("ApplyProfileUpdate", mock.Anything, providerID, map[string]string{"description": "new opening hours"}).
					Return(&domain.ProfileUpdateResult{
						ProviderID: providerID,
						Status:     domain.StatusApproved,
						IsPublic:   true,
					}, nil)
			},
		},
		{
			name:       "empty update is invalid",
			fields:     map[string]string{},
			setupMocks: func(repo *MockProfileRepository, n *MockNotifier) {},
			wantErr:    domain.ErrValidationFailed,
		},
		{
			name:   "unknown provider",
			fields: map[string]string{"phone": "+20999"},
			setupMocks: func(repo *MockProfileRepository, n *MockNotifier) {
				repo.On("ApplyProfileUpdate", mock.Anything, providerID, mock.Anything).
					Return(nil, domain.ErrProviderNotFound)
			},
			wantErr: domain.ErrProviderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProfileRepository)
			notifier := new(MockNotifier)
			tt.setupMocks(repo, notifier)

			svc := newProfileService(repo, notifier)
			result, err := svc.Update(context.Background(), providerID, tt.fields)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantRevoked, result.VerificationRevoked)
			}

			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestProfileService_Sync(t *testing.T) {
	providerID := uuid.New()

	t.Run("valid profile", func(t *testing.T) {
		repo := new(MockProfileRepository)
		profile := &domain.ProviderProfile{
			ProviderID: providerID,
			Name:       "Clinic Benali",
			Fields:     map[string]string{"phone": "+20111"},
		}
		repo.On("UpsertProfile", mock.Anything, profile).Return(nil)

		svc := newProfileService(repo, new(MockNotifier))
		require.NoError(t, svc.Sync(context.Background(), profile))
		repo.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := newProfileService(new(MockProfileRepository), new(MockNotifier))
		err := svc.Sync(context.Background(), &domain.ProviderProfile{ProviderID: providerID})
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
	})
}
