package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationStatus is the provider-level trust status.
type VerificationStatus string

const (
	StatusNone     VerificationStatus = "none"
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// ProviderTrustState is the projection of a provider relevant to the trust
// pipeline.
//
// Invariants:
//   - IsPublic implies Status == approved.
//   - LastApprovedSnapshot is non-nil exactly when Status == approved; it is
//     captured at approval time and cleared on revocation. It is the only
//     state the sensitive-field change detector may diff against.
type ProviderTrustState struct {
	ProviderID           uuid.UUID          `json:"provider_id"`
	Status               VerificationStatus `json:"status"`
	IsPublic             bool               `json:"is_public"`
	LastApprovedSnapshot map[string]string  `json:"last_approved_snapshot,omitempty"`
	RevokedAt            *time.Time         `json:"revoked_at,omitempty"`
	RevokedReason        string             `json:"revoked_reason,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// ProfileUpdateResult is returned to the update pipeline so the caller can
// explain a revocation instead of surprising the provider. It doubles as the
// admin notification payload, so it carries the provider name.
type ProfileUpdateResult struct {
	ProviderID              uuid.UUID          `json:"provider_id"`
	ProviderName            string             `json:"provider_name"`
	VerificationRevoked     bool               `json:"verification_revoked"`
	ModifiedSensitiveFields []string           `json:"modified_sensitive_fields,omitempty"`
	Status                  VerificationStatus `json:"status"`
	IsPublic                bool               `json:"is_public"`
}
