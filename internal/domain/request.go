package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind identifies an upload slot within a verification request.
type DocumentKind string

const (
	DocumentLicense  DocumentKind = "license"
	DocumentIdentity DocumentKind = "identity"
)

// RequestStatus is the lifecycle state of a verification request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
	// RequestSuperseded marks a pending request replaced by a newer
	// submission before any admin decision. Storage-level only; a
	// superseded request is terminal and never decided.
	RequestSuperseded RequestStatus = "superseded"
)

// VerificationRequest is a single submission of credential documents awaiting
// a trust decision. Immutable after creation except for status, reviewed_at
// and review_notes, which an admin decision writes exactly once.
type VerificationRequest struct {
	ID              uuid.UUID           `json:"id"`
	ProviderID      uuid.UUID           `json:"provider_id"`
	ProviderName    string              `json:"provider_name"`
	Status          RequestStatus       `json:"status"`
	Expectation     IdentityExpectation `json:"expectation"`
	LicenseRef      string              `json:"license_ref,omitempty"`
	LicenseOCR      *OCRResult          `json:"license_ocr,omitempty"`
	IdentityRef     string              `json:"identity_ref,omitempty"`
	IdentityOCR     *OCRResult          `json:"identity_ocr,omitempty"`
	AdditionalNotes string              `json:"additional_notes,omitempty"`
	Preverified     bool                `json:"preverified"`
	SubmittedAt     time.Time           `json:"submitted_at"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	ReviewNotes     string              `json:"review_notes,omitempty"`
}

// ComputePreverified reports whether every submitted document scored
// successfully. Pre-verified requests surface first in the admin queue; they
// are never auto-approved.
func (r *VerificationRequest) ComputePreverified() bool {
	submitted := 0
	if r.LicenseRef != "" {
		submitted++
		if r.LicenseOCR == nil || !r.LicenseOCR.Success {
			return false
		}
	}
	if r.IdentityRef != "" {
		submitted++
		if r.IdentityOCR == nil || !r.IdentityOCR.Success {
			return false
		}
	}
	return submitted > 0
}

// DecisionOutcome is an admin decision on a pending request.
type DecisionOutcome string

const (
	OutcomeApproved DecisionOutcome = "approved"
	OutcomeRejected DecisionOutcome = "rejected"
)
