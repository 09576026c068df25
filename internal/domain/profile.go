package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProviderProfile is the declared profile of a provider as the collaborator
// service last synced it. Fields holds the flat attribute map the protected
// set is defined over; Name is duplicated out of Fields for display and for
// deriving the identity expectation.
type ProviderProfile struct {
	ProviderID uuid.UUID         `json:"provider_id"`
	Name       string            `json:"name"`
	Fields     map[string]string `json:"fields"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Snapshot returns a copy of the profile fields suitable for storing as the
// last approved snapshot.
func (p *ProviderProfile) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		snapshot[k] = v
	}
	return snapshot
}

// Expectation derives the identity ground truth for document scoring from
// the declared profile.
func (p *ProviderProfile) Expectation() IdentityExpectation {
	return IdentityExpectation{
		FullName:           p.Name,
		RegistrationNumber: p.Fields["registration_number"],
		FacilityName:       p.Fields["facility_name"],
	}
}
