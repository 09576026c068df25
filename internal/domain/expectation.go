package domain

// IdentityExpectation is the ground truth a submission is checked against.
// It is derived from the provider's declared profile at submission time and
// is immutable once a verification request exists.
type IdentityExpectation struct {
	FullName           string `json:"full_name"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	FacilityName       string `json:"facility_name,omitempty"`
	Date               string `json:"date,omitempty"`
}

// DeclaredFields returns the non-empty expected fields keyed by FieldKey.
func (e IdentityExpectation) DeclaredFields() map[FieldKey]string {
	fields := make(map[FieldKey]string)
	if e.FullName != "" {
		fields[FieldFullName] = e.FullName
	}
	if e.FirstName != "" {
		fields[FieldFirstName] = e.FirstName
	}
	if e.LastName != "" {
		fields[FieldLastName] = e.LastName
	}
	if e.RegistrationNumber != "" {
		fields[FieldRegistrationNumber] = e.RegistrationNumber
	}
	if e.FacilityName != "" {
		fields[FieldFacilityName] = e.FacilityName
	}
	if e.Date != "" {
		fields[FieldDate] = e.Date
	}
	return fields
}

// RequiredFields returns the fields a document of the given kind must match
// for its OCR result to count as successful. Identity documents require the
// full name; professional licenses additionally require the registration
// number when the provider declared one.
func (e IdentityExpectation) RequiredFields(kind DocumentKind) []FieldKey {
	switch kind {
	case DocumentLicense:
		required := []FieldKey{FieldFullName}
		if e.RegistrationNumber != "" {
			required = append(required, FieldRegistrationNumber)
		}
		return required
	case DocumentIdentity:
		return []FieldKey{FieldFullName}
	default:
		return []FieldKey{FieldFullName}
	}
}
