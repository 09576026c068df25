package domain

import "sort"

// FieldKey identifies one identity field checked during document scoring.
type FieldKey string

const (
	FieldFullName           FieldKey = "full_name"
	FieldFirstName          FieldKey = "first_name"
	FieldLastName           FieldKey = "last_name"
	FieldRegistrationNumber FieldKey = "registration_number"
	FieldFacilityName       FieldKey = "facility_name"
	FieldDate               FieldKey = "date"
)

// ProtectedProfileFields is the single declared set of provider profile
// attributes whose change invalidates a prior approval. Both the update
// validation path and the revocation diff consume this set; it must not be
// duplicated anywhere else.
var ProtectedProfileFields = map[string]bool{
	"name":                true,
	"facility_name":       true,
	"facility_name_local": true,
	"phone":               true,
	"email":               true,
	"address":             true,
	"city":                true,
	"area":                true,
	"postal_code":         true,
	"registration_number": true,
	"contact_name":        true,
	"contact_role":        true,
	"latitude":            true,
	"longitude":           true,
}

// IsProtectedField reports whether a profile field key is part of the
// protected set.
func IsProtectedField(key string) bool {
	return ProtectedProfileFields[key]
}

// DiffProtectedFields returns the protected field keys whose proposed value
// differs from the snapshot. Keys absent from the snapshot count as modified
// when the proposed value is non-empty. Non-protected keys are ignored.
func DiffProtectedFields(update, snapshot map[string]string) []string {
	var modified []string
	for key, value := range update {
		if !ProtectedProfileFields[key] {
			continue
		}
		previous, ok := snapshot[key]
		if ok && previous == value {
			continue
		}
		if !ok && value == "" {
			continue
		}
		modified = append(modified, key)
	}
	sort.Strings(modified)
	return modified
}
