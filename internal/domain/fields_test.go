package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffProtectedFields(t *testing.T) {
	snapshot := map[string]string{
		"name":        "Ahmed Benali",
		"phone":       "0550000000",
		"email":       "contact@clinic.example",
		"description": "a clinic",
	}

	tests := []struct {
		name   string
		update map[string]string
		want   []string
	}{
		{
			name:   "protected field changed",
			update: map[string]string{"phone": "0550000001"},
			want:   []string{"phone"},
		},
		{
			name:   "multiple protected fields changed",
			update: map[string]string{"phone": "0550000001", "email": "new@clinic.example"},
			want:   []string{"email", "phone"},
		},
		{
			name:   "non-protected edit is inert",
			update: map[string]string{"description": "a bigger clinic"},
			want:   nil,
		},
		{
			name:   "unchanged protected value is not modified",
			update: map[string]string{"phone": "0550000000"},
			want:   nil,
		},
		{
			name:   "new protected field counts as modified",
			update: map[string]string{"postal_code": "16000"},
			want:   []string{"postal_code"},
		},
		{
			name:   "new protected field with empty value is ignored",
			update: map[string]string{"postal_code": ""},
			want:   nil,
		},
		{
			name:   "mixed update only reports protected changes",
			update: map[string]string{"description": "x", "gallery": "y", "name": "Someone Else"},
			want:   []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffProtectedFields(tt.update, snapshot)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsProtectedField(t *testing.T) {
	assert.True(t, IsProtectedField("phone"))
	assert.True(t, IsProtectedField("facility_name_local"))
	assert.True(t, IsProtectedField("latitude"))
	assert.False(t, IsProtectedField("description"))
	assert.False(t, IsProtectedField("gallery"))
	assert.False(t, IsProtectedField("schedule"))
	assert.False(t, IsProtectedField("social_links"))
}
