package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	auditLogger := NewSlogLogger(logger)

	err := auditLogger.Log(context.Background(), Event{
		ProviderID: uuid.New(),
		EventType:  EventTrustRevoked,
		Success:    true,
		Metadata:   map[string]string{"modified_fields": "phone"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "audit_event")
	assert.Contains(t, out, "TRUST_REVOKED")
	assert.Contains(t, out, "modified_fields")
}

func TestSlogLogger_FillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := auditLogger.Log(context.Background(), Event{EventType: EventRequestSubmitted})
	require.NoError(t, err)

	// Generated event id must be present in the payload
	assert.Contains(t, buf.String(), "event_id")
}

func TestNoOpLogger(t *testing.T) {
	var l NoOpLogger
	assert.NoError(t, l.Log(context.Background(), Event{EventType: EventRequestDecided}))
}
