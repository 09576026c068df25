package admin

import (
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// QueueParams holds query parameters for the review queue listing.
type QueueParams struct {
	Status string
	Limit  int
	Offset int
}

// QueueResponse is the review queue listing with pagination metadata.
type QueueResponse struct {
	Data       []domain.VerificationRequest `json:"data"`
	Pagination PaginationMeta               `json:"pagination"`
}

// PaginationMeta contains pagination information
type PaginationMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DecisionRequest is the body of an approve/reject call.
type DecisionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RevokeRequest is the body of a manual revocation call.
type RevokeRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SystemHealth represents system-wide health status
type SystemHealth struct {
	Status   string        `json:"status"`
	Database ServiceHealth `json:"database"`
	Uptime   string        `json:"uptime"`
	Version  string        `json:"version"`
}

// ServiceHealth represents health of a single service
type ServiceHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
	Message string `json:"message,omitempty"`
}

// SystemMetrics contains system-wide runtime metrics
type SystemMetrics struct {
	Memory     MemoryMetrics `json:"memory"`
	Goroutines int           `json:"goroutines"`
}

// MemoryMetrics contains Go runtime memory metrics
type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc_bytes"`
	TotalAlloc uint64 `json:"total_alloc_bytes"`
	Sys        uint64 `json:"sys_bytes"`
	NumGC      uint32 `json:"num_gc"`
}
