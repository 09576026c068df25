package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// OCRFieldScore represents a single identity field comparison
type OCRFieldScore struct {
	Field      string  `json:"field" example:"full_name"`
	Expected   string  `json:"expected" example:"Ahmed Benali"`
	Extracted  string  `json:"extracted" example:"AHMED BENALI"`
	Similarity float64 `json:"similarity" example:"1.0"`
	Matched    bool    `json:"matched" example:"true"`
}

// OCRResultData represents the OCR comparison outcome for one document
type OCRResultData struct {
	DocumentType string          `json:"document_type" example:"license"`
	Overall      float64         `json:"overall" example:"0.91"`
	Passed       bool            `json:"passed" example:"true"`
	Fields       []OCRFieldScore `json:"fields"`
}

// SubmitVerificationResponse represents a successful document submission
type SubmitVerificationResponse struct {
	RequestID   string         `json:"request_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProviderID  string         `json:"provider_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Status      string         `json:"status" example:"pending"`
	Preverified bool           `json:"preverified" example:"true"`
	LicenseOCR  *OCRResultData `json:"license_ocr,omitempty"`
	IdentityOCR *OCRResultData `json:"identity_ocr,omitempty"`
	SubmittedAt string         `json:"submitted_at" example:"2024-01-01T00:00:00Z"`
}

// TrustStatusResponse represents a provider's current trust standing
type TrustStatusResponse struct {
	ProviderID    string `json:"provider_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Status        string `json:"status" example:"approved"`
	IsPublic      bool   `json:"is_public" example:"true"`
	RevokedAt     string `json:"revoked_at,omitempty" example:"2024-02-01T00:00:00Z"`
	RevokedReason string `json:"revoked_reason,omitempty" example:"sensitive fields changed: phone"`
}

// ProfileResponse represents a provider profile
type ProfileResponse struct {
	ProviderID string            `json:"provider_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Name       string            `json:"name" example:"Ahmed Benali"`
	Fields     map[string]string `json:"fields"`
	UpdatedAt  string            `json:"updated_at" example:"2024-01-01T00:00:00Z"`
}

// UpdateProfileResponse represents the outcome of a profile edit
type UpdateProfileResponse struct {
	ProviderID              string   `json:"provider_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	ProviderName            string   `json:"provider_name" example:"Ahmed Benali"`
	VerificationRevoked     bool     `json:"verification_revoked" example:"true"`
	ModifiedSensitiveFields []string `json:"modified_sensitive_fields,omitempty" example:"phone"`
	Status                  string   `json:"status" example:"pending"`
	IsPublic                bool     `json:"is_public" example:"false"`
}

// VerificationRequestDetail represents a full request for admin review
type VerificationRequestDetail struct {
	ID          string         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProviderID  string         `json:"provider_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Status      string         `json:"status" example:"pending"`
	Preverified bool           `json:"preverified" example:"true"`
	LicenseOCR  *OCRResultData `json:"license_ocr,omitempty"`
	IdentityOCR *OCRResultData `json:"identity_ocr,omitempty"`
	ReviewNotes string         `json:"review_notes,omitempty"`
	SubmittedAt string         `json:"submitted_at" example:"2024-01-01T00:00:00Z"`
	DecidedAt   string         `json:"decided_at,omitempty" example:"2024-01-02T00:00:00Z"`
}

// QueueListResponse wraps the admin review queue listing
type QueueListResponse struct {
	Data       []VerificationRequestDetail `json:"data"`
	Pagination PaginationMeta              `json:"pagination"`
}

// PaginationMeta contains pagination information
type PaginationMeta struct {
	Total  int `json:"total" example:"12"`
	Limit  int `json:"limit" example:"20"`
	Offset int `json:"offset" example:"0"`
}

// DecisionBody is the body of an approve/reject call
type DecisionBody struct {
	Notes string `json:"notes,omitempty" example:"documents verified by phone"`
}

// RevokeBody is the body of a manual revocation call
type RevokeBody struct {
	Reason string `json:"reason,omitempty" example:"fraud report"`
}

// ServiceHealth represents health of a single dependency
type ServiceHealth struct {
	Status  string `json:"status" example:"healthy"`
	Latency string `json:"latency" example:"< 1ms"`
	Message string `json:"message,omitempty"`
}

// SystemHealthResponse represents system health check response
type SystemHealthResponse struct {
	Status   string        `json:"status" example:"healthy"`
	Database ServiceHealth `json:"database"`
	Uptime   string        `json:"uptime" example:"24h30m"`
	Version  string        `json:"version" example:"1.0.0"`
}

// MemoryMetrics contains Go runtime memory metrics
type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc_bytes" example:"5242880"`
	TotalAlloc uint64 `json:"total_alloc_bytes" example:"104857600"`
	Sys        uint64 `json:"sys_bytes" example:"20971520"`
	NumGC      uint32 `json:"num_gc" example:"42"`
}

// SystemMetricsData contains runtime metrics
type SystemMetricsData struct {
	Memory     MemoryMetrics `json:"memory"`
	Goroutines int           `json:"goroutines" example:"50"`
}

// SystemMetricsResponse wraps system metrics
type SystemMetricsResponse struct {
	Data SystemMetricsData `json:"data"`
}

// PipelineOverview summarises the verification pipeline
type PipelineOverview struct {
	Pending            int     `json:"pending" example:"12"`
	PendingPreverified int     `json:"pending_preverified" example:"7"`
	Approved           int     `json:"approved" example:"140"`
	Rejected           int     `json:"rejected" example:"23"`
	Superseded         int     `json:"superseded" example:"9"`
	ApprovalRate       float64 `json:"approval_rate" example:"0.86"`
	AvgReviewSeconds   float64 `json:"avg_review_seconds" example:"5400"`
	OldestPendingAge   float64 `json:"oldest_pending_age_seconds" example:"86400"`
}

// PipelineTimelinePoint is one bucket of submission activity
type PipelineTimelinePoint struct {
	Period      string `json:"period" example:"2026-08-01T00:00:00Z"`
	Submitted   int    `json:"submitted" example:"18"`
	Approved    int    `json:"approved" example:"11"`
	Rejected    int    `json:"rejected" example:"2"`
	Preverified int    `json:"preverified" example:"9"`
}

// VerificationMetricsData combines the overview with a bucketed timeline
type VerificationMetricsData struct {
	Overview PipelineOverview        `json:"overview"`
	Timeline []PipelineTimelinePoint `json:"timeline"`
}

// VerificationMetricsResponse wraps verification pipeline metrics
type VerificationMetricsResponse struct {
	Data VerificationMetricsData `json:"data"`
	Meta map[string]any          `json:"meta"`
}

// WebhookData represents a registered webhook endpoint
type WebhookData struct {
	ID        string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string   `json:"name" example:"booking-service"`
	URL       string   `json:"url" example:"https://booking.example.com/hooks/trust"`
	Events    []string `json:"events" example:"provider.approved,provider.revoked"`
	Enabled   bool     `json:"enabled" example:"true"`
	CreatedAt string   `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// CreateWebhookBody is the body for webhook registration
type CreateWebhookBody struct {
	Name    string   `json:"name" example:"booking-service"`
	URL     string   `json:"url" example:"https://booking.example.com/hooks/trust"`
	Events  []string `json:"events" example:"provider.approved,provider.revoked"`
	Enabled bool     `json:"enabled" example:"true"`
}

// CreateWebhookResponse returns the webhook plus its signing secret
type CreateWebhookResponse struct {
	Webhook WebhookData `json:"webhook"`
	Secret  string      `json:"secret" example:"a1b2c3..."`
}

// APIKeyData represents an API key without its secret material
type APIKeyData struct {
	ID          string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string `json:"name" example:"directory-backend"`
	KeyPrefix   string `json:"key_prefix" example:"fk_live_a1b2"`
	Environment string `json:"environment" example:"live"`
	IsActive    bool   `json:"is_active" example:"true"`
	CreatedAt   string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// CreateAPIKeyBody is the body for API key creation
type CreateAPIKeyBody struct {
	Name        string `json:"name" example:"directory-backend"`
	Environment string `json:"environment" example:"live"`
}

// CreateAPIKeyResponse returns the key record plus the plain key, once
type CreateAPIKeyResponse struct {
	Key      APIKeyData `json:"key"`
	PlainKey string     `json:"plain_key" example:"fk_live_a1b2c3d4..."`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Fides Provider Trust API",
		Version:     "v1.0.0",
		Description: "Document verification and trust pipeline for service provider directories",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/verifications - Submit documents
		endpoint.New(
			endpoint.POST,
			"/verifications",
			endpoint.WithTags("Verifications"),
			endpoint.WithSummary("Submit verification documents"),
			endpoint.WithDescription("Accepts license and identity documents for a provider, runs OCR field comparison against the profile, and opens a pending verification request"),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SubmitVerificationResponse{}, "201", "Documents submitted successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "Provider profile not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "CONCURRENT_SUBMISSION", Message: "A pending request already exists"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "NO_DOCUMENTS", Message: "At least one document is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_DOCUMENT", Message: "Unsupported or oversized document"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests, slow down"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/verifications/:id - Get Request
		endpoint.New(
			endpoint.GET,
			"/verifications/{id}",
			endpoint.WithTags("Verifications"),
			endpoint.WithSummary("Get a verification request"),
			endpoint.WithDescription("Retrieves a verification request including OCR scores and decision state"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Verification request ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerificationRequestDetail{}, "200", "Request retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "REQUEST_NOT_FOUND", Message: "Verification request not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/providers/:provider_id/trust - Trust Status
		endpoint.New(
			endpoint.GET,
			"/providers/{provider_id}/trust",
			endpoint.WithTags("Providers"),
			endpoint.WithSummary("Get a provider's trust status"),
			endpoint.WithDescription("Returns the provider's verification status, public visibility and latest request"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("provider_id", parameter.Path, parameter.WithDescription("Provider identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TrustStatusResponse{}, "200", "Status retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "Provider profile not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// PUT /v1/providers/:provider_id/profile - Sync Profile
		endpoint.New(
			endpoint.PUT,
			"/providers/{provider_id}/profile",
			endpoint.WithTags("Providers"),
			endpoint.WithSummary("Sync a provider profile"),
			endpoint.WithDescription("Creates or replaces the profile the OCR comparison checks documents against"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("provider_id", parameter.Path, parameter.WithDescription("Provider identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ProfileResponse{}, "200", "Profile synced successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/providers/:provider_id/profile - Get Profile
		endpoint.New(
			endpoint.GET,
			"/providers/{provider_id}/profile",
			endpoint.WithTags("Providers"),
			endpoint.WithSummary("Get a provider profile"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("provider_id", parameter.Path, parameter.WithDescription("Provider identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ProfileResponse{}, "200", "Profile retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "Provider profile not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// PATCH /v1/providers/:provider_id/profile - Update Profile
		endpoint.New(
			endpoint.PATCH,
			"/providers/{provider_id}/profile",
			endpoint.WithTags("Providers"),
			endpoint.WithSummary("Update profile fields"),
			endpoint.WithDescription("Applies a partial profile edit. Changing a sensitive field on an approved provider revokes the verification atomically and reports which fields triggered it."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("provider_id", parameter.Path, parameter.WithDescription("Provider identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(UpdateProfileResponse{}, "200", "Profile updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "Provider profile not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/admin/queue - Review Queue
		endpoint.New(
			endpoint.GET,
			"/admin/queue",
			endpoint.WithTags("Admin Review"),
			endpoint.WithSummary("List the review queue"),
			endpoint.WithDescription("Lists verification requests awaiting review, pre-verified submissions first"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("status", parameter.Query, parameter.WithDescription("Filter by status (default: pending)")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Page size (default: 20, max: 100)")),
				parameter.IntParam("offset", parameter.Query, parameter.WithDescription("Page offset (default: 0)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(QueueListResponse{}, "200", "Queue retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "FORBIDDEN", Message: "Insufficient role"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/requests/:id - Request Detail
		endpoint.New(
			endpoint.GET,
			"/admin/requests/{id}",
			endpoint.WithTags("Admin Review"),
			endpoint.WithSummary("Get a request for review"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Verification request ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerificationRequestDetail{}, "200", "Request retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "REQUEST_NOT_FOUND", Message: "Verification request not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/requests/:id/approve - Approve
		endpoint.New(
			endpoint.POST,
			"/admin/requests/{id}/approve",
			endpoint.WithTags("Admin Review"),
			endpoint.WithSummary("Approve a verification request"),
			endpoint.WithDescription("Approves a pending request, snapshots the profile's sensitive fields and makes the provider publicly visible. Notes are optional."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Verification request ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerificationRequestDetail{}, "200", "Request approved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "REQUEST_NOT_FOUND", Message: "Verification request not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INVALID_STATE_TRANSITION", Message: "Request already decided"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/requests/:id/reject - Reject
		endpoint.New(
			endpoint.POST,
			"/admin/requests/{id}/reject",
			endpoint.WithTags("Admin Review"),
			endpoint.WithSummary("Reject a verification request"),
			endpoint.WithDescription("Rejects a pending request. Review notes are mandatory so the provider learns what to fix."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Verification request ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerificationRequestDetail{}, "200", "Request rejected"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "REQUEST_NOT_FOUND", Message: "Verification request not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INVALID_STATE_TRANSITION", Message: "Request already decided"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "REVIEW_NOTES_REQUIRED", Message: "Rejection requires review notes"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/providers/:provider_id/revoke - Manual Revoke
		endpoint.New(
			endpoint.POST,
			"/admin/providers/{provider_id}/revoke",
			endpoint.WithTags("Admin Review"),
			endpoint.WithSummary("Revoke an approved provider"),
			endpoint.WithDescription("Withdraws an approved provider's verification and removes it from public listings"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("provider_id", parameter.Path, parameter.WithDescription("Provider identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TrustStatusResponse{}, "200", "Provider revoked"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "Provider profile not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INVALID_STATE_TRANSITION", Message: "Provider is not approved"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/system/health - System Health
		endpoint.New(
			endpoint.GET,
			"/admin/system/health",
			endpoint.WithTags("Admin System"),
			endpoint.WithSummary("Get system health"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SystemHealthResponse{}, "200", "Health retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(SystemHealthResponse{Status: "unhealthy"}, "503", "Service Unavailable"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/system/metrics - Runtime Metrics
		endpoint.New(
			endpoint.GET,
			"/admin/system/metrics",
			endpoint.WithTags("Admin System"),
			endpoint.WithSummary("Get runtime metrics"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SystemMetricsResponse{}, "200", "Metrics retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/metrics/verifications - Pipeline Metrics
		endpoint.New(
			endpoint.GET,
			"/admin/metrics/verifications",
			endpoint.WithTags("Admin System"),
			endpoint.WithSummary("Get verification pipeline metrics"),
			endpoint.WithDescription("Returns queue counts, approval rate and a bucketed submission timeline"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("start_date", parameter.Query, parameter.WithDescription("Timeline start (YYYY-MM-DD, default 30 days ago)")),
				parameter.StrParam("end_date", parameter.Query, parameter.WithDescription("Timeline end, inclusive (YYYY-MM-DD, default today)")),
				parameter.StrParam("interval", parameter.Query, parameter.WithDescription("Bucket size: hour, day, week or month (default: day)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(VerificationMetricsResponse{}, "200", "Metrics retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid date range or interval"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/webhooks - List Webhooks
		endpoint.New(
			endpoint.GET,
			"/admin/webhooks",
			endpoint.WithTags("Admin Webhooks"),
			endpoint.WithSummary("List registered webhooks"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]WebhookData{}, "200", "Webhooks retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/webhooks - Create Webhook
		endpoint.New(
			endpoint.POST,
			"/admin/webhooks",
			endpoint.WithTags("Admin Webhooks"),
			endpoint.WithSummary("Register a webhook endpoint"),
			endpoint.WithDescription("Registers an endpoint for trust events. The signing secret is returned exactly once."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CreateWebhookResponse{}, "201", "Webhook created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "name, url and events are required"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// DELETE /v1/admin/webhooks/:id - Delete Webhook
		endpoint.New(
			endpoint.DELETE,
			"/admin/webhooks/{id}",
			endpoint.WithTags("Admin Webhooks"),
			endpoint.WithSummary("Delete a webhook endpoint"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Webhook ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Webhook deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "NOT_FOUND", Message: "Webhook not found"}, "404", "Not Found"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/admin/api-keys - List API Keys
		endpoint.New(
			endpoint.GET,
			"/admin/api-keys",
			endpoint.WithTags("Admin API Keys"),
			endpoint.WithSummary("List API keys"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]APIKeyData{}, "200", "Keys retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/api-keys - Create API Key
		endpoint.New(
			endpoint.POST,
			"/admin/api-keys",
			endpoint.WithTags("Admin API Keys"),
			endpoint.WithSummary("Create an API key"),
			endpoint.WithDescription("Generates a new API key. The plain key value is returned exactly once."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CreateAPIKeyResponse{}, "201", "Key created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "name is required"}, "422", "Unprocessable Entity"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/admin/api-keys/:id/revoke - Revoke API Key
		endpoint.New(
			endpoint.POST,
			"/admin/api-keys/{id}/revoke",
			endpoint.WithTags("Admin API Keys"),
			endpoint.WithSummary("Revoke an API key"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("API key ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Key revoked"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "API_KEY_NOT_FOUND", Message: "API key not found"}, "404", "Not Found"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// DELETE /v1/admin/api-keys/:id - Delete API Key
		endpoint.New(
			endpoint.DELETE,
			"/admin/api-keys/{id}",
			endpoint.WithTags("Admin API Keys"),
			endpoint.WithSummary("Delete an API key"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("API key ID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Key deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "API_KEY_NOT_FOUND", Message: "API key not found"}, "404", "Not Found"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
