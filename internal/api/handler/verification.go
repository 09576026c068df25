package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/service"
)

const (
	maxDocumentSize = 10 * 1024 * 1024 // 10MB
)

var validDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// TrustService interface for the verification pipeline
type TrustService interface {
	Submit(ctx context.Context, input service.SubmitInput) (*domain.VerificationRequest, error)
	Status(ctx context.Context, providerID uuid.UUID) (*service.TrustStatus, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*domain.VerificationRequest, error)
}

// VerificationHandler handles credential submission and trust status requests
type VerificationHandler struct {
	service TrustService
	logger  *slog.Logger
}

// NewVerificationHandler creates a new VerificationHandler instance
func NewVerificationHandler(service TrustService, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		logger:  logger,
	}
}

// SubmitResponse response for the submission endpoint
type SubmitResponse struct {
	RequestID   string            `json:"request_id"`
	ProviderID  string            `json:"provider_id"`
	Status      string            `json:"status"`
	Preverified bool              `json:"preverified"`
	LicenseOCR  *domain.OCRResult `json:"license_ocr,omitempty"`
	IdentityOCR *domain.OCRResult `json:"identity_ocr,omitempty"`
	SubmittedAt string            `json:"submitted_at"`
}

// Submit POST /v1/verifications - submit credential documents for review
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(strings.TrimSpace(c.FormValue("provider_id")))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("provider_id is required"))
	}

	licenseRef, licenseDoc, err := extractDocument(c, string(domain.DocumentLicense))
	if err != nil {
		return fmt.Errorf("submit verification: %w", err)
	}

	identityRef, identityDoc, err := extractDocument(c, string(domain.DocumentIdentity))
	if err != nil {
		return fmt.Errorf("submit verification: %w", err)
	}

	request, err := h.service.Submit(c.Context(), service.SubmitInput{
		ProviderID:       providerID,
		LicenseRef:       licenseRef,
		LicenseDocument:  licenseDoc,
		IdentityRef:      identityRef,
		IdentityDocument: identityDoc,
		AdditionalNotes:  strings.TrimSpace(c.FormValue("additional_notes")),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(SubmitResponse{
		RequestID:   request.ID.String(),
		ProviderID:  request.ProviderID.String(),
		Status:      string(request.Status),
		Preverified: request.Preverified,
		LicenseOCR:  request.LicenseOCR,
		IdentityOCR: request.IdentityOCR,
		SubmittedAt: request.SubmittedAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Status GET /v1/providers/:provider_id/trust - current trust state + latest request
func (h *VerificationHandler) Status(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("provider_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid provider_id"))
	}

	status, err := h.service.Status(c.Context(), providerID)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// GetRequest GET /v1/verifications/:id - fetch a single verification request
func (h *VerificationHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid request id"))
	}

	request, err := h.service.GetRequest(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.JSON(request)
}

// extractDocument reads an optional document slot from the multipart form.
// A missing slot returns empty values without error; which slots are
// mandatory is the service's call.
func extractDocument(c *fiber.Ctx, field string) (string, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil, nil
	}

	if file.Size == 0 || file.Size > maxDocumentSize {
		return "", nil, domain.ErrInvalidDocument.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validDocumentTypes[contentType] {
		return "", nil, domain.ErrInvalidDocument.WithError(nil)
	}

	document, err := readDocument(file)
	if err != nil {
		return "", nil, domain.ErrInvalidDocument.WithError(err)
	}

	return file.Filename, document, nil
}

func readDocument(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(f)
}
