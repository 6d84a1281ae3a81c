package handler

import (
	"errors"
	"net/http"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/infrastructure/webhook"
	ucapplicant "job-portal/internal/usecase/applicant"

	"github.com/gofiber/fiber/v3"
)

// WebhookHandler receives identity-provider events. The signature is checked
// over the raw body before anything is parsed.
type WebhookHandler struct {
	uc       *ucapplicant.Service
	verifier webhook.Verifier
}

func NewWebhookHandler(uc *ucapplicant.Service, verifier webhook.Verifier) *WebhookHandler {
	return &WebhookHandler{uc: uc, verifier: verifier}
}

func (h *WebhookHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/webhook", h.Receive)
}

func (h *WebhookHandler) Receive(c fiber.Ctx) error {
	headers := http.Header{}
	for _, k := range []string{webhook.HeaderID, webhook.HeaderTimestamp, webhook.HeaderSignature} {
		if v := c.Get(k); v != "" {
			headers.Set(k, v)
		}
	}
	if !webhook.HasHeaders(headers) {
		return middleware.BadRequest("Missing Svix headers", nil, webhook.ErrMissingHeaders)
	}

	payload := c.Body()
	if err := h.verifier.Verify(payload, headers); err != nil {
		if errors.Is(err, webhook.ErrMissingHeaders) {
			return middleware.BadRequest("Missing Svix headers", nil, err)
		}
		return middleware.NewAppError(fiber.StatusForbidden, "Invalid webhook signature", nil, err)
	}

	if err := h.uc.HandleWebhook(c.Context(), headers.Get(webhook.HeaderID), payload); err != nil {
		if errors.Is(err, ucapplicant.ErrInvalidPayload) {
			return middleware.BadRequest("Invalid webhook payload", nil, err)
		}
		return middleware.Internal(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "received"})
}
