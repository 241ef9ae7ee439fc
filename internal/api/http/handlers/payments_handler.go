package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// PaymentsHandler exposes the customer checkout flow.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// CreateSession POST /payments/create-session.
func (h *PaymentsHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.CreateCheckoutSession(c.Context(), req.ComplaintID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.CreateSessionResponse{
			SessionID:  result.SessionID,
			SessionURL: result.SessionURL,
			Amount:     result.Amount,
		},
	})
}

// Confirm POST /payments/confirm.
func (h *PaymentsHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SessionID == "" || req.ComplaintID == "" {
		return apperrors.NewValidationError("sessionId and complaintId required", nil)
	}

	complaint, err := h.service.ConfirmCheckout(c.Context(), req.SessionID, req.ComplaintID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}
