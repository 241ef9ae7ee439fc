package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler manages complaint CRUD and technician-side transitions.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Create POST /complaints/create.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Create(c.Context(), service.CreateComplaintInput{
		CustomerEmail: req.CustomerEmail,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// ListUnassigned GET /complaints/unassigned.
func (h *ComplaintsHandler) ListUnassigned(c *fiber.Ctx) error {
	complaints, err := h.service.ListUnassigned(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListForAdmin GET /complaints/admin/:email.
func (h *ComplaintsHandler) ListForAdmin(c *fiber.Ctx) error {
	complaints, err := h.service.ListForAdmin(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListForCustomer GET /complaints/customer/:email.
func (h *ComplaintsHandler) ListForCustomer(c *fiber.Ctx) error {
	complaints, err := h.service.ListForCustomer(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListForTechnician GET /complaints/technician/:email.
func (h *ComplaintsHandler) ListForTechnician(c *fiber.Ctx) error {
	complaints, err := h.service.ListForTechnician(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// Start POST /complaints/:id/start.
func (h *ComplaintsHandler) Start(c *fiber.Ctx) error {
	complaint, err := h.service.StartWork(c.Context(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Resolve POST /complaints/:id/resolve.
func (h *ComplaintsHandler) Resolve(c *fiber.Ctx) error {
	complaint, err := h.service.Resolve(c.Context(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// SubmitFeedback POST /complaints/:id/feedback.
func (h *ComplaintsHandler) SubmitFeedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	feedback, err := h.service.SubmitFeedback(c.Context(), principal.User, c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(feedback)})
}
