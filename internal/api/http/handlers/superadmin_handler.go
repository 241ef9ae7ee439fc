package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// SuperAdminHandler bundles the oversight endpoints: global listings,
// statistics, admin blocking, and technician payouts.
type SuperAdminHandler struct {
	complaints *service.ComplaintService
	payments   *service.PaymentService
	accounts   *service.AccountService
	stats      *service.StatsService
}

// NewSuperAdminHandler constructs handler.
func NewSuperAdminHandler(complaints *service.ComplaintService, payments *service.PaymentService, accounts *service.AccountService, stats *service.StatsService) *SuperAdminHandler {
	return &SuperAdminHandler{
		complaints: complaints,
		payments:   payments,
		accounts:   accounts,
		stats:      stats,
	}
}

// ListAllComplaints GET /superadmin/complaints.
func (h *SuperAdminHandler) ListAllComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListAdmins GET /superadmin/admins.
func (h *SuperAdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.accounts.ListAdmins(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(admins))
	for i := range admins {
		items = append(items, dto.NewUserResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Statistics GET /superadmin/statistics.
func (h *SuperAdminHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.stats.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// ToggleBlock POST /superadmin/admins/:id/toggle-block.
func (h *SuperAdminHandler) ToggleBlock(c *fiber.Ctx) error {
	var req dto.ToggleBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	blockedBy := req.BlockedBy
	if blockedBy == "" {
		if actor := actorFromContext(c); actor != nil {
			blockedBy = actor.Name
		}
	}

	admin, err := h.accounts.ToggleBlock(c.Context(), c.Params("id"), blockedBy, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(admin)})
}

// PayTechnician POST /superadmin/complaints/:id/pay-technician.
func (h *SuperAdminHandler) PayTechnician(c *fiber.Ctx) error {
	var req dto.PayTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.payments.PayTechnician(c.Context(), actorFromContext(c), c.Params("id"), req.Amount, req.PaidBy, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// ListFeedbacks GET /superadmin/feedbacks.
func (h *SuperAdminHandler) ListFeedbacks(c *fiber.Ctx) error {
	feedbacks, err := h.complaints.ListFeedbacks(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		items = append(items, dto.NewFeedbackResponse(&feedbacks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
