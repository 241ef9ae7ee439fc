package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AssignmentsHandler covers the admin-side routing of complaints: claiming
// them and delegating them to technicians.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

// Claim POST /complaints/:id/assign.
func (h *AssignmentsHandler) Claim(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Claim(c.Context(), c.Params("id"), req.AdminEmail, req.AdminName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// AssignTechnician POST /complaints/:id/assign-technician.
func (h *AssignmentsHandler) AssignTechnician(c *fiber.Ctx) error {
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.AssignTechnician(c.Context(), c.Params("id"), req.TechnicianEmail, req.TechnicianName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// TechnicianAvailability GET /technicians/available.
func (h *AssignmentsHandler) TechnicianAvailability(c *fiber.Ctx) error {
	availability, err := h.service.ListTechnicianAvailability(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.TechnicianStatusResponse, 0, len(availability))
	for _, entry := range availability {
		tech := entry.Technician
		items = append(items, dto.TechnicianStatusResponse{
			ID:          tech.ID,
			Name:        tech.Name,
			Email:       tech.Email,
			Phone:       tech.Phone,
			City:        tech.City,
			ActiveCount: entry.ActiveCount,
			Available:   entry.Available,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
