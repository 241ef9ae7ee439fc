package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Assignments    *handlers.AssignmentsHandler
	Payments       *handlers.PaymentsHandler
	SuperAdmin     *handlers.SuperAdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every complaint route sits behind the auth
// middleware plus a role guard matching who may call it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	authed := cfg.AuthMiddleware.Handle

	customer := auth.RequireRole(domain.RoleCustomer)
	app.Post("/complaints/create", authed, customer, cfg.Complaints.Create)
	app.Get("/complaints/customer/:email", authed, customer, cfg.Complaints.ListForCustomer)
	app.Post("/complaints/:id/feedback", authed, customer, cfg.Complaints.SubmitFeedback)

	payments := app.Group("/payments/stripe", authed, customer)
	payments.Post("/create-session", cfg.Payments.CreateSession)
	payments.Post("/confirm", cfg.Payments.Confirm)

	admin := auth.RequireRole(domain.RoleAdmin)
	app.Get("/complaints/unassigned", authed, admin, cfg.Complaints.ListUnassigned)
	app.Get("/complaints/admin/:email", authed, admin, cfg.Complaints.ListForAdmin)
	app.Post("/complaints/:id/assign", authed, admin, cfg.Assignments.Claim)
	app.Post("/complaints/:id/assign-technician", authed, admin, cfg.Assignments.AssignTechnician)
	app.Get("/technicians/available", authed, admin, cfg.Assignments.TechnicianAvailability)

	technician := auth.RequireRole(domain.RoleTechnician)
	app.Get("/complaints/technician/:email", authed, technician, cfg.Complaints.ListForTechnician)
	app.Post("/complaints/:id/start", authed, technician, cfg.Complaints.Start)
	app.Post("/complaints/:id/resolve", authed, technician, cfg.Complaints.Resolve)

	superAdmin := app.Group("/superadmin", authed, auth.RequireRole(domain.RoleSuperAdmin))
	superAdmin.Get("/complaints/all", cfg.SuperAdmin.ListAllComplaints)
	superAdmin.Get("/admins", cfg.SuperAdmin.ListAdmins)
	superAdmin.Get("/statistics", cfg.SuperAdmin.Statistics)
	superAdmin.Get("/feedbacks", cfg.SuperAdmin.ListFeedbacks)
	superAdmin.Post("/admins/:id/toggle-block", cfg.SuperAdmin.ToggleBlock)
	superAdmin.Post("/complaints/:id/pay-technician", cfg.SuperAdmin.PayTechnician)
}
