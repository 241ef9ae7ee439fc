package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AssignmentService handles the two assignment transitions: admin claims and
// technician delegation. Both are single conditional writes, so two racing
// calls cannot both succeed.
type AssignmentService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TechnicianAvailability pairs a technician with their active workload.
type TechnicianAvailability struct {
	Technician  domain.User
	ActiveCount int64
	Available   bool
}

// Claim lets an admin take an OPEN complaint. Exactly one of two concurrent
// claims succeeds; the loser gets a conflict.
func (s *AssignmentService) Claim(ctx context.Context, complaintID, adminEmail, adminName string) (*domain.Complaint, error) {
	if adminEmail == "" || adminName == "" {
		return nil, apperrors.NewValidationError("adminEmail and adminName required", nil)
	}

	admin, err := s.userWithRole(ctx, adminEmail, domain.RoleAdmin, "admin")
	if err != nil {
		return nil, err
	}

	assignment := domain.AdminAssignment{
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
		AdminName:  adminName,
		TakenAt:    time.Now(),
	}
	ok, err := s.complaints.Claim(ctx, complaintID, assignment)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
			}
			return nil, apperrors.MapError(err)
		}
		return nil, apperrors.NewConflict("complaint already taken by another admin", map[string]any{"complaint_id": complaintID})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintClaimed,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: admin.ID, Email: admin.Email, Role: admin.Role},
		Payload:     events.ComplaintClaimedPayload{AdminEmail: admin.Email, AdminName: adminName},
	})
	return complaint, nil
}

// AssignTechnician delegates a TAKEN complaint to a technician holding no other
// active job. The one-active-job rule is enforced inside the conditional write,
// not by a separate read.
func (s *AssignmentService) AssignTechnician(ctx context.Context, complaintID, technicianEmail, technicianName string) (*domain.Complaint, error) {
	if technicianEmail == "" || technicianName == "" {
		return nil, apperrors.NewValidationError("technicianEmail and technicianName required", nil)
	}

	technician, err := s.userWithRole(ctx, technicianEmail, domain.RoleTechnician, "technician")
	if err != nil {
		return nil, err
	}

	assignment := domain.TechnicianAssignment{
		TechnicianID:    technician.ID,
		TechnicianEmail: technician.Email,
		TechnicianName:  technicianName,
		TechnicianPhone: technician.Phone,
		AssignedAt:      time.Now(),
	}
	ok, err := s.complaints.AssignTechnician(ctx, complaintID, assignment)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		complaint, err := s.complaints.GetByID(ctx, complaintID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
			}
			return nil, apperrors.MapError(err)
		}
		if complaint.Status != domain.ComplaintStatusTaken {
			return nil, apperrors.NewConflict("complaint cannot be assigned to a technician", map[string]any{"status": complaint.Status})
		}
		return nil, apperrors.NewConflict("technician already assigned to another complaint", map[string]any{"technician_email": technician.Email})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventTechnicianAssigned,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: technician.ID, Email: technician.Email, Role: technician.Role},
		Payload:     events.TechnicianAssignedPayload{TechnicianEmail: technician.Email, TechnicianName: technicianName},
	})
	return complaint, nil
}

// ListTechnicianAvailability returns every technician with their active-count.
// A technician is available iff the count is zero.
func (s *AssignmentService) ListTechnicianAvailability(ctx context.Context) ([]TechnicianAvailability, error) {
	technicians, err := s.users.ListByRole(ctx, domain.RoleTechnician)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	activeCounts, err := s.complaints.ActiveCountByTechnician(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]TechnicianAvailability, 0, len(technicians))
	for _, tech := range technicians {
		count := activeCounts[tech.ID]
		result = append(result, TechnicianAvailability{
			Technician:  tech,
			ActiveCount: count,
			Available:   count == 0,
		})
	}
	return result, nil
}

func (s *AssignmentService) userWithRole(ctx context.Context, email string, role domain.UserRole, label string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(label, map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	if user.Role != role {
		return nil, apperrors.NewValidationError("user is not a "+label, map[string]any{"email": email})
	}
	return user, nil
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
