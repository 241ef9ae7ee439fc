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

// ComplaintService coordinates complaint creation, the technician-side status
// transitions, listings, and feedback.
type ComplaintService struct {
	complaints    repository.ComplaintRepository
	users         repository.UserRepository
	feedbacks     repository.FeedbackRepository
	dispatcher    events.Dispatcher
	defaultAmount float64
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	FeedbackRepo  repository.FeedbackRepository
	Dispatcher    events.Dispatcher
	DefaultAmount float64
}

// CreateComplaintInput describes complaint creation payload.
type CreateComplaintInput struct {
	CustomerEmail string
	Title         string
	Description   string
	Category      domain.ComplaintCategory
	Priority      domain.ComplaintPriority
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	amount := deps.DefaultAmount
	if amount <= 0 {
		amount = 500
	}
	return &ComplaintService{
		complaints:    deps.ComplaintRepo,
		users:         deps.UserRepo,
		feedbacks:     deps.FeedbackRepo,
		dispatcher:    deps.Dispatcher,
		defaultAmount: amount,
	}
}

// Create files a new complaint with status OPEN, copying the customer snapshot
// from the submitting user's record.
func (s *ComplaintService) Create(ctx context.Context, input CreateComplaintInput) (*domain.Complaint, error) {
	if input.CustomerEmail == "" || input.Title == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("customerEmail, title, description required", nil)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	customer, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.CustomerEmail)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": input.CustomerEmail})
		}
		return nil, apperrors.MapError(err)
	}

	complaint := &domain.Complaint{
		CustomerID:    customer.ID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerCity:  cityOrEmpty(customer),
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.ComplaintStatusOpen,
		TotalAmount:   s.defaultAmount,
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: customer.ID, Email: customer.Email, Role: customer.Role},
		Payload: events.ComplaintCreatedPayload{
			Category: complaint.Category,
			Priority: complaint.Priority,
			Title:    complaint.Title,
		},
	})
	return complaint, nil
}

// GetByID fetches a single complaint.
func (s *ComplaintService) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// ListUnassigned returns complaints still in OPEN, most urgent first.
func (s *ComplaintService) ListUnassigned(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.ListUnassigned(ctx)
}

// ListForAdmin returns complaints claimed by the given admin.
func (s *ComplaintService) ListForAdmin(ctx context.Context, adminEmail string) ([]domain.Complaint, error) {
	return s.complaints.ListByAdminEmail(ctx, strings.ToLower(adminEmail))
}

// ListForCustomer returns complaints filed by the given customer.
func (s *ComplaintService) ListForCustomer(ctx context.Context, customerEmail string) ([]domain.Complaint, error) {
	return s.complaints.ListByCustomerEmail(ctx, strings.ToLower(customerEmail))
}

// ListForTechnician returns complaints delegated to the given technician.
func (s *ComplaintService) ListForTechnician(ctx context.Context, technicianEmail string) ([]domain.Complaint, error) {
	return s.complaints.ListByTechnicianEmail(ctx, strings.ToLower(technicianEmail))
}

// ListAll returns every complaint, newest first.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.ListAll(ctx)
}

// StartWork moves an ASSIGNED complaint to IN_PROGRESS.
func (s *ComplaintService) StartWork(ctx context.Context, actor *domain.User, complaintID string) (*domain.Complaint, error) {
	return s.advance(ctx, actor, complaintID,
		[]domain.ComplaintStatus{domain.ComplaintStatusAssigned},
		domain.ComplaintStatusInProgress,
		"complaint is not ready to start")
}

// Resolve moves an ASSIGNED or IN_PROGRESS complaint to RESOLVED.
func (s *ComplaintService) Resolve(ctx context.Context, actor *domain.User, complaintID string) (*domain.Complaint, error) {
	return s.advance(ctx, actor, complaintID,
		[]domain.ComplaintStatus{domain.ComplaintStatusAssigned, domain.ComplaintStatusInProgress},
		domain.ComplaintStatusResolved,
		"complaint is not in progress")
}

func (s *ComplaintService) advance(ctx context.Context, actor *domain.User, complaintID string, from []domain.ComplaintStatus, to domain.ComplaintStatus, conflictMsg string) (*domain.Complaint, error) {
	ok, err := s.complaints.AdvanceStatus(ctx, complaintID, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		// Zero rows: either the complaint does not exist or the guard failed.
		if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
			}
			return nil, apperrors.MapError(err)
		}
		return nil, apperrors.NewConflict(conflictMsg, map[string]any{"complaint_id": complaintID})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	event := events.Event{
		Type:        events.EventStatusChanged,
		ComplaintID: complaint.ID,
		Payload:     events.StatusChangedPayload{OldStatus: from[0], NewStatus: to},
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID, Email: actor.Email, Role: actor.Role}
	}
	s.publish(ctx, event)
	return complaint, nil
}

// SubmitFeedback records the single feedback allowed per complaint. The
// complaint must belong to the customer and be RESOLVED or CLOSED.
func (s *ComplaintService) SubmitFeedback(ctx context.Context, customer *domain.User, complaintID string, rating int, comment string) (*domain.Feedback, error) {
	if !domain.ValidRating(rating) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": rating})
	}
	if strings.TrimSpace(comment) == "" {
		return nil, apperrors.NewValidationError("comment required", nil)
	}

	complaint, err := s.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.CustomerEmail != customer.Email {
		return nil, apperrors.NewForbidden("complaint belongs to another customer", nil)
	}
	if complaint.Status != domain.ComplaintStatusResolved && complaint.Status != domain.ComplaintStatusClosed {
		return nil, apperrors.NewConflict("complaint is not resolved yet", map[string]any{"status": complaint.Status})
	}

	if _, err := s.feedbacks.GetByComplaintID(ctx, complaintID); err == nil {
		return nil, apperrors.NewConflict("feedback already submitted for this complaint", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	feedback := &domain.Feedback{
		CustomerID:     customer.ID,
		CustomerEmail:  customer.Email,
		CustomerName:   customer.Name,
		ComplaintID:    complaint.ID,
		ComplaintTitle: complaint.Title,
		Rating:         rating,
		Comment:        strings.TrimSpace(comment),
	}
	if err := s.feedbacks.Create(ctx, feedback); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventFeedbackSubmitted,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: customer.ID, Email: customer.Email, Role: customer.Role},
		Payload:     events.FeedbackSubmittedPayload{Rating: rating},
	})
	return feedback, nil
}

// ListFeedbacks returns all feedback entries, newest first.
func (s *ComplaintService) ListFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedbacks.ListAll(ctx)
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
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

func cityOrEmpty(user *domain.User) string {
	if user.City == nil {
		return ""
	}
	return *user.City
}
