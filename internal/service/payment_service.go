package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/gateway"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// PaymentService drives the customer checkout flow and technician payouts.
type PaymentService struct {
	complaints repository.ComplaintRepository
	gateway    gateway.CheckoutGateway
	dispatcher events.Dispatcher
}

// PaymentDependencies bundles collaborators.
type PaymentDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Gateway       gateway.CheckoutGateway
	Dispatcher    events.Dispatcher
}

// NewPaymentService creates the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		complaints: deps.ComplaintRepo,
		gateway:    deps.Gateway,
		dispatcher: deps.Dispatcher,
	}
}

// CheckoutSessionResult is returned to the caller for redirect.
type CheckoutSessionResult struct {
	SessionID  string
	SessionURL string
	Amount     float64
}

// CreateCheckoutSession opens a hosted checkout session. Only RESOLVED
// complaints may be charged.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, complaintID string) (*CheckoutSessionResult, error) {
	complaint, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status != domain.ComplaintStatusResolved {
		return nil, apperrors.NewConflict("complaint must be resolved before payment", map[string]any{"status": complaint.Status})
	}

	amount := complaint.Payment.Amount
	if amount <= 0 {
		amount = complaint.TotalAmount
	}

	session, err := s.gateway.CreateSession(ctx, gateway.CreateSessionInput{
		ComplaintID: complaint.ID,
		ProductName: "Complaint: " + complaint.Title,
		Amount:      amount,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &CheckoutSessionResult{
		SessionID:  session.ID,
		SessionURL: session.URL,
		Amount:     amount,
	}, nil
}

// ConfirmCheckout verifies the session with the gateway and, when paid, closes
// the complaint recording the charge. The close itself is conditional on the
// complaint still being RESOLVED.
func (s *PaymentService) ConfirmCheckout(ctx context.Context, sessionID, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !session.Paid() {
		return nil, apperrors.NewConflict("payment not completed", map[string]any{"session_id": sessionID})
	}

	now := time.Now()
	method := "stripe"
	payment := domain.Payment{
		Status:        domain.PaymentStatusCompleted,
		Amount:        float64(session.AmountTotal) / 100,
		TransactionID: &session.TransactionID,
		Method:        &method,
		PaidAt:        &now,
		Details: map[string]any{
			"session_id":     session.ID,
			"customer_email": session.CustomerEmail,
			"currency":       session.Currency,
			"amount_total":   session.AmountTotal,
		},
	}

	ok, err := s.complaints.CompletePayment(ctx, complaint.ID, payment)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, apperrors.NewConflict("complaint is not awaiting payment", map[string]any{"complaint_id": complaint.ID})
	}

	updated, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:        events.EventPaymentCompleted,
		ComplaintID: updated.ID,
		Actor:       events.Actor{UserID: updated.CustomerID, Email: updated.CustomerEmail, Role: domain.RoleCustomer},
		Payload: events.PaymentCompletedPayload{
			Amount:        payment.Amount,
			TransactionID: session.TransactionID,
		},
	})
	return updated, nil
}

// PayTechnician records the technician payout on a complaint.
func (s *PaymentService) PayTechnician(ctx context.Context, actor *domain.User, complaintID string, amount float64, paidBy, notes string) (*domain.Complaint, error) {
	complaint, err := s.loadComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		amount = complaint.TechPayment.Amount
	}
	if paidBy == "" {
		paidBy = "admin"
	}
	if notes == "" {
		notes = "Payment completed"
	}

	now := time.Now()
	payout := domain.TechnicianPayment{
		Status: domain.PaymentStatusCompleted,
		Amount: amount,
		PaidAt: &now,
		PaidBy: &paidBy,
		Notes:  &notes,
	}
	if err := s.complaints.SetTechnicianPayment(ctx, complaint.ID, payout); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	event := events.Event{
		Type:        events.EventTechnicianPaid,
		ComplaintID: updated.ID,
		Payload:     events.TechnicianPaidPayload{Amount: amount, PaidBy: paidBy},
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID, Email: actor.Email, Role: actor.Role}
	}
	s.publish(ctx, event)
	return updated, nil
}

func (s *PaymentService) loadComplaint(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	if complaintID == "" {
		return nil, apperrors.NewValidationError("complaintId required", nil)
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return complaint, nil
}

func (s *PaymentService) publish(ctx context.Context, event events.Event) {
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
