package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated    EventType = "complaint_created"
	EventComplaintClaimed    EventType = "complaint_claimed"
	EventTechnicianAssigned  EventType = "technician_assigned"
	EventStatusChanged       EventType = "status_changed"
	EventPaymentCompleted    EventType = "payment_completed"
	EventTechnicianPaid      EventType = "technician_paid"
	EventAccountBlockToggled EventType = "account_block_toggled"
	EventFeedbackSubmitted   EventType = "feedback_submitted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email,omitempty"`
	Role   domain.UserRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Category domain.ComplaintCategory `json:"category"`
	Priority domain.ComplaintPriority `json:"priority"`
	Title    string                   `json:"title"`
}

// ComplaintClaimedPayload payload.
type ComplaintClaimedPayload struct {
	AdminEmail string `json:"admin_email"`
	AdminName  string `json:"admin_name"`
}

// TechnicianAssignedPayload payload.
type TechnicianAssignedPayload struct {
	TechnicianEmail string `json:"technician_email"`
	TechnicianName  string `json:"technician_name"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// PaymentCompletedPayload payload.
type PaymentCompletedPayload struct {
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

// TechnicianPaidPayload payload.
type TechnicianPaidPayload struct {
	Amount float64 `json:"amount"`
	PaidBy string  `json:"paid_by"`
}

// AccountBlockToggledPayload payload.
type AccountBlockToggledPayload struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Rating int `json:"rating"`
}
