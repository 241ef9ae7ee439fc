package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	CustomerEmail string                   `json:"customerEmail"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      domain.ComplaintCategory `json:"category"`
	Priority      domain.ComplaintPriority `json:"priority"`
}

// AssignRequest payload for an admin claiming a complaint.
type AssignRequest struct {
	AdminEmail string `json:"adminEmail"`
	AdminName  string `json:"adminName"`
}

// AssignTechnicianRequest payload for delegating to a technician.
type AssignTechnicianRequest struct {
	TechnicianEmail string `json:"technicianEmail"`
	TechnicianName  string `json:"technicianName"`
}

// AdminAssignmentResponse mirrors the admin claim record.
type AdminAssignmentResponse struct {
	AdminID    string    `json:"adminId"`
	AdminEmail string    `json:"adminEmail"`
	AdminName  string    `json:"adminName"`
	TakenAt    time.Time `json:"takenAt"`
}

// TechnicianAssignmentResponse mirrors the technician assignment record.
type TechnicianAssignmentResponse struct {
	TechnicianID    string    `json:"technicianId"`
	TechnicianEmail string    `json:"technicianEmail"`
	TechnicianName  string    `json:"technicianName"`
	TechnicianPhone string    `json:"technicianPhone"`
	AssignedAt      time.Time `json:"assignedAt"`
}

// PaymentResponse mirrors the customer payment record.
type PaymentResponse struct {
	Status        domain.PaymentStatus `json:"status"`
	Amount        float64              `json:"amount"`
	TransactionID *string              `json:"transactionId,omitempty"`
	Method        *string              `json:"method,omitempty"`
	PaidAt        *time.Time           `json:"paidAt,omitempty"`
	Details       map[string]any       `json:"details,omitempty"`
}

// TechnicianPaymentResponse mirrors the payout record.
type TechnicianPaymentResponse struct {
	Status domain.PaymentStatus `json:"status"`
	Amount float64              `json:"amount"`
	PaidAt *time.Time           `json:"paidAt,omitempty"`
	PaidBy *string              `json:"paidBy,omitempty"`
	Notes  *string              `json:"notes,omitempty"`
}

// ComplaintResponse provides the full complaint view.
type ComplaintResponse struct {
	ID                string                        `json:"id"`
	CustomerID        string                        `json:"customerId"`
	CustomerEmail     string                        `json:"customerEmail"`
	CustomerName      string                        `json:"customerName"`
	CustomerPhone     string                        `json:"customerPhone"`
	CustomerCity      string                        `json:"customerCity"`
	Title             string                        `json:"title"`
	Description       string                        `json:"description"`
	Category          domain.ComplaintCategory      `json:"category"`
	Priority          domain.ComplaintPriority      `json:"priority"`
	Status            domain.ComplaintStatus        `json:"status"`
	TotalAmount       float64                       `json:"totalAmount"`
	AssignedTo        *AdminAssignmentResponse      `json:"assignedTo,omitempty"`
	Technician        *TechnicianAssignmentResponse `json:"technicianAssigned,omitempty"`
	Payment           PaymentResponse               `json:"payment"`
	TechnicianPayment TechnicianPaymentResponse     `json:"technicianPayment"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		CustomerEmail: c.CustomerEmail,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		CustomerCity:  c.CustomerCity,
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		Priority:      c.Priority,
		Status:        c.Status,
		TotalAmount:   c.TotalAmount,
		Payment: PaymentResponse{
			Status:        c.Payment.Status,
			Amount:        c.Payment.Amount,
			TransactionID: c.Payment.TransactionID,
			Method:        c.Payment.Method,
			PaidAt:        c.Payment.PaidAt,
			Details:       c.Payment.Details,
		},
		TechnicianPayment: TechnicianPaymentResponse{
			Status: c.TechPayment.Status,
			Amount: c.TechPayment.Amount,
			PaidAt: c.TechPayment.PaidAt,
			PaidBy: c.TechPayment.PaidBy,
			Notes:  c.TechPayment.Notes,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.AssignedTo != nil {
		resp.AssignedTo = &AdminAssignmentResponse{
			AdminID:    c.AssignedTo.AdminID,
			AdminEmail: c.AssignedTo.AdminEmail,
			AdminName:  c.AssignedTo.AdminName,
			TakenAt:    c.AssignedTo.TakenAt,
		}
	}
	if c.Technician != nil {
		resp.Technician = &TechnicianAssignmentResponse{
			TechnicianID:    c.Technician.TechnicianID,
			TechnicianEmail: c.Technician.TechnicianEmail,
			TechnicianName:  c.Technician.TechnicianName,
			TechnicianPhone: c.Technician.TechnicianPhone,
			AssignedAt:      c.Technician.AssignedAt,
		}
	}
	return resp
}

// NewComplaintResponses maps a slice of complaints.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}

// FeedbackRequest payload.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackResponse view.
type FeedbackResponse struct {
	ID             string    `json:"id"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerName   string    `json:"customerName"`
	ComplaintID    string    `json:"complaintId"`
	ComplaintTitle string    `json:"complaintTitle"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewFeedbackResponse maps a domain feedback.
func NewFeedbackResponse(fb *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:             fb.ID,
		CustomerEmail:  fb.CustomerEmail,
		CustomerName:   fb.CustomerName,
		ComplaintID:    fb.ComplaintID,
		ComplaintTitle: fb.ComplaintTitle,
		Rating:         fb.Rating,
		Comment:        fb.Comment,
		CreatedAt:      fb.CreatedAt,
	}
}
