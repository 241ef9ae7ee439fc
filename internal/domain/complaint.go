package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "OPEN"
	ComplaintStatusTaken      ComplaintStatus = "TAKEN"
	ComplaintStatusAssigned   ComplaintStatus = "ASSIGNED"
	ComplaintStatusInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
	ComplaintStatusClosed     ComplaintStatus = "CLOSED"
)

// ComplaintCategory enumerates service categories.
type ComplaintCategory string

const (
	CategoryElectrical  ComplaintCategory = "ELECTRICAL"
	CategoryPlumbing    ComplaintCategory = "PLUMBING"
	CategoryCleaning    ComplaintCategory = "CLEANING"
	CategoryMaintenance ComplaintCategory = "MAINTENANCE"
	CategoryOther       ComplaintCategory = "OTHER"
)

// ValidCategory reports whether category is known.
func ValidCategory(category ComplaintCategory) bool {
	switch category {
	case CategoryElectrical, CategoryPlumbing, CategoryCleaning, CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}

// ComplaintPriority enumerates urgency.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
	PriorityUrgent ComplaintPriority = "URGENT"
)

// ValidPriority reports whether priority is known.
func ValidPriority(priority ComplaintPriority) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PaymentStatus enumerates payment record states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// AdminAssignment records the admin who claimed a complaint.
type AdminAssignment struct {
	AdminID    string
	AdminEmail string
	AdminName  string
	TakenAt    time.Time
}

// TechnicianAssignment records the technician delegated to a complaint.
type TechnicianAssignment struct {
	TechnicianID    string
	TechnicianEmail string
	TechnicianName  string
	TechnicianPhone string
	AssignedAt      time.Time
}

// Payment records the customer-facing charge.
type Payment struct {
	Status        PaymentStatus
	Amount        float64
	TransactionID *string
	Method        *string
	PaidAt        *time.Time
	Details       map[string]any
}

// TechnicianPayment records the payout to the technician.
type TechnicianPayment struct {
	Status PaymentStatus
	Amount float64
	PaidAt *time.Time
	PaidBy *string
	Notes  *string
}

// Complaint is the aggregate for customer service requests.
type Complaint struct {
	ID            string
	CustomerID    string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	CustomerCity  string
	Title         string
	Description   string
	Category      ComplaintCategory
	Priority      ComplaintPriority
	Status        ComplaintStatus
	TotalAmount   float64
	AssignedTo    *AdminAssignment
	Technician    *TechnicianAssignment
	Payment       Payment
	TechPayment   TechnicianPayment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the complaint counts toward a technician's workload.
func (c *Complaint) IsActive() bool {
	return c.Status == ComplaintStatusAssigned || c.Status == ComplaintStatusInProgress
}

// statusOrder fixes the forward-only lifecycle. Transitions may only move to the
// immediate successor, except RESOLVED which is reachable from both ASSIGNED and
// IN_PROGRESS.
var statusOrder = map[ComplaintStatus]int{
	ComplaintStatusOpen:       0,
	ComplaintStatusTaken:      1,
	ComplaintStatusAssigned:   2,
	ComplaintStatusInProgress: 3,
	ComplaintStatusResolved:   4,
	ComplaintStatusClosed:     5,
}

var allowedTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintStatusOpen:       {ComplaintStatusTaken},
	ComplaintStatusTaken:      {ComplaintStatusAssigned},
	ComplaintStatusAssigned:   {ComplaintStatusInProgress, ComplaintStatusResolved},
	ComplaintStatusInProgress: {ComplaintStatusResolved},
	ComplaintStatusResolved:   {ComplaintStatusClosed},
	ComplaintStatusClosed:     {},
}

// CanTransition reports whether current may advance to next.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// StatusRank returns the position of a status in the lifecycle, or -1 if unknown.
func StatusRank(status ComplaintStatus) int {
	rank, ok := statusOrder[status]
	if !ok {
		return -1
	}
	return rank
}
