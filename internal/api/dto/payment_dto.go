package dto

// CreateSessionRequest payload for starting checkout.
type CreateSessionRequest struct {
	ComplaintID string `json:"complaintId"`
}

// CreateSessionResponse returns the redirect URL.
type CreateSessionResponse struct {
	SessionID  string  `json:"sessionId"`
	SessionURL string  `json:"sessionUrl"`
	Amount     float64 `json:"amount"`
}

// ConfirmPaymentRequest payload for server-side confirmation.
type ConfirmPaymentRequest struct {
	SessionID   string `json:"sessionId"`
	ComplaintID string `json:"complaintId"`
}

// PayTechnicianRequest payload for recording a payout.
type PayTechnicianRequest struct {
	Amount float64 `json:"amount"`
	PaidBy string  `json:"paidBy"`
	Notes  string  `json:"notes"`
}

// ToggleBlockRequest payload for blocking/unblocking an admin.
type ToggleBlockRequest struct {
	BlockedBy string `json:"blockedBy"`
	Reason    string `json:"reason"`
}
