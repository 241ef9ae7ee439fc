package domain

import "time"

// Feedback is a single rating tied to one complaint and one customer.
// At most one feedback exists per complaint.
type Feedback struct {
	ID             string
	CustomerID     string
	CustomerEmail  string
	CustomerName   string
	ComplaintID    string
	ComplaintTitle string
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

// ValidRating reports whether rating falls in the 1-5 scale.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
