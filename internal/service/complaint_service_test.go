package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newComplaintService(complaints *mockComplaintRepo, users *mockUserRepo, feedbacks *mockFeedbackRepo, dispatcher events.Dispatcher) *ComplaintService {
	return NewComplaintService(ComplaintDependencies{
		ComplaintRepo: complaints,
		UserRepo:      users,
		FeedbackRepo:  feedbacks,
		Dispatcher:    dispatcher,
		DefaultAmount: 500,
	})
}

func testCustomer() *domain.User {
	city := "Pune"
	return &domain.User{
		ID:    "cust-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "9999999999",
		Role:  domain.RoleCustomer,
		City:  &city,
	}
}

func TestCreateComplaint(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	dispatcher := &recordingDispatcher{}
	svc := newComplaintService(complaints, users, new(mockFeedbackRepo), dispatcher)

	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(testCustomer(), nil)
	complaints.On("Create", mock.Anything, mock.AnythingOfType("*domain.Complaint")).Return(nil)

	complaint, err := svc.Create(context.Background(), CreateComplaintInput{
		CustomerEmail: "Asha@Example.com",
		Title:         "No power in kitchen",
		Description:   "Socket sparks when switched on",
		Category:      domain.CategoryElectrical,
		Priority:      domain.PriorityHigh,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusOpen, complaint.Status)
	assert.Equal(t, "asha@example.com", complaint.CustomerEmail)
	assert.Equal(t, "Pune", complaint.CustomerCity)
	assert.Equal(t, 500.0, complaint.TotalAmount)

	published := dispatcher.published()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventComplaintCreated, published[0].Type)
}

func TestCreateComplaintValidation(t *testing.T) {
	svc := newComplaintService(new(mockComplaintRepo), new(mockUserRepo), new(mockFeedbackRepo), nil)

	cases := []struct {
		name  string
		input CreateComplaintInput
	}{
		{"missing title", CreateComplaintInput{CustomerEmail: "a@b.c", Description: "x", Category: domain.CategoryOther, Priority: domain.PriorityLow}},
		{"bad category", CreateComplaintInput{CustomerEmail: "a@b.c", Title: "t", Description: "x", Category: "GARDENING", Priority: domain.PriorityLow}},
		{"bad priority", CreateComplaintInput{CustomerEmail: "a@b.c", Title: "t", Description: "x", Category: domain.CategoryOther, Priority: "EXTREME"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestCreateComplaintUnknownCustomer(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)
	svc := newComplaintService(new(mockComplaintRepo), users, new(mockFeedbackRepo), nil)

	_, err := svc.Create(context.Background(), CreateComplaintInput{
		CustomerEmail: "ghost@example.com",
		Title:         "t",
		Description:   "d",
		Category:      domain.CategoryPlumbing,
		Priority:      domain.PriorityMedium,
	})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestStartWork(t *testing.T) {
	complaints := new(mockComplaintRepo)
	dispatcher := &recordingDispatcher{}
	svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), dispatcher)

	updated := &domain.Complaint{ID: "c-1", Status: domain.ComplaintStatusInProgress}
	complaints.On("AdvanceStatus", mock.Anything, "c-1",
		[]domain.ComplaintStatus{domain.ComplaintStatusAssigned},
		domain.ComplaintStatusInProgress).Return(true, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(updated, nil)

	complaint, err := svc.StartWork(context.Background(), nil, "c-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusInProgress, complaint.Status)
	assert.Len(t, dispatcher.published(), 1)
}

func TestStartWorkWrongStatus(t *testing.T) {
	complaints := new(mockComplaintRepo)
	svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), nil)

	complaints.On("AdvanceStatus", mock.Anything, "c-1", mock.Anything, mock.Anything).Return(false, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{ID: "c-1", Status: domain.ComplaintStatusOpen}, nil)

	_, err := svc.StartWork(context.Background(), nil, "c-1")
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestStartWorkMissingComplaint(t *testing.T) {
	complaints := new(mockComplaintRepo)
	svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), nil)

	complaints.On("AdvanceStatus", mock.Anything, "nope", mock.Anything, mock.Anything).Return(false, nil)
	complaints.On("GetByID", mock.Anything, "nope").Return(nil, pgx.ErrNoRows)

	_, err := svc.StartWork(context.Background(), nil, "nope")
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestResolveFromAssignedOrInProgress(t *testing.T) {
	complaints := new(mockComplaintRepo)
	svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), nil)

	updated := &domain.Complaint{ID: "c-2", Status: domain.ComplaintStatusResolved}
	complaints.On("AdvanceStatus", mock.Anything, "c-2",
		[]domain.ComplaintStatus{domain.ComplaintStatusAssigned, domain.ComplaintStatusInProgress},
		domain.ComplaintStatusResolved).Return(true, nil)
	complaints.On("GetByID", mock.Anything, "c-2").Return(updated, nil)

	complaint, err := svc.Resolve(context.Background(), nil, "c-2")

	assert.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, complaint.Status)
}

func TestSubmitFeedback(t *testing.T) {
	complaints := new(mockComplaintRepo)
	feedbacks := new(mockFeedbackRepo)
	dispatcher := &recordingDispatcher{}
	svc := newComplaintService(complaints, new(mockUserRepo), feedbacks, dispatcher)

	customer := testCustomer()
	complaints.On("GetByID", mock.Anything, "c-3").Return(&domain.Complaint{
		ID:            "c-3",
		CustomerEmail: customer.Email,
		Title:         "No power in kitchen",
		Status:        domain.ComplaintStatusClosed,
	}, nil)
	feedbacks.On("GetByComplaintID", mock.Anything, "c-3").Return(nil, pgx.ErrNoRows)
	feedbacks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Feedback")).Return(nil)

	feedback, err := svc.SubmitFeedback(context.Background(), customer, "c-3", 5, "Great work")

	assert.NoError(t, err)
	assert.Equal(t, 5, feedback.Rating)
	assert.Equal(t, "No power in kitchen", feedback.ComplaintTitle)
	assert.Len(t, dispatcher.published(), 1)
}

func TestSubmitFeedbackRules(t *testing.T) {
	customer := testCustomer()

	t.Run("invalid rating", func(t *testing.T) {
		svc := newComplaintService(new(mockComplaintRepo), new(mockUserRepo), new(mockFeedbackRepo), nil)
		_, err := svc.SubmitFeedback(context.Background(), customer, "c-1", 6, "x")
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		complaints := new(mockComplaintRepo)
		complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
			ID: "c-1", CustomerEmail: "other@example.com", Status: domain.ComplaintStatusResolved,
		}, nil)
		svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), nil)
		_, err := svc.SubmitFeedback(context.Background(), customer, "c-1", 4, "x")
		assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	})

	t.Run("not resolved yet", func(t *testing.T) {
		complaints := new(mockComplaintRepo)
		complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
			ID: "c-1", CustomerEmail: customer.Email, Status: domain.ComplaintStatusInProgress,
		}, nil)
		svc := newComplaintService(complaints, new(mockUserRepo), new(mockFeedbackRepo), nil)
		_, err := svc.SubmitFeedback(context.Background(), customer, "c-1", 4, "x")
		assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	})

	t.Run("already submitted", func(t *testing.T) {
		complaints := new(mockComplaintRepo)
		feedbacks := new(mockFeedbackRepo)
		complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
			ID: "c-1", CustomerEmail: customer.Email, Status: domain.ComplaintStatusResolved,
		}, nil)
		feedbacks.On("GetByComplaintID", mock.Anything, "c-1").Return(&domain.Feedback{ID: "f-1"}, nil)
		svc := newComplaintService(complaints, new(mockUserRepo), feedbacks, nil)
		_, err := svc.SubmitFeedback(context.Background(), customer, "c-1", 4, "x")
		assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	})
}
