package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

type mockComplaintRepo struct {
	mock.Mock
}

func (m *mockComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *mockComplaintRepo) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockComplaintRepo) ListUnassigned(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ListByAdminEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ListByTechnicianEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) Claim(ctx context.Context, id string, assignment domain.AdminAssignment) (bool, error) {
	args := m.Called(ctx, id, assignment)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintRepo) AssignTechnician(ctx context.Context, id string, assignment domain.TechnicianAssignment) (bool, error) {
	args := m.Called(ctx, id, assignment)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintRepo) HasActiveAssignment(ctx context.Context, technicianID string) (bool, error) {
	args := m.Called(ctx, technicianID)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintRepo) AdvanceStatus(ctx context.Context, id string, from []domain.ComplaintStatus, to domain.ComplaintStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintRepo) CompletePayment(ctx context.Context, id string, payment domain.Payment) (bool, error) {
	args := m.Called(ctx, id, payment)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintRepo) SetTechnicianPayment(ctx context.Context, id string, payment domain.TechnicianPayment) error {
	args := m.Called(ctx, id, payment)
	return args.Error(0)
}

func (m *mockComplaintRepo) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.ComplaintStatus]int64), args.Error(1)
}

func (m *mockComplaintRepo) RevenueTotal(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockComplaintRepo) ActiveCountByTechnician(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) SetBlocked(ctx context.Context, id string, blocked domain.BlockRecord) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

type mockFeedbackRepo struct {
	mock.Mock
}

func (m *mockFeedbackRepo) Create(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *mockFeedbackRepo) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Feedback, error) {
	args := m.Called(ctx, complaintID)
	if f := args.Get(0); f != nil {
		return f.(*domain.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeedbackRepo) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
