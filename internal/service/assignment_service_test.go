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

func newAssignmentService(complaints *mockComplaintRepo, users *mockUserRepo, dispatcher events.Dispatcher) *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{
		ComplaintRepo: complaints,
		UserRepo:      users,
		Dispatcher:    dispatcher,
	})
}

func testAdmin() *domain.User {
	city := "Mumbai"
	return &domain.User{
		ID:    "admin-1",
		Name:  "Ravi",
		Email: "ravi@example.com",
		Role:  domain.RoleAdmin,
		City:  &city,
	}
}

func testTechnician() *domain.User {
	return &domain.User{
		ID:    "tech-1",
		Name:  "Sunil",
		Email: "sunil@example.com",
		Phone: "8888888888",
		Role:  domain.RoleTechnician,
	}
}

func TestClaim(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	dispatcher := &recordingDispatcher{}
	svc := newAssignmentService(complaints, users, dispatcher)

	admin := testAdmin()
	users.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)
	complaints.On("Claim", mock.Anything, "c-1", mock.AnythingOfType("domain.AdminAssignment")).Return(true, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
		ID:     "c-1",
		Status: domain.ComplaintStatusTaken,
		AssignedTo: &domain.AdminAssignment{
			AdminID:    admin.ID,
			AdminEmail: admin.Email,
			AdminName:  admin.Name,
		},
	}, nil)

	complaint, err := svc.Claim(context.Background(), "c-1", admin.Email, admin.Name)

	assert.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusTaken, complaint.Status)
	assert.Equal(t, admin.Email, complaint.AssignedTo.AdminEmail)

	published := dispatcher.published()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventComplaintClaimed, published[0].Type)
}

func TestClaimAlreadyTaken(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := newAssignmentService(complaints, users, nil)

	admin := testAdmin()
	users.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)
	complaints.On("Claim", mock.Anything, "c-1", mock.Anything).Return(false, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
		ID:     "c-1",
		Status: domain.ComplaintStatusTaken,
	}, nil)

	_, err := svc.Claim(context.Background(), "c-1", admin.Email, admin.Name)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestClaimMissingComplaint(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := newAssignmentService(complaints, users, nil)

	admin := testAdmin()
	users.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)
	complaints.On("Claim", mock.Anything, "nope", mock.Anything).Return(false, nil)
	complaints.On("GetByID", mock.Anything, "nope").Return(nil, pgx.ErrNoRows)

	_, err := svc.Claim(context.Background(), "nope", admin.Email, admin.Name)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestClaimRejectsNonAdmin(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAssignmentService(new(mockComplaintRepo), users, nil)

	customer := testCustomer()
	users.On("GetByEmail", mock.Anything, customer.Email).Return(customer, nil)

	_, err := svc.Claim(context.Background(), "c-1", customer.Email, customer.Name)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAssignTechnician(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	dispatcher := &recordingDispatcher{}
	svc := newAssignmentService(complaints, users, dispatcher)

	tech := testTechnician()
	users.On("GetByEmail", mock.Anything, tech.Email).Return(tech, nil)
	complaints.On("AssignTechnician", mock.Anything, "c-1", mock.AnythingOfType("domain.TechnicianAssignment")).Return(true, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
		ID:     "c-1",
		Status: domain.ComplaintStatusAssigned,
		Technician: &domain.TechnicianAssignment{
			TechnicianID:    tech.ID,
			TechnicianEmail: tech.Email,
			TechnicianPhone: tech.Phone,
		},
	}, nil)

	complaint, err := svc.AssignTechnician(context.Background(), "c-1", tech.Email, tech.Name)

	assert.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusAssigned, complaint.Status)
	assert.Equal(t, tech.Email, complaint.Technician.TechnicianEmail)
	assert.Len(t, dispatcher.published(), 1)
}

func TestAssignTechnicianBusy(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := newAssignmentService(complaints, users, nil)

	tech := testTechnician()
	users.On("GetByEmail", mock.Anything, tech.Email).Return(tech, nil)
	complaints.On("AssignTechnician", mock.Anything, "c-1", mock.Anything).Return(false, nil)
	// Complaint is still TAKEN, so the guard that failed was the exclusivity check.
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
		ID:     "c-1",
		Status: domain.ComplaintStatusTaken,
	}, nil)

	_, err := svc.AssignTechnician(context.Background(), "c-1", tech.Email, tech.Name)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Contains(t, domainErr.Message, "another complaint")
}

func TestAssignTechnicianWrongStatus(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := newAssignmentService(complaints, users, nil)

	tech := testTechnician()
	users.On("GetByEmail", mock.Anything, tech.Email).Return(tech, nil)
	complaints.On("AssignTechnician", mock.Anything, "c-1", mock.Anything).Return(false, nil)
	complaints.On("GetByID", mock.Anything, "c-1").Return(&domain.Complaint{
		ID:     "c-1",
		Status: domain.ComplaintStatusOpen,
	}, nil)

	_, err := svc.AssignTechnician(context.Background(), "c-1", tech.Email, tech.Name)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Contains(t, domainErr.Message, "cannot be assigned")
}

func TestListTechnicianAvailability(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := newAssignmentService(complaints, users, nil)

	busy := *testTechnician()
	idle := domain.User{ID: "tech-2", Name: "Meena", Email: "meena@example.com", Role: domain.RoleTechnician}
	users.On("ListByRole", mock.Anything, domain.RoleTechnician).Return([]domain.User{busy, idle}, nil)
	complaints.On("ActiveCountByTechnician", mock.Anything).Return(map[string]int64{"tech-1": 1}, nil)

	availability, err := svc.ListTechnicianAvailability(context.Background())

	assert.NoError(t, err)
	assert.Len(t, availability, 2)
	assert.False(t, availability[0].Available)
	assert.Equal(t, int64(1), availability[0].ActiveCount)
	assert.True(t, availability[1].Available)
	assert.Equal(t, int64(0), availability[1].ActiveCount)
}
