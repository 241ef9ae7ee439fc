package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestStatsOverview(t *testing.T) {
	complaints := new(mockComplaintRepo)
	users := new(mockUserRepo)
	svc := NewStatsService(complaints, users, nil, nil)

	complaints.On("CountByStatus", mock.Anything).Return(map[domain.ComplaintStatus]int64{
		domain.ComplaintStatusOpen:       3,
		domain.ComplaintStatusInProgress: 2,
		domain.ComplaintStatusClosed:     5,
	}, nil)
	complaints.On("RevenueTotal", mock.Anything).Return(2500.0, nil)
	users.On("CountByRole", mock.Anything, domain.RoleAdmin).Return(int64(2), nil)
	users.On("CountByRole", mock.Anything, domain.RoleTechnician).Return(int64(4), nil)
	users.On("CountByRole", mock.Anything, domain.RoleCustomer).Return(int64(30), nil)

	stats, err := svc.Overview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.Complaints.Total)
	assert.Equal(t, int64(3), stats.Complaints.Open)
	assert.Equal(t, int64(2), stats.Complaints.InProgress)
	assert.Equal(t, int64(5), stats.Complaints.Closed)
	assert.Equal(t, int64(0), stats.Complaints.Resolved)
	assert.Equal(t, 2500.0, stats.Revenue)
	assert.Equal(t, int64(2), stats.Users.Admins)
	assert.Equal(t, int64(4), stats.Users.Technicians)
	assert.Equal(t, int64(30), stats.Users.Customers)
}
