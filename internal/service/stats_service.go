package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const (
	statsCacheKey = "stats:overview"
	statsCacheTTL = 5 * time.Second
)

// Statistics aggregates complaint and account counts for the super-admin view.
type Statistics struct {
	Complaints ComplaintCounts `json:"complaints"`
	Revenue    float64         `json:"revenue"`
	Users      UserCounts      `json:"users"`
}

// ComplaintCounts breaks totals down by status.
type ComplaintCounts struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	Taken      int64 `json:"taken"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// UserCounts breaks accounts down by role.
type UserCounts struct {
	Admins      int64 `json:"admins"`
	Technicians int64 `json:"technicians"`
	Customers   int64 `json:"customers"`
}

// StatsService serves aggregate statistics, fronted by a short-TTL Redis cache
// sized to the UI's polling interval.
type StatsService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	cache      *redis.Client
	logger     *zap.Logger
}

// NewStatsService creates the service. A nil cache disables caching.
func NewStatsService(complaints repository.ComplaintRepository, users repository.UserRepository, cache *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{
		complaints: complaints,
		users:      users,
		cache:      cache,
		logger:     logger,
	}
}

// Overview computes (or serves cached) aggregate statistics.
func (s *StatsService) Overview(ctx context.Context) (*Statistics, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	statusCounts, err := s.complaints.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	revenue, err := s.complaints.RevenueTotal(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &Statistics{
		Complaints: ComplaintCounts{
			Open:       statusCounts[domain.ComplaintStatusOpen],
			Taken:      statusCounts[domain.ComplaintStatusTaken],
			Assigned:   statusCounts[domain.ComplaintStatusAssigned],
			InProgress: statusCounts[domain.ComplaintStatusInProgress],
			Resolved:   statusCounts[domain.ComplaintStatusResolved],
			Closed:     statusCounts[domain.ComplaintStatusClosed],
		},
		Revenue: revenue,
	}
	for _, count := range statusCounts {
		stats.Complaints.Total += count
	}

	for role, target := range map[domain.UserRole]*int64{
		domain.RoleAdmin:      &stats.Users.Admins,
		domain.RoleTechnician: &stats.Users.Technicians,
		domain.RoleCustomer:   &stats.Users.Customers,
	} {
		count, err := s.users.CountByRole(ctx, role)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		*target = count
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *Statistics {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *Statistics) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
