package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AccountService covers the super-admin account oversight operations.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAccountService creates the service.
func NewAccountService(users repository.UserRepository, dispatcher events.Dispatcher) *AccountService {
	return &AccountService{users: users, dispatcher: dispatcher}
}

// ListAdmins returns every admin account.
func (s *AccountService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	admins, err := s.users.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return admins, nil
}

// ToggleBlock flips the block state of an admin account. Blocking records who
// and why; unblocking clears the record.
func (s *AccountService) ToggleBlock(ctx context.Context, adminID, blockedBy, reason string) (*domain.User, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin", map[string]any{"admin_id": adminID})
		}
		return nil, apperrors.MapError(err)
	}
	if admin.Role != domain.RoleAdmin {
		return nil, apperrors.NewValidationError("user is not an admin", map[string]any{"role": admin.Role})
	}

	var blocked domain.BlockRecord
	if !admin.Blocked.IsBlocked {
		if blockedBy == "" {
			blockedBy = "Super Admin"
		}
		if reason == "" {
			reason = "Blocked by super admin"
		}
		now := time.Now()
		blocked = domain.BlockRecord{
			IsBlocked: true,
			BlockedBy: &blockedBy,
			BlockedAt: &now,
			Reason:    &reason,
		}
	}

	if err := s.users.SetBlocked(ctx, admin.ID, blocked); err != nil {
		return nil, apperrors.MapError(err)
	}
	admin.Blocked = blocked

	s.publish(ctx, events.Event{
		Type:  events.EventAccountBlockToggled,
		Actor: events.Actor{UserID: admin.ID, Email: admin.Email, Role: admin.Role},
		Payload: events.AccountBlockToggledPayload{
			Blocked: blocked.IsBlocked,
			Reason:  reason,
		},
	})
	return admin, nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
