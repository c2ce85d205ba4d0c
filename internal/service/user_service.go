package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

type UserService interface {
	ListUsers(ctx context.Context, filter analytics.UserFilter, page pagination.Params) ([]model.User, int, error)
	GetUser(ctx context.Context, uid string) (*model.User, error)
	GetStats(ctx context.Context) (model.UserStats, error)
	UpdateStatus(ctx context.Context, actorID, uid string, status model.UserStatus) error
	UpdateRole(ctx context.Context, actorID, uid string, role model.UserRole) error
	DeleteUser(ctx context.Context, actorID, uid string) error
}

type userService struct {
	repo     repository.UserRepository
	auditSvc AuditService
	now      func() time.Time
}

func NewUserService(repo repository.UserRepository, auditSvc AuditService) UserService {
	return &userService{repo: repo, auditSvc: auditSvc, now: time.Now}
}

func (s *userService) ListUsers(ctx context.Context, filter analytics.UserFilter, page pagination.Params) ([]model.User, int, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := analytics.FilterUsers(users, filter)
	return pagination.Slice(filtered, page), len(filtered), nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) GetStats(ctx context.Context) (model.UserStats, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	return analytics.GetUserStats(users, s.now()), nil
}

func (s *userService) UpdateStatus(ctx context.Context, actorID, uid string, status model.UserStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, uid, s.stamp(map[string]interface{}{"status": string(status)})); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateUserStatus, uid, user.Email, map[string]interface{}{
		"from": user.EffectiveStatus(),
		"to":   status,
	})
	return nil
}

func (s *userService) UpdateRole(ctx context.Context, actorID, uid string, role model.UserRole) error {
	if !role.IsValid() {
		return invalid("unknown role %q", role)
	}
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, uid, s.stamp(map[string]interface{}{"role": string(role)})); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateUserRole, uid, user.Email, map[string]interface{}{
		"from": user.Role,
		"to":   role,
	})
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, uid string) error {
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionDeleteUser, uid, user.Email, map[string]interface{}{
		"orders": len(user.Orders),
	})
	return nil
}

func (s *userService) stamp(fields map[string]interface{}) map[string]interface{} {
	fields["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	return fields
}
