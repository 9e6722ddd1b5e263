package services

import (
	"context"
	"errors"

	"spiralscreen/internal/logger"
	"spiralscreen/internal/models"
)

// Error variables
var (
	ErrForbidden    = errors.New("admin privileges required")
	ErrSelfDelete   = errors.New("admins cannot delete their own account")
	ErrUserNotFound = errors.New("user not found")
)

// UserAdminReader defines the read operations used by administrative views.
type UserAdminReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
	Count(ctx context.Context) (int64, error)
}

// DrawingStatsReader defines the aggregate reads used for statistics.
type DrawingStatsReader interface {
	Count(ctx context.Context) (int64, error)
	AverageScore(ctx context.Context) (float64, error)
}

// UserDeleter removes a user together with their drawings.
type UserDeleter interface {
	DeleteWithDrawings(ctx context.Context, id int64) error
}

// Stats holds the aggregate numbers shown on the admin dashboard.
type Stats struct {
	TotalUsers       int64
	TotalDrawings    int64
	AverageRiskScore float64
}

// AdminService implements the administrative views.
type AdminService struct {
	users    UserAdminReader
	drawings DrawingStatsReader
	deleter  UserDeleter
}

// NewAdminService creates a new AdminService.
func NewAdminService(users UserAdminReader, drawings DrawingStatsReader, deleter UserDeleter) *AdminService {
	return &AdminService{
		users:    users,
		drawings: drawings,
		deleter:  deleter,
	}
}

// Stats returns user and drawing counts plus the mean risk score. The average
// is 0 when no drawings exist.
func (svc *AdminService) Stats(ctx context.Context) (Stats, error) {
	totalUsers, err := svc.users.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "err", err)
		return Stats{}, err
	}

	totalDrawings, err := svc.drawings.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count drawings", "err", err)
		return Stats{}, err
	}

	avg, err := svc.drawings.AverageScore(ctx)
	if err != nil {
		logger.Log.Errorw("failed to average scores", "err", err)
		return Stats{}, err
	}

	return Stats{
		TotalUsers:       totalUsers,
		TotalDrawings:    totalDrawings,
		AverageRiskScore: avg,
	}, nil
}

// ListUsers returns all users for an admin requester. The requester is
// re-resolved from the store so a stale token for a deleted user fails too.
func (svc *AdminService) ListUsers(ctx context.Context, requesterID int64) ([]models.UserDB, error) {
	if err := svc.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}

	users, err := svc.users.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	return users, nil
}

// DeleteUser removes the target user and all of their drawings, and returns
// the removed username. Self-deletion is blocked.
func (svc *AdminService) DeleteUser(ctx context.Context, requesterID, targetID int64) (string, error) {
	if err := svc.requireAdmin(ctx, requesterID); err != nil {
		return "", err
	}

	if targetID == requesterID {
		logger.Log.Infow("self-deletion blocked", "requester_id", requesterID)
		return "", ErrSelfDelete
	}

	target, err := svc.users.GetByID(ctx, targetID)
	if err != nil {
		logger.Log.Errorw("failed to resolve target user", "target_id", targetID, "err", err)
		return "", err
	}
	if target == nil {
		return "", ErrUserNotFound
	}

	if err := svc.deleter.DeleteWithDrawings(ctx, targetID); err != nil {
		logger.Log.Errorw("failed to delete user", "target_id", targetID, "err", err)
		return "", err
	}

	logger.Log.Infow("user deleted", "target_id", targetID, "username", target.Username)
	return target.Username, nil
}

func (svc *AdminService) requireAdmin(ctx context.Context, requesterID int64) error {
	requester, err := svc.users.GetByID(ctx, requesterID)
	if err != nil {
		logger.Log.Errorw("failed to resolve requester", "requester_id", requesterID, "err", err)
		return err
	}
	if requester == nil || !requester.IsAdmin {
		logger.Log.Infow("admin action forbidden", "requester_id", requesterID)
		return ErrForbidden
	}
	return nil
}
