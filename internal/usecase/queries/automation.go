package queries

import (
	"context"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/shared"
)

type AutomationQueries interface {
	ListRuns(ctx context.Context, actor shared.Actor, limit int) ([]*RunView, error)
}

type RunViewRepo interface {
	FindRecent(ctx context.Context, limit int) ([]*RunView, error)
}

type automationQueriesImpl struct {
	repo RunViewRepo
}

func NewAutomationQueries(repo RunViewRepo) AutomationQueries {
	return &automationQueriesImpl{repo: repo}
}

func (q *automationQueriesImpl) ListRuns(ctx context.Context, actor shared.Actor, limit int) ([]*RunView, error) {
	if !actor.HasRole(user.RoleManager) {
		return nil, errs.ErrPermission
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return q.repo.FindRecent(ctx, limit)
}
