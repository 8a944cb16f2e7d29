// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogDecision(ctx context.Context, entry AccessAudit) error
	QueryDecisions(ctx context.Context, from, to time.Time, userID, page string) ([]AccessAudit, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogDecision(ctx context.Context, entry AccessAudit) error {
	return s.repo.LogDecision(ctx, entry)
}

func (s *service) QueryDecisions(ctx context.Context, from, to time.Time, userID, page string) ([]AccessAudit, error) {
	return s.repo.QueryDecisions(ctx, from, to, userID, page)
}
