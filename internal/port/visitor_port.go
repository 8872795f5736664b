package port

import (
	"context"
	"github.com/nikolayk812/streamstick/internal/domain"
)

type VisitorRepository interface {
	TrackVisit(ctx context.Context, visit domain.VisitorLog) error
	RecentVisits(ctx context.Context, limit int) ([]domain.VisitorLog, error)
}
