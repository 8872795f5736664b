package visitor

import (
	"context"

	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
	"go.uber.org/zap"
)

type Tracker struct {
	repo   port.VisitorRepository
	logger *zap.Logger
}

func NewTracker(repo port.VisitorRepository, logger *zap.Logger) *Tracker {
	return &Tracker{
		repo:   repo,
		logger: logger,
	}
}

// Track stores one page view. Failures are logged and never reach the
// caller; tracking must not affect the page being served.
func (t *Tracker) Track(ctx context.Context, pageURL, referrer, userAgent string) {
	device, browser := Classify(userAgent)

	visit := domain.VisitorLog{
		UserAgent:  userAgent,
		PageURL:    pageURL,
		Referrer:   referrer,
		DeviceType: device,
		Browser:    browser,
	}

	if err := t.repo.TrackVisit(ctx, visit); err != nil {
		t.logger.Warn("failed to track visit",
			zap.String("page_url", pageURL),
			zap.Error(err))
	}
}
