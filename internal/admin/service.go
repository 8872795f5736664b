// Package admin assembles the read-only reports of the admin dashboard.
package admin

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RecentVisitsLimit = 100
	TopPagesLimit     = 5
	UnknownDevice     = "Unknown"

	// ReportTimeout bounds a shared report load, which outlives the
	// cancellation of the request that started it.
	ReportTimeout = 15 * time.Second
)

type Service struct {
	orders   port.OrderRepository
	visitors port.VisitorRepository
	settings port.SettingsRepository
	logger   *zap.Logger

	sfg singleflight.Group // dashboard refreshes share one load
}

func NewService(
	orders port.OrderRepository,
	visitors port.VisitorRepository,
	settings port.SettingsRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:   orders,
		visitors: visitors,
		settings: settings,
		logger:   logger,
	}
}

// OrdersReport lists every order newest first with revenue over completed
// orders and counts of completed and pending ones.
func (s *Service) OrdersReport(ctx context.Context) (domain.OrdersReport, error) {
	v, err, shared := s.sfg.Do("orders", func() (interface{}, error) {
		ctx, cancel := sharedContext(ctx)
		defer cancel()

		return s.orders.OrdersReport(ctx)
	})
	if err != nil {
		return domain.OrdersReport{}, fmt.Errorf("orders.OrdersReport: %w", err)
	}

	s.logger.Debug("orders report loaded", zap.Bool("shared", shared))

	return v.(domain.OrdersReport), nil
}

// VisitorReport returns the most recent visits and statistics over them.
// Visits count as today when they fall on the UTC date of now.
func (s *Service) VisitorReport(ctx context.Context, now time.Time) (domain.VisitorReport, error) {
	v, err, shared := s.sfg.Do("visitors", func() (interface{}, error) {
		ctx, cancel := sharedContext(ctx)
		defer cancel()

		return s.visitors.RecentVisits(ctx, RecentVisitsLimit)
	})
	if err != nil {
		return domain.VisitorReport{}, fmt.Errorf("visitors.RecentVisits: %w", err)
	}

	s.logger.Debug("visitor report loaded", zap.Bool("shared", shared))

	visits := v.([]domain.VisitorLog)

	return domain.VisitorReport{
		Visits: visits,
		Stats:  ComputeVisitorStats(visits, now),
	}, nil
}

func sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), ReportTimeout)
}

func (s *Service) Settings(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := s.settings.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings.ListSettings: %w", err)
	}

	return settings.WithDefaults(), nil
}

func ComputeVisitorStats(visits []domain.VisitorLog, now time.Time) domain.VisitorStats {
	today := now.UTC().Format(time.DateOnly)

	stats := domain.VisitorStats{
		Total:           len(visits),
		TopPages:        []domain.PageCount{},
		DeviceBreakdown: []domain.DeviceCount{},
	}

	countries := make(map[string]struct{})
	pageIndex := make(map[string]int)
	deviceIndex := make(map[string]int)

	for _, v := range visits {
		if v.VisitedAt.UTC().Format(time.DateOnly) == today {
			stats.Today++
		}

		if v.Country != "" {
			countries[v.Country] = struct{}{}
		}

		if v.PageURL != "" {
			if i, ok := pageIndex[v.PageURL]; ok {
				stats.TopPages[i].Count++
			} else {
				pageIndex[v.PageURL] = len(stats.TopPages)
				stats.TopPages = append(stats.TopPages, domain.PageCount{Page: v.PageURL, Count: 1})
			}
		}

		device := v.DeviceType
		if device == "" {
			device = UnknownDevice
		}
		if i, ok := deviceIndex[device]; ok {
			stats.DeviceBreakdown[i].Count++
		} else {
			deviceIndex[device] = len(stats.DeviceBreakdown)
			stats.DeviceBreakdown = append(stats.DeviceBreakdown, domain.DeviceCount{Device: device, Count: 1})
		}
	}

	stats.UniqueCountries = len(countries)

	// ties keep first-seen order
	sort.SliceStable(stats.TopPages, func(i, j int) bool {
		return stats.TopPages[i].Count > stats.TopPages[j].Count
	})
	if len(stats.TopPages) > TopPagesLimit {
		stats.TopPages = stats.TopPages[:TopPagesLimit]
	}

	sort.SliceStable(stats.DeviceBreakdown, func(i, j int) bool {
		return stats.DeviceBreakdown[i].Count > stats.DeviceBreakdown[j].Count
	})

	return stats
}
