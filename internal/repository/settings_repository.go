package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/streamstick/internal/db"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
)

type settingsRepository struct {
	q *db.Queries
}

func NewSettings(pool *pgxpool.Pool) (port.SettingsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &settingsRepository{
		q: db.New(pool),
	}, nil
}

// ListSettings returns the stored rows as-is, without defaults.
func (r *settingsRepository) ListSettings(ctx context.Context) (domain.SiteSettings, error) {
	rows, err := r.q.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListSettings: %w", err)
	}

	settings := make(domain.SiteSettings, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	return settings, nil
}
