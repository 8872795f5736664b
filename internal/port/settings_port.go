package port

import (
	"context"
	"github.com/nikolayk812/streamstick/internal/domain"
)

type SettingsRepository interface {
	ListSettings(ctx context.Context) (domain.SiteSettings, error)
}
