package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/streamstick/internal/db"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
	"math"
)

type visitorRepository struct {
	q *db.Queries
}

func NewVisitors(pool *pgxpool.Pool) (port.VisitorRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &visitorRepository{
		q: db.New(pool),
	}, nil
}

func (r *visitorRepository) TrackVisit(ctx context.Context, visit domain.VisitorLog) error {
	err := r.q.InsertVisit(ctx, db.InsertVisitParams{
		IpAddress:  optionalText(visit.IPAddress),
		UserAgent:  optionalText(visit.UserAgent),
		PageUrl:    optionalText(visit.PageURL),
		Referrer:   optionalText(visit.Referrer),
		Country:    optionalText(visit.Country),
		City:       optionalText(visit.City),
		DeviceType: optionalText(visit.DeviceType),
		Browser:    optionalText(visit.Browser),
	})
	if err != nil {
		return fmt.Errorf("q.InsertVisit: %w", err)
	}

	return nil
}

func (r *visitorRepository) RecentVisits(ctx context.Context, limit int) ([]domain.VisitorLog, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		return nil, fmt.Errorf("limit[%d] is not valid", limit)
	}

	rows, err := r.q.RecentVisits(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("q.RecentVisits: %w", err)
	}

	visits := make([]domain.VisitorLog, 0, len(rows))
	for _, row := range rows {
		visits = append(visits, mapVisitorRowToDomain(row))
	}

	return visits, nil
}

func mapVisitorRowToDomain(row db.VisitorLog) domain.VisitorLog {
	return domain.VisitorLog{
		ID:         row.ID,
		IPAddress:  row.IpAddress.String,
		UserAgent:  row.UserAgent.String,
		PageURL:    row.PageUrl.String,
		Referrer:   row.Referrer.String,
		Country:    row.Country.String,
		City:       row.City.String,
		DeviceType: row.DeviceType.String,
		Browser:    row.Browser.String,
		VisitedAt:  row.VisitedAt,
	}
}

// optionalText stores empty strings as NULL.
func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
