package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/streamstick/internal/db"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrders(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrders: %w", err)
	}

	return mapOrderRowsToDomain(rows), nil
}

func (r *orderRepository) OrdersReport(ctx context.Context) (domain.OrdersReport, error) {
	return withTx(ctx, r.pool, readSnapshot, func(q *db.Queries) (domain.OrdersReport, error) {
		rows, err := q.ListOrders(ctx)
		if err != nil {
			return domain.OrdersReport{}, fmt.Errorf("q.ListOrders: %w", err)
		}

		summary, err := q.SummarizeOrders(ctx)
		if err != nil {
			return domain.OrdersReport{}, fmt.Errorf("q.SummarizeOrders: %w", err)
		}

		return domain.OrdersReport{
			Orders: mapOrderRowsToDomain(rows),
			Summary: domain.OrdersSummary{
				TotalRevenue: summary.TotalRevenue,
				Completed:    int(summary.Completed),
				Pending:      int(summary.Pending),
			},
		}, nil
	})
}

func mapOrderRowToDomain(row db.Order) domain.Order {
	return domain.Order{
		ID:              row.ID,
		StripeSessionID: row.StripeSessionID.String,
		CustomerEmail:   row.CustomerEmail,
		CustomerName:    row.CustomerName.String,
		ProductName:     row.ProductName,
		ProductPrice:    row.ProductPrice,
		Status:          domain.OrderStatus(row.Status),
		Username:        row.Username.String,
		Password:        row.Password.String,
		CreatedAt:       row.CreatedAt,
	}
}

func mapOrderRowsToDomain(rows []db.Order) []domain.Order {
	orders := make([]domain.Order, 0, len(rows))

	for _, row := range rows {
		orders = append(orders, mapOrderRowToDomain(row))
	}

	return orders
}
