package port

import (
	"context"
	"github.com/nikolayk812/streamstick/internal/domain"
)

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	OrdersReport(ctx context.Context) (domain.OrdersReport, error)
}
