package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID              uuid.UUID
	StripeSessionID string
	CustomerEmail   string
	CustomerName    string
	ProductName     string
	ProductPrice    decimal.Decimal
	Status          OrderStatus
	Username        string
	Password        string

	CreatedAt time.Time
}

type OrdersSummary struct {
	TotalRevenue decimal.Decimal
	Completed    int
	Pending      int
}

// OrdersReport is a consistent read of every order and the summary over them.
type OrdersReport struct {
	Orders  []Order
	Summary OrdersSummary
}
