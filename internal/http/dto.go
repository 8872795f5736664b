package http

import (
	"time"

	"github.com/nikolayk812/streamstick/internal/cart"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/notify"
)

type ProductDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Currency string   `json:"currency"`
	Type     string   `json:"type"`
	Image    string   `json:"image"`
	Badge    string   `json:"badge,omitempty"`
	Popular  bool     `json:"popular"`
	Period   string   `json:"period,omitempty"`
	Features []string `json:"features"`
}

type CartItemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Type      string `json:"type"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponseDTO struct {
	Items         []CartItemDTO         `json:"items"`
	ItemCount     int                   `json:"item_count"`
	Subtotal      string                `json:"subtotal"`
	Currency      string                `json:"currency"`
	Notifications []notify.Notification `json:"notifications"`
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CheckoutRequestDTO struct {
	ProductID string `json:"product_id"`
}

type CheckoutResponseDTO struct {
	URL string `json:"url"`
}

type TrialRequestDTO struct {
	Email string `json:"email"`
}

type TrialResponseDTO struct {
	Notification notify.Notification `json:"notification"`
}

type VisitRequestDTO struct {
	PageURL  string `json:"page_url"`
	Referrer string `json:"referrer"`
}

type OrderDTO struct {
	ID              string    `json:"id"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerName    string    `json:"customer_name,omitempty"`
	ProductName     string    `json:"product_name"`
	ProductPrice    string    `json:"product_price"`
	Status          string    `json:"status"`
	Username        string    `json:"username,omitempty"`
	Password        string    `json:"password,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type OrdersSummaryDTO struct {
	TotalRevenue string `json:"total_revenue"`
	Completed    int    `json:"completed"`
	Pending      int    `json:"pending"`
}

type OrdersResponseDTO struct {
	Orders  []OrderDTO       `json:"orders"`
	Summary OrdersSummaryDTO `json:"summary"`
}

type VisitDTO struct {
	ID         string    `json:"id"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	PageURL    string    `json:"page_url,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
	Country    string    `json:"country,omitempty"`
	City       string    `json:"city,omitempty"`
	DeviceType string    `json:"device_type,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	VisitedAt  time.Time `json:"visited_at"`
}

type PageCountDTO struct {
	Page  string `json:"page"`
	Count int    `json:"count"`
}

type DeviceCountDTO struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

type VisitorStatsDTO struct {
	Total           int              `json:"total"`
	Today           int              `json:"today"`
	UniqueCountries int              `json:"unique_countries"`
	TopPages        []PageCountDTO   `json:"top_pages"`
	DeviceBreakdown []DeviceCountDTO `json:"device_breakdown"`
}

type VisitorsResponseDTO struct {
	Visitors []VisitDTO      `json:"visitors"`
	Stats    VisitorStatsDTO `json:"stats"`
}

func mapProductToDTO(p domain.Product) ProductDTO {
	features := p.Features
	if features == nil {
		features = []string{}
	}

	return ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.Amount.StringFixed(2),
		Currency: p.Price.Currency.String(),
		Type:     string(p.Type),
		Image:    p.Image,
		Badge:    p.Badge,
		Popular:  p.Popular,
		Period:   p.Period,
		Features: features,
	}
}

func mapProductsToDTO(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, mapProductToDTO(p))
	}
	return out
}

func mapCartToDTO(s *cart.Store, notifications []notify.Notification) CartResponseDTO {
	items := s.Items()

	resp := CartResponseDTO{
		Items:         make([]CartItemDTO, 0, len(items)),
		ItemCount:     s.ItemCount(),
		Subtotal:      s.Subtotal().Amount.StringFixed(2),
		Currency:      s.Currency().String(),
		Notifications: notifications,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, CartItemDTO{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price.Amount.StringFixed(2),
			Type:      string(item.Type),
			Image:     item.Image,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().Amount.StringFixed(2),
		})
	}

	return resp
}

func mapOrdersReportToDTO(report domain.OrdersReport) OrdersResponseDTO {
	resp := OrdersResponseDTO{
		Orders: make([]OrderDTO, 0, len(report.Orders)),
		Summary: OrdersSummaryDTO{
			TotalRevenue: report.Summary.TotalRevenue.StringFixed(2),
			Completed:    report.Summary.Completed,
			Pending:      report.Summary.Pending,
		},
	}

	for _, o := range report.Orders {
		resp.Orders = append(resp.Orders, OrderDTO{
			ID:              o.ID.String(),
			StripeSessionID: o.StripeSessionID,
			CustomerEmail:   o.CustomerEmail,
			CustomerName:    o.CustomerName,
			ProductName:     o.ProductName,
			ProductPrice:    o.ProductPrice.StringFixed(2),
			Status:          string(o.Status),
			Username:        o.Username,
			Password:        o.Password,
			CreatedAt:       o.CreatedAt,
		})
	}

	return resp
}

func mapVisitorReportToDTO(report domain.VisitorReport) VisitorsResponseDTO {
	resp := VisitorsResponseDTO{
		Visitors: make([]VisitDTO, 0, len(report.Visits)),
		Stats: VisitorStatsDTO{
			Total:           report.Stats.Total,
			Today:           report.Stats.Today,
			UniqueCountries: report.Stats.UniqueCountries,
			TopPages:        make([]PageCountDTO, 0, len(report.Stats.TopPages)),
			DeviceBreakdown: make([]DeviceCountDTO, 0, len(report.Stats.DeviceBreakdown)),
		},
	}

	for _, v := range report.Visits {
		resp.Visitors = append(resp.Visitors, VisitDTO{
			ID:         v.ID.String(),
			IPAddress:  v.IPAddress,
			UserAgent:  v.UserAgent,
			PageURL:    v.PageURL,
			Referrer:   v.Referrer,
			Country:    v.Country,
			City:       v.City,
			DeviceType: v.DeviceType,
			Browser:    v.Browser,
			VisitedAt:  v.VisitedAt,
		})
	}
	for _, p := range report.Stats.TopPages {
		resp.Stats.TopPages = append(resp.Stats.TopPages, PageCountDTO{Page: p.Page, Count: p.Count})
	}
	for _, d := range report.Stats.DeviceBreakdown {
		resp.Stats.DeviceBreakdown = append(resp.Stats.DeviceBreakdown, DeviceCountDTO{Device: d.Device, Count: d.Count})
	}

	return resp
}
