package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nikolayk812/streamstick/internal/domain"
	"go.uber.org/zap"
)

type AdminService interface {
	OrdersReport(ctx context.Context) (domain.OrdersReport, error)
	VisitorReport(ctx context.Context, now time.Time) (domain.VisitorReport, error)
	Settings(ctx context.Context) (domain.SiteSettings, error)
}

type AdminHandler struct {
	admin  AdminService
	logger *zap.Logger
	now    func() time.Time
}

func NewAdminHandler(admin AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger,
		now:    time.Now,
	}
}

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	report, err := h.admin.OrdersReport(r.Context())
	if err != nil {
		h.internalError(w, "admin.OrdersReport", err)
		return
	}

	respondJSON(w, http.StatusOK, mapOrdersReportToDTO(report))
}

func (h *AdminHandler) Visitors(w http.ResponseWriter, r *http.Request) {
	report, err := h.admin.VisitorReport(r.Context(), h.now())
	if err != nil {
		h.internalError(w, "admin.VisitorReport", err)
		return
	}

	respondJSON(w, http.StatusOK, mapVisitorReportToDTO(report))
}

func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.admin.Settings(r.Context())
	if err != nil {
		h.internalError(w, "admin.Settings", err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("admin request failed", zap.String("op", op), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
