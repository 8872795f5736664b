package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikolayk812/streamstick/internal/backend"
	"github.com/nikolayk812/streamstick/internal/catalog"
	"github.com/nikolayk812/streamstick/internal/checkout"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/notify"
	"go.uber.org/zap"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, product domain.Product) (domain.CheckoutSession, error)
	StartTrial(ctx context.Context, email string) error
}

type CheckoutHandler struct {
	checkout CheckoutService
	catalog  ProductCatalog
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout CheckoutService, catalog ProductCatalog, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		catalog:  catalog,
		logger:   logger,
	}
}

// Checkout starts a payment session for one product. The cart is not read
// or changed.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	session, err := h.checkout.CreateSession(r.Context(), product)
	if err != nil {
		h.logger.Error("checkout failed", zap.String("product_id", product.ID), zap.Error(err))
		respondNotifiedError(w, http.StatusBadGateway, backendErrorCode(err, "checkout_failed"), "checkout is not available right now", notify.CheckoutFailed)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{URL: session.URL})
}

func (h *CheckoutHandler) StartTrial(w http.ResponseWriter, r *http.Request) {
	var req TrialRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.checkout.StartTrial(r.Context(), req.Email)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, TrialResponseDTO{Notification: notify.TrialActivated})
	case errors.Is(err, checkout.ErrEmailRequired):
		respondNotifiedError(w, http.StatusBadRequest, "email_required", checkout.ErrEmailRequired.Error(), notify.EmailRequired)
	case errors.Is(err, checkout.ErrInvalidEmail):
		respondNotifiedError(w, http.StatusBadRequest, "invalid_email", checkout.ErrInvalidEmail.Error(), notify.InvalidEmail)
	default:
		h.logger.Error("free trial failed", zap.Error(err))
		respondNotifiedError(w, http.StatusBadGateway, backendErrorCode(err, "trial_failed"), "free trial is not available right now", notify.TrialFailed)
	}
}

func backendErrorCode(err error, fallback string) string {
	if errors.Is(err, backend.ErrUnavailable) {
		return "backend_unavailable"
	}
	return fallback
}
