package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/streamstick/internal/cart"
	"github.com/nikolayk812/streamstick/internal/catalog"
	"github.com/nikolayk812/streamstick/internal/notify"
	"go.uber.org/zap"
)

type CartSessions interface {
	Do(ctx context.Context, id string, fn func(*cart.Store) error) error
}

type CartHandler struct {
	sessions CartSessions
	catalog  ProductCatalog
	logger   *zap.Logger
}

func NewCartHandler(sessions CartSessions, catalog ProductCatalog, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
		return
	}
	if err != nil {
		h.internalError(w, "catalog.Get", err)
		return
	}

	h.apply(w, r, cart.AddItem{Product: product})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it, more
// than cart.MaxQuantity is rejected and an id not in the cart leaves the cart
// unchanged.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	if *req.Quantity > cart.MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity",
			fmt.Sprintf("quantity must not exceed %d", cart.MaxQuantity))
		return
	}

	h.apply(w, r, cart.UpdateQuantity{ID: productID, Quantity: *req.Quantity})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, cart.RemoveItem{ID: chi.URLParam(r, "product_id")})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, cart.ClearCart{})
}

// apply runs cmds against the session cart and responds with the resulting
// cart and the notifications raised by the change.
func (h *CartHandler) apply(w http.ResponseWriter, r *http.Request, cmds ...cart.Command) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "session is required")
		return
	}

	var resp CartResponseDTO
	err := h.sessions.Do(r.Context(), sessionID, func(s *cart.Store) error {
		var collector notify.Collector
		unsubscribe := s.Subscribe(collector.Listen)
		defer unsubscribe()

		s.Dispatch(cmds...)

		resp = mapCartToDTO(s, collector.Notifications())
		return nil
	})
	if err != nil {
		h.internalError(w, "sessions.Do", err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("cart request failed", zap.String("op", op), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
