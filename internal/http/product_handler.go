package http

import (
	"net/http"

	"github.com/nikolayk812/streamstick/internal/domain"
)

type ProductCatalog interface {
	List() []domain.Product
	ByType(t domain.ProductType) []domain.Product
	Get(id string) (domain.Product, error)
}

type ProductHandler struct {
	catalog ProductCatalog
}

func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

// List returns the catalog, optionally filtered by ?type=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	typeParam := r.URL.Query().Get("type")
	if typeParam == "" {
		respondJSON(w, http.StatusOK, mapProductsToDTO(h.catalog.List()))
		return
	}

	productType, err := domain.ParseProductType(typeParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_type", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, mapProductsToDTO(h.catalog.ByType(productType)))
}
