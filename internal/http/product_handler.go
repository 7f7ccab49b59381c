package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
)

const (
	defaultPage  = 0
	defaultLimit = 12
)

// ProductCatalog is the read-only product access the catalog endpoints need.
type ProductCatalog interface {
	ListProducts(ctx context.Context, page, limit int64) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int64, error)
}

type ProductHandler struct {
	products ProductCatalog
	timeout  time.Duration
}

func NewProductHandler(products ProductCatalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// Missing, non-numeric or out-of-range values fall back to defaults.
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	if page < 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	products, err := h.products.ListProducts(ctx, page, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) TotalProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	count, err := h.products.CountProducts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"totalProducts": count})
}

func queryInt(r *http.Request, key string, fallback int64) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
