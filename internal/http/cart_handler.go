package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
	"github.com/mfarhadattari/ema-john-server/internal/repository"
)

// CartService is the slice of the service layer the cart endpoints need.
type CartService interface {
	AddToCart(ctx context.Context, productID string, payload domain.CartLinePayload) (domain.WriteOutcome, error)
	RemoveFromCart(ctx context.Context, id string) (domain.DeleteOutcome, error)
	ClearCart(ctx context.Context, email string) (domain.DeleteOutcome, error)
	ListOrders(ctx context.Context, email string) ([]domain.CartLine, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "id")

	var payload domain.CartLinePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Email() == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	outcome, err := h.carts.AddToCart(ctx, productID, payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	outcome, err := h.carts.RemoveFromCart(ctx, id)
	if errors.Is(err, repository.ErrInvalidLineID) {
		respondError(w, http.StatusBadRequest, "invalid cart line id")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to remove from cart")
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// ClearCart and GetOrders enforce the authorization envelope: the email being
// read or cleared must equal the email claim of the verified token.

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" || claimedEmail(r.Context()) != email {
		respondError(w, http.StatusForbidden, "Access Forbidden")
		return
	}

	outcome, err := h.carts.ClearCart(ctx, email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

func (h *CartHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" || claimedEmail(r.Context()) != email {
		respondError(w, http.StatusForbidden, "Access Forbidden")
		return
	}

	lines, err := h.carts.ListOrders(ctx, email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, lines)
}
