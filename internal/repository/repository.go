package repository

import (
	"context"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
)

// CartRepository defines the cart ledger operations the service layer needs.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	AddOrIncrement(ctx context.Context, productID string, payload domain.CartLinePayload) (domain.WriteOutcome, error)
	RemoveOne(ctx context.Context, id string) (*domain.CartLine, error)
	ClearAll(ctx context.Context, email string) (domain.DeleteOutcome, error)
	ListForUser(ctx context.Context, email string) ([]domain.CartLine, error)
}

// ProductRepository is the read-only catalog access used by the HTTP layer.
type ProductRepository interface {
	ListProducts(ctx context.Context, page, limit int64) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int64, error)
}
