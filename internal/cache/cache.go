package cache

import (
	"context"
	"errors"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
)

// OrdersCache caches a user's cart lines keyed by email.
type OrdersCache interface {
	Get(ctx context.Context, email string) ([]domain.CartLine, error)
	Set(ctx context.Context, email string, lines []domain.CartLine) error
	Delete(ctx context.Context, email string) error
}

var ErrCacheMiss = errors.New("cache miss")
