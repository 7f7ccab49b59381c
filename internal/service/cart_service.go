package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mfarhadattari/ema-john-server/internal/cache"
	"github.com/mfarhadattari/ema-john-server/internal/domain"
	"github.com/mfarhadattari/ema-john-server/internal/repository"
)

type CartService struct {
	repo  repository.CartRepository
	cache cache.OrdersCache
	sfg   singleflight.Group // Prevents cache stampede on order reads
}

func NewCartService(repo repository.CartRepository, cache cache.OrdersCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CartService) AddToCart(ctx context.Context, productID string, payload domain.CartLinePayload) (domain.WriteOutcome, error) {
	outcome, err := s.repo.AddOrIncrement(ctx, productID, payload)
	if err != nil {
		log.Printf("repo add or increment error: %v", err)
		return domain.WriteOutcome{}, err
	}

	invalidateCache(s, payload.Email())
	return outcome, nil
}

// RemoveFromCart deletes a single cart line by its storage identifier. An
// unknown identifier is a zero-count outcome, not an error.
func (s *CartService) RemoveFromCart(ctx context.Context, id string) (domain.DeleteOutcome, error) {
	removed, err := s.repo.RemoveOne(ctx, id)
	if errors.Is(err, repository.ErrLineNotFound) {
		return domain.DeleteOutcome{DeletedCount: 0}, nil
	}
	if err != nil {
		log.Printf("repo remove one error: %v", err)
		return domain.DeleteOutcome{}, err
	}

	invalidateCache(s, removed.Email)
	return domain.DeleteOutcome{DeletedCount: 1}, nil
}

func (s *CartService) ClearCart(ctx context.Context, email string) (domain.DeleteOutcome, error) {
	outcome, err := s.repo.ClearAll(ctx, email)
	if err != nil {
		log.Printf("repo clear all error: %v", err)
		return domain.DeleteOutcome{}, err
	}

	invalidateCache(s, email)
	return outcome, nil
}

func (s *CartService) ListOrders(ctx context.Context, email string) ([]domain.CartLine, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(email, func() (interface{}, error) {

		lines, err := s.cache.Get(ctx, email)
		if err == nil {
			return lines, nil // lines are in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		lines, errList := s.repo.ListForUser(ctx, email)
		if errList != nil {
			return nil, errList
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), email, lines)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return lines, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.CartLine), nil
}

func invalidateCache(s *CartService, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, email)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}
