package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every route of the shop API onto a chi router.
func NewRouter(products ProductCatalog, carts CartService, tokens TokenVerifier, requestTimeout time.Duration) chi.Router {
	productHandler := NewProductHandler(products, requestTimeout)
	cartHandler := NewCartHandler(carts, requestTimeout)
	tokenHandler := NewTokenHandler(tokens)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Liveness
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Ema-John Server Is Running"))
	})

	r.Get("/totalProducts", productHandler.TotalProducts)
	r.Get("/products", productHandler.ListProducts)

	r.Post("/add-to-cart/{id}", cartHandler.AddToCart)
	r.Delete("/remove-from-cart/{id}", cartHandler.RemoveFromCart)

	// Routes behind the bearer-token envelope
	r.Group(func(r chi.Router) {
		r.Use(RequireToken(tokens))
		r.Delete("/clear-cart", cartHandler.ClearCart)
		r.Get("/orders", cartHandler.GetOrders)
	})

	r.Post("/generateUserToken", tokenHandler.GenerateUserToken)

	return r
}
