package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	err = EnsureIndexes(ctx, db)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func TestAddOrIncrement_InsertsThenIncrements(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)
	ctx := context.Background()
	email := gofakeit.Email()

	payload := domain.CartLinePayload{
		"email": email,
		"title": "Wireless Mouse",
		"price": 9.99,
	}

	// First call inserts
	outcome, err := repo.AddOrIncrement(ctx, "p1", payload)
	require.NoError(t, err)
	assert.Equal(t, int64(1), outcome.UpsertedCount)
	assert.NotEmpty(t, outcome.UpsertedID)

	// Second call increments the same line
	outcome, err = repo.AddOrIncrement(ctx, "p1", payload)
	require.NoError(t, err)
	assert.Equal(t, int64(1), outcome.MatchedCount)
	assert.Equal(t, int64(1), outcome.ModifiedCount)
	assert.Equal(t, int64(0), outcome.UpsertedCount)

	lines, err := repo.ListForUser(ctx, email)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, email, lines[0].Email)
	assert.Equal(t, int64(2), lines[0].Quantity)
	assert.Equal(t, "Wireless Mouse", lines[0].Extra["title"])
}

func TestAddOrIncrement_CallerQuantityIgnored(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)
	ctx := context.Background()
	email := gofakeit.Email()

	// A submitted quantity does not control the stored value
	_, err := repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{
		"email":    email,
		"quantity": 7,
	})
	require.NoError(t, err)

	lines, err := repo.ListForUser(ctx, email)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].Quantity)
}

func TestAddOrIncrement_SeparateKeysStaySeparate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)
	ctx := context.Background()
	email := gofakeit.Email()
	other := gofakeit.Email()

	_, err := repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{"email": email})
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "p2", domain.CartLinePayload{"email": email})
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{"email": other})
	require.NoError(t, err)

	lines, err := repo.ListForUser(ctx, email)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	lines, err = repo.ListForUser(ctx, other)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestRemoveOne(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)
	ctx := context.Background()
	email := gofakeit.Email()

	_, err := repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{"email": email})
	require.NoError(t, err)

	lines, err := repo.ListForUser(ctx, email)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	removed, err := repo.RemoveOne(ctx, lines[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, email, removed.Email)

	lines, err = repo.ListForUser(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveOne_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)

	_, err := repo.RemoveOne(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveOne_InvalidID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)

	_, err := repo.RemoveOne(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidLineID)
}

func TestClearAll_ScopedToEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)
	ctx := context.Background()
	email := gofakeit.Email()
	other := gofakeit.Email()

	_, err := repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{"email": email})
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "p2", domain.CartLinePayload{"email": email})
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, "p1", domain.CartLinePayload{"email": other})
	require.NoError(t, err)

	outcome, err := repo.ClearAll(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, int64(2), outcome.DeletedCount)

	lines, err := repo.ListForUser(ctx, other)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestClearAll_NothingToDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)

	outcome, err := repo.ClearAll(context.Background(), gofakeit.Email())
	require.NoError(t, err)
	assert.Equal(t, int64(0), outcome.DeletedCount)
}

func TestListForUser_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCartRepository(db)

	lines, err := repo.ListForUser(context.Background(), gofakeit.Email())
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestListProducts_PagesCoverEveryProductOnce(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	const total = 25

	docs := make([]interface{}, 0, total)
	for i := 0; i < total; i++ {
		docs = append(docs, bson.M{
			"name":  fmt.Sprintf("product-%02d", i),
			"price": gofakeit.Price(1, 100),
		})
	}
	_, err := db.Collection("products").InsertMany(ctx, docs)
	require.NoError(t, err)

	repo := NewProductRepository(db)

	count, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(total), count)

	seen := map[string]int{}
	const limit = 10
	for page := int64(0); page*limit < total; page++ {
		products, err := repo.ListProducts(ctx, page, limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(products), limit)
		for _, p := range products {
			name, _ := p["name"].(string)
			seen[name]++
		}
	}

	assert.Len(t, seen, total)
	for name, n := range seen {
		assert.Equalf(t, 1, n, "product %s appeared %d times", name, n)
	}
}

func TestListProducts_PastTheEnd(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := db.Collection("products").InsertMany(ctx, []interface{}{
		bson.M{"name": "a"}, bson.M{"name": "b"},
	})
	require.NoError(t, err)

	repo := NewProductRepository(db)

	products, err := repo.ListProducts(ctx, 5, 12)
	require.NoError(t, err)
	assert.Empty(t, products)
}
