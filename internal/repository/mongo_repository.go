package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mfarhadattari/ema-john-server/internal/domain"
)

var (
	ErrLineNotFound  = errors.New("cart line not found")
	ErrInvalidLineID = errors.New("invalid cart line id")
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("orders"),
	}
}

// AddOrIncrement reconciles one cart line per (productId, email): a single
// upsert increments the quantity when the line exists and inserts it with
// quantity 1 otherwise. The quantity is always server-computed; any
// caller-supplied quantity field in the payload is ignored.
func (m *mongoCartRepository) AddOrIncrement(ctx context.Context, productID string, payload domain.CartLinePayload) (domain.WriteOutcome, error) {
	filter := bson.M{"productId": productID, "email": payload.Email()}

	setOnInsert := bson.M{"productId": productID, "email": payload.Email()}
	for k, v := range payload {
		switch k {
		case "_id", "productId", "email", "quantity":
			continue
		}
		setOnInsert[k] = v
	}

	update := bson.M{
		"$inc":         bson.M{"quantity": 1},
		"$setOnInsert": setOnInsert,
	}
	opts := options.Update().SetUpsert(true)

	result, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// Two concurrent upserts for a brand-new key may both attempt the
		// insert; the loser hits the unique index and retries as an update.
		result, err = m.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return domain.WriteOutcome{}, fmt.Errorf("failed to upsert cart line: %w", err)
	}

	return writeOutcome(result), nil
}

func (m *mongoCartRepository) RemoveOne(ctx context.Context, id string) (*domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidLineID
	}

	var line domain.CartLine
	err = m.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to remove cart line: %w", err)
	}

	return &line, nil
}

func (m *mongoCartRepository) ClearAll(ctx context.Context, email string) (domain.DeleteOutcome, error) {
	result, err := m.collection.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return domain.DeleteOutcome{}, fmt.Errorf("failed to clear cart: %w", err)
	}

	return domain.DeleteOutcome{DeletedCount: result.DeletedCount}, nil
}

func (m *mongoCartRepository) ListForUser(ctx context.Context, email string) ([]domain.CartLine, error) {
	cursor, err := m.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	lines := []domain.CartLine{}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart lines: %w", err)
	}

	return lines, nil
}

func writeOutcome(result *mongo.UpdateResult) domain.WriteOutcome {
	out := domain.WriteOutcome{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = id.Hex()
	}
	return out
}

// EnsureIndexes creates the unique (productId, email) index that backs the
// one-line-per-key invariant, plus the email index the per-user reads and
// deletes filter on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}

	_, err := db.Collection("orders").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
