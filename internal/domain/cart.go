package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one row of a user's cart: a quantity of a single product,
// keyed by (productId, email). Extra holds whatever other fields the client
// submitted at add time; they are stored and echoed back untouched.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"productId"`
	Email     string             `bson:"email"`
	Quantity  int64              `bson:"quantity"`
	Extra     bson.M             `bson:",inline"`
}

func (c CartLine) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Extra)+4)
	for k, v := range c.Extra {
		out[k] = v
	}
	if !c.ID.IsZero() {
		out["_id"] = c.ID.Hex()
	}
	out["productId"] = c.ProductID
	out["email"] = c.Email
	out["quantity"] = c.Quantity
	return json.Marshal(out)
}

func (c *CartLine) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if hex, ok := raw["_id"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			c.ID = id
		}
	}
	if v, ok := raw["productId"].(string); ok {
		c.ProductID = v
	}
	if v, ok := raw["email"].(string); ok {
		c.Email = v
	}
	if v, ok := raw["quantity"].(float64); ok {
		c.Quantity = int64(v)
	}

	delete(raw, "_id")
	delete(raw, "productId")
	delete(raw, "email")
	delete(raw, "quantity")
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// CartLinePayload is the raw add-to-cart request body.
type CartLinePayload map[string]interface{}

func (p CartLinePayload) Email() string {
	email, _ := p["email"].(string)
	return email
}
