package domain

// WriteOutcome mirrors the acknowledgement MongoDB returns for an upsert;
// the add-to-cart endpoint passes it back to the client as-is.
type WriteOutcome struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteOutcome reports how many cart lines a delete removed. Zero is a
// valid outcome, not an error.
type DeleteOutcome struct {
	DeletedCount int64 `json:"deletedCount"`
}
