package http

import (
	"encoding/json"
	"net/http"
)

type TokenHandler struct {
	tokens TokenVerifier
}

func NewTokenHandler(tokens TokenVerifier) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// GenerateUserToken signs whatever claims object the client submits. The
// claims shape is unvalidated; anyone can mint a token for any email. See
// DESIGN.md for the trust-boundary note.
func (h *TokenHandler) GenerateUserToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
