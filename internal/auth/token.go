package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: missing, malformed,
// expired or badly signed tokens. Callers map it to a 401.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = time.Hour

// TokenService issues and verifies stateless bearer tokens. Validity is
// fully determined by signature and expiry; there is no session store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, ttl: tokenTTL}
}

// Issue signs the submitted claims verbatim and attaches an expiry. The
// claims object is caller-controlled end to end; nothing is validated here.
// That matches the public /generateUserToken endpoint, see DESIGN.md.
func (s *TokenService) Issue(claims map[string]interface{}) (string, error) {
	mc := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		mc[k] = v
	}
	mc["exp"] = jwt.NewNumericDate(time.Now().Add(s.ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS512, mc).SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. The signing
// algorithm is pinned to HS512.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
