package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// Resolver maps the identity in ctx to a user id. An empty id means the
// caller is unknown.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// JWTResolver reads the "id" claim of an HS256 access token. Callers
// without a valid token are identified by their anonymous id.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(ctx context.Context) (string, error) {
	id := IdentityFromContext(ctx)
	if id.AccessToken == "" {
		return id.AnonymousID, nil
	}
	userID, err := r.UserID(id.AccessToken)
	if err != nil && id.AnonymousID != "" {
		return id.AnonymousID, nil
	}
	return userID, err
}

func (r *JWTResolver) UserID(accessToken string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch v := claims["id"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	}
	return "", fmt.Errorf("%w: missing id claim", ErrInvalidToken)
}

// GenerateToken signs an access token for userID. Used by tests and tooling.
func (r *JWTResolver) GenerateToken(userID string, claims jwt.MapClaims) (string, error) {
	c := jwt.MapClaims{"id": userID}
	for k, v := range claims {
		c[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(r.secret)
}
