package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

func TestJWTResolver_Resolve(t *testing.T) {
	r := NewJWTResolver("secret")
	token, err := r.GenerateToken("42", nil)
	require.NoError(t, err)

	got, err := r.Resolve(WithIdentity(context.Background(), Identity{AccessToken: token, AnonymousID: "anon"}))
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = r.Resolve(WithIdentity(context.Background(), Identity{AnonymousID: "anon"}))
	require.NoError(t, err)
	assert.Equal(t, "anon", got)

	got, err = r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJWTResolver_InvalidTokenFallsBackToAnonymous(t *testing.T) {
	r := NewJWTResolver("secret")

	got, err := r.Resolve(WithIdentity(context.Background(), Identity{AccessToken: "garbage", AnonymousID: "anon-1"}))
	require.NoError(t, err)
	assert.Equal(t, "anon-1", got)

	_, err = r.Resolve(WithIdentity(context.Background(), Identity{AccessToken: "garbage"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTResolver_RejectsForeignSignature(t *testing.T) {
	other, err := NewJWTResolver("other").GenerateToken("42", nil)
	require.NoError(t, err)

	_, err = NewJWTResolver("secret").UserID(other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTResolver_NumericID(t *testing.T) {
	r := NewJWTResolver("secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 7}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := r.UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}

func TestIdentityFromContext_Metadata(t *testing.T) {
	md := metadata.Pairs("authorization", "Bearer abc", "x-anonymous-id", "anon-1")
	id := IdentityFromContext(metadata.NewIncomingContext(context.Background(), md))
	assert.Equal(t, Identity{AccessToken: "abc", AnonymousID: "anon-1"}, id)
}

func TestMiddleware_IssuesAnonymousCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen Identity
	r := gin.New()
	r.Use(Middleware(3600))
	r.GET("/", func(c *gin.Context) {
		seen = IdentityFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen.AnonymousID)
	assert.Contains(t, w.Header().Get("Set-Cookie"), AnonymousCookie+"="+seen.AnonymousID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AnonymousCookie, Value: "known"})
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, Identity{AccessToken: "tok", AnonymousID: "known"}, seen)
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "tok", seen.AccessToken)
	assert.NotEmpty(t, seen.AnonymousID)
	assert.Contains(t, w.Header().Get("Set-Cookie"), AnonymousCookie+"="+seen.AnonymousID)
}
