package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type whoAmI struct{}

func (whoAmI) Register(rg *gin.RouterGroup) {
	rg.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, auth.IdentityFromContext(c.Request.Context()).AnonymousID)
	})
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	r := NewRouter(db, logger.NewNop(), whoAmI{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: auth.AnonymousCookie, Value: "anon-9"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anon-9", w.Body.String())
}

func TestWatchHealth(t *testing.T) {
	db := testutil.NewDB(t)
	_, hs := NewGRPCServer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchHealth(ctx, db, hs, 10*time.Millisecond, logger.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		res, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: catalogService})
		return err == nil && res.Status == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "health watcher did not stop")
	}
}
