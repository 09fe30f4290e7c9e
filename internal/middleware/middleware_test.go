package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"renov-srv/pkg/log"
	"renov-srv/pkg/scope"
)

type fakeVerifier struct {
	payload scope.Payload
	err     error
}

func (f *fakeVerifier) Verify(token string) (scope.Payload, error) {
	if f.err != nil {
		return scope.Payload{}, f.err
	}
	return f.payload, nil
}

type fakeRedis struct {
	mu       sync.Mutex
	counters map[string]int64
	err      error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counters: map[string]int64{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeRedis) Delete(ctx context.Context, keys ...string) error    { return nil }
func (f *fakeRedis) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (f *fakeRedis) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeRedis) TTL(ctx context.Context, key string) (time.Duration, error) {
	return time.Minute, nil
}
func (f *fakeRedis) Close() error                   { return nil }
func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) GetClient() *goredis.Client     { return nil }

func testMiddleware(verifier scope.Manager, redisClient *fakeRedis, rates RateLimitConfig) Middleware {
	l := log.Init(log.ZapConfig{Level: "error", Mode: "development", Encoding: "console"})
	return New(l, verifier, redisClient, rates)
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	sc := scope.GetScopeFromContext(c.Request.Context())
	c.JSON(200, gin.H{"user_id": sc.UserID})
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid bearer token", func(t *testing.T) {
		mw := testMiddleware(&fakeVerifier{payload: scope.Payload{UserID: "user-1"}}, newFakeRedis(), RateLimitConfig{})
		r := gin.New()
		r.GET("/p", mw.Auth(), okHandler)

		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := performRequest(r, req)
		if w.Code != 200 {
			t.Fatalf("status %d, want 200", w.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		mw := testMiddleware(&fakeVerifier{}, newFakeRedis(), RateLimitConfig{})
		r := gin.New()
		r.GET("/p", mw.Auth(), okHandler)

		w := performRequest(r, httptest.NewRequest("GET", "/p", nil))
		if w.Code != 401 {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		mw := testMiddleware(&fakeVerifier{err: errors.New("bad token")}, newFakeRedis(), RateLimitConfig{})
		r := gin.New()
		r.GET("/p", mw.Auth(), okHandler)

		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := performRequest(r, req)
		if w.Code != 401 {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})
}

func TestUploadAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := &fakeVerifier{payload: scope.Payload{UserID: "user-1"}}

	newRouter := func() *gin.Engine {
		mw := testMiddleware(verifier, newFakeRedis(), RateLimitConfig{})
		r := gin.New()
		r.POST("/upload", mw.UploadAuth(), okHandler)
		return r
	}

	t.Run("query token accepted", func(t *testing.T) {
		w := performRequest(newRouter(), httptest.NewRequest("POST", "/upload?access_token=tok", nil))
		if w.Code != 200 {
			t.Fatalf("status %d, want 200", w.Code)
		}
	})

	t.Run("matching X-User-Id accepted", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/upload?access_token=tok", nil)
		req.Header.Set("X-User-Id", "user-1")
		w := performRequest(newRouter(), req)
		if w.Code != 200 {
			t.Fatalf("status %d, want 200", w.Code)
		}
	})

	t.Run("mismatched X-User-Id rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/upload?access_token=tok", nil)
		req.Header.Set("X-User-Id", "user-2")
		w := performRequest(newRouter(), req)
		if w.Code != 401 {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})

	t.Run("no credentials rejected", func(t *testing.T) {
		w := performRequest(newRouter(), httptest.NewRequest("POST", "/upload", nil))
		if w.Code != 401 {
			t.Fatalf("status %d, want 401", w.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := &fakeVerifier{payload: scope.Payload{UserID: "user-1"}}

	t.Run("over the ceiling gets 429", func(t *testing.T) {
		mw := testMiddleware(verifier, newFakeRedis(), RateLimitConfig{PerUser: 200, CompanyScan: 2, Upload: 5})
		r := gin.New()
		r.POST("/scan", mw.Auth(), mw.CompanyScanRateLimit(), okHandler)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/scan", nil)
			req.Header.Set("Authorization", "Bearer tok")
			if w := performRequest(r, req); w.Code != 200 {
				t.Fatalf("request %d: status %d, want 200", i+1, w.Code)
			}
		}

		req := httptest.NewRequest("POST", "/scan", nil)
		req.Header.Set("Authorization", "Bearer tok")
		if w := performRequest(r, req); w.Code != 429 {
			t.Fatalf("status %d, want 429", w.Code)
		}
	})

	t.Run("redis outage fails open", func(t *testing.T) {
		redisClient := newFakeRedis()
		redisClient.err = errors.New("connection refused")
		mw := testMiddleware(verifier, redisClient, RateLimitConfig{CompanyScan: 1})
		r := gin.New()
		r.POST("/scan", mw.Auth(), mw.CompanyScanRateLimit(), okHandler)

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/scan", nil)
			req.Header.Set("Authorization", "Bearer tok")
			if w := performRequest(r, req); w.Code != 200 {
				t.Fatalf("request %d: status %d, want 200", i+1, w.Code)
			}
		}
	})

	t.Run("buckets are independent", func(t *testing.T) {
		redisClient := newFakeRedis()
		mw := testMiddleware(verifier, redisClient, RateLimitConfig{PerUser: 200, Upload: 1})
		r := gin.New()
		r.POST("/upload", mw.Auth(), mw.UserRateLimit(), mw.UploadRateLimit(), okHandler)
		r.GET("/other", mw.Auth(), mw.UserRateLimit(), okHandler)

		req := httptest.NewRequest("POST", "/upload", nil)
		req.Header.Set("Authorization", "Bearer tok")
		if w := performRequest(r, req); w.Code != 200 {
			t.Fatalf("upload status %d, want 200", w.Code)
		}

		req = httptest.NewRequest("POST", "/upload", nil)
		req.Header.Set("Authorization", "Bearer tok")
		if w := performRequest(r, req); w.Code != 429 {
			t.Fatalf("second upload status %d, want 429", w.Code)
		}

		// The exhausted upload bucket must not block other traffic.
		req = httptest.NewRequest("GET", "/other", nil)
		req.Header.Set("Authorization", "Bearer tok")
		if w := performRequest(r, req); w.Code != 200 {
			t.Fatalf("other status %d, want 200", w.Code)
		}
	})
}
