package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/config"
	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, username string) (*entity.IdempotencyKey, error) {
	return r.keys[username+"/"+key], nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Username+"/"+ikey.Key] = ikey
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

type staticValidator struct {
	token string
}

func (v staticValidator) ValidateToken(token string) (*utils.JWTClaims, error) {
	if token != v.token {
		return nil, errors.New("invalid token")
	}
	return &utils.JWTClaims{UserID: "1", Username: "admin", Email: "user@example.com"}, nil
}

func withUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("username", username)
		c.Next()
	}
}

func TestIdempotencyReplaysSuccessfulResponses(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	calls := 0

	router := gin.New()
	router.POST("/sales", withUser("admin"), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sales", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send("k1")
	second := send("k1")
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Body.String() != first.Body.String() || second.Code != http.StatusCreated {
		t.Errorf("replay mismatch: %d %s vs %s", second.Code, second.Body.String(), first.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("missing replay header")
	}

	send("")
	send("")
	if calls != 3 {
		t.Errorf("requests without a key must not be deduplicated, handler ran %d times", calls)
	}
}

func TestIdempotencySkipsFailedResponses(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	calls := 0

	router := gin.New()
	router.POST("/sales", withUser("admin"), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/sales", nil)
		req.Header.Set(IdempotencyKeyHeader, "k1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
	if len(repo.keys) != 0 {
		t.Errorf("failed response was stored: %v", repo.keys)
	}
}

func TestIdempotencyIgnoresExpiredKeys(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0

	router := gin.New()
	router.POST("/sales", withUser("admin"), Idempotency(IdempotencyConfig{
		Repo: repo,
		Now:  func() time.Time { return now },
	}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func() {
		req := httptest.NewRequest(http.MethodPost, "/sales", nil)
		req.Header.Set(IdempotencyKeyHeader, "k1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	send()
	now = now.Add(IdempotencyKeyTTL + time.Minute)
	send()
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2 after expiry", calls)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/me", AuthMiddleware(staticValidator{token: "good"}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token good", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != "admin" {
				t.Errorf("username %q, want admin", w.Body.String())
			}
		})
	}
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Hour,
	})

	router := gin.New()
	router.GET("/a", withUser("alice"), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/b", withUser("bob"), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	status := func(path string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if got := status("/a"); got != http.StatusOK {
			t.Fatalf("request %d: status %d", i, got)
		}
	}
	if got := status("/a"); got != http.StatusTooManyRequests {
		t.Errorf("third request: status %d, want 429", got)
	}
	if got := status("/b"); got != http.StatusOK {
		t.Errorf("other operator limited: status %d", got)
	}
}

func TestLoggerMiddlewareShortRequestID(t *testing.T) {
	router := gin.New()
	router.Use(LoggerMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("status %d request id %q", w.Code, w.Header().Get("X-Request-ID"))
	}
}

func TestCORSAllowsIdempotencyKey(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "idempotency-key"},
	}
	if got := corsConfig(cfg).AllowHeaders; len(got) != 2 {
		t.Errorf("headers = %v, want the configured two without a duplicate key header", got)
	}

	cfg.AllowedHeaders = []string{"Content-Type"}
	router := gin.New()
	router.Use(CORSMiddleware(cfg))
	router.POST("/sales", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "idempotency-key") {
		t.Errorf("allow headers = %q, want Idempotency-Key", w.Header().Get("Access-Control-Allow-Headers"))
	}
}
