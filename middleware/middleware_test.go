package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAdmins struct {
	err *services.ServiceError
}

func (f *fakeAdmins) AdminMe(ctx context.Context, adminID uuid.UUID) (*dto.Admin, *services.ServiceError) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.Admin{ID: adminID.String()}, nil
}

func whoAmI(c *gin.Context) {
	id, ok := CurrentUserID(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String())
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()
	userToken, err := tokens.GenerateAccessToken(userID, models.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(tokens), whoAmI)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + userToken, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"admin token", "Bearer " + adminToken, http.StatusUnauthorized},
		{"valid", "Bearer " + userToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			} else {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()
	token, _ := tokens.GenerateAccessToken(userID, models.RoleUser)

	r := gin.New()
	r.GET("/products", OptionalAuth(tokens), whoAmI)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	assert.Equal(t, "anonymous", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer expired-or-bad")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, userID.String(), serve(r, req).Body.String())
}

func TestAdminAuth(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	adminToken, _ := tokens.GenerateAccessToken(uuid.New(), models.RoleAdmin)
	userToken, _ := tokens.GenerateAccessToken(uuid.New(), models.RoleUser)

	tests := []struct {
		name   string
		token  string
		admins *fakeAdmins
		status int
	}{
		{"valid admin", adminToken, &fakeAdmins{}, http.StatusOK},
		{"user token", userToken, &fakeAdmins{}, http.StatusUnauthorized},
		{"admin deleted", adminToken, &fakeAdmins{err: &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}}, http.StatusUnauthorized},
		{"lookup failed", adminToken, &fakeAdmins{err: &services.ServiceError{StatusCode: http.StatusInternalServerError, Message: "internal_server_error"}}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/dashboard", AdminAuth(tokens, tt.admins), whoAmI)

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			assert.Equal(t, tt.status, serve(r, req).Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/ok", "/missing", "/boom", "/health"} {
		serve(r, httptest.NewRequest(http.MethodGet, path+"?q=1", nil))
	}

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/ok", fields["path"])
	assert.Equal(t, "/ok", fields["route"])
	assert.Equal(t, "q=1", fields["query"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestLanguage(t *testing.T) {
	r := gin.New()
	r.Use(Language())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, string(i18n.FromContext(c))) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ar-AE,ar;q=0.9")
	assert.Equal(t, "ar", serve(r, req).Body.String())

	assert.Equal(t, "en", serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		assert.True(t, hasDeadline)
		<-c.Request.Context().Done()
		c.Status(http.StatusGatewayTimeout)
	})

	assert.Equal(t, http.StatusGatewayTimeout, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/uploads/x.png", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/uploads/x.png", nil))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(4, time.Minute)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// burst is half the per-minute budget
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.9:1234"
	assert.Equal(t, http.StatusOK, serve(r, other).Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.Limiter("1.1.1.1")

	now = now.Add(2 * time.Minute)
	rl.Limiter("2.2.2.2")
	rl.Cleanup()

	assert.Len(t, rl.ips, 1)
	assert.Contains(t, rl.ips, "2.2.2.2")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shop.example.com/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
}

type recordingMetrics struct {
	mu    sync.Mutex
	names []string
	done  chan struct{}
}

func (m *recordingMetrics) RecordCount(ctx context.Context, name string, dims map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	if name == "HTTP4xxErrors" {
		close(m.done)
	}
	return nil
}

func (m *recordingMetrics) RecordLatency(ctx context.Context, name string, d time.Duration, dims map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	return nil
}

func (m *recordingMetrics) IsEnabled() bool { return true }

func TestMetrics_RecordsClientErrors(t *testing.T) {
	rec := &recordingMetrics{done: make(chan struct{})}
	r := gin.New()
	r.Use(Metrics(rec, "storefront-api"))
	r.GET("/cart/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/cart/7", nil))

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("metrics were not recorded")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"HTTPLatency", "HTTPRequests", "HTTPErrors", "HTTP4xxErrors"}, rec.names)
}

func TestStatusCodeToRange(t *testing.T) {
	assert.Equal(t, "2xx", statusCodeToRange(201))
	assert.Equal(t, "3xx", statusCodeToRange(304))
	assert.Equal(t, "4xx", statusCodeToRange(422))
	assert.Equal(t, "5xx", statusCodeToRange(503))
	assert.Equal(t, "1xx", statusCodeToRange(101))
	assert.Equal(t, "unknown", statusCodeToRange(0))
}

func TestCounterNames(t *testing.T) {
	assert.Equal(t, []string{"HTTPRequests"}, counterNames(200))
	assert.Equal(t, []string{"HTTPRequests", "HTTPErrors", "HTTP5xxErrors"}, counterNames(502))
}
