package mw

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCache(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	var calls atomic.Int32

	r := gin.New()
	r.Use(Cache(store, time.Minute, nil))
	r.GET("/ok", func(c *gin.Context) {
		calls.Add(1)
		c.JSON(http.StatusOK, gin.H{"n": calls.Load()})
	})
	r.GET("/fail", func(c *gin.Context) {
		calls.Add(1)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "not ready"})
	})

	first := serve(r, http.MethodGet, "/ok?q=a")
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))
	second := serve(r, http.MethodGet, "/ok?q=a")
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, int32(1), calls.Load())

	other := serve(r, http.MethodGet, "/ok?q=b")
	assert.Equal(t, "MISS", other.Header().Get(CacheHeader))
	assert.Equal(t, int32(2), calls.Load())

	serve(r, http.MethodGet, "/fail")
	serve(r, http.MethodGet, "/fail")
	assert.Equal(t, int32(4), calls.Load(), "non-2xx responses are not cached")

	store.Flush()
	assert.Equal(t, "MISS", serve(r, http.MethodGet, "/ok?q=a").Header().Get(CacheHeader))
}

func TestCache_DisabledWithZeroTTL(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	r := gin.New()
	r.Use(Cache(store, 0, nil))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(r, http.MethodGet, "/ok")
	assert.Empty(t, w.Header().Get(CacheHeader))
	assert.Zero(t, store.ItemCount())
}

func TestCache_Scope(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	var version atomic.Int32
	scope := func(*gin.Context) string { return strconv.Itoa(int(version.Load())) }

	r := gin.New()
	r.Use(Cache(store, time.Minute, scope))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "v%d", version.Load()) })

	assert.Equal(t, "MISS", serve(r, http.MethodGet, "/ok").Header().Get(CacheHeader))
	assert.Equal(t, "HIT", serve(r, http.MethodGet, "/ok").Header().Get(CacheHeader))

	version.Store(1)
	w := serve(r, http.MethodGet, "/ok")
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.Equal(t, "v1", w.Body.String())
	assert.Equal(t, 2, store.ItemCount())
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(NewIPRateLimiter(1, 2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)
	w := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestIPRateLimiter_Prune(t *testing.T) {
	l := NewIPRateLimiter(10, 5)
	l.GetLimiter("10.0.0.1")
	l.GetLimiter("10.0.0.2")
	require.Equal(t, 2, l.Len())

	assert.Zero(t, l.Prune(time.Hour))
	assert.Equal(t, 2, l.Prune(-time.Second))
	assert.Zero(t, l.Len())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(r, http.MethodGet, "/")
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, 200, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])

	serve(r, http.MethodGet, "/boom")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "/boom", hook.LastEntry().Data["path"])
}

