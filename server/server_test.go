package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"go-slug-shortener/config"
	"go-slug-shortener/metrics"
	"go-slug-shortener/storage"
	"go-slug-shortener/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var shortLinkPattern = regexp.MustCompile(`^https://sho\.rt/([0-9a-z]{5,6})$`)

func newTestRouter(t *testing.T, store storage.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.HostURL = "https://sho.rt"

	router, err := NewRouter(context.Background(), cfg, store, metrics.New(), zap.NewNop())
	require.NoError(t, err)
	return router
}

func postURL(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func createSlug(t *testing.T, router http.Handler, target string) string {
	t.Helper()
	resp := postURL(t, router, fmt.Sprintf(`{"url":%q}`, target))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out types.ShortenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	match := shortLinkPattern.FindStringSubmatch(out.URL)
	require.NotNil(t, match, "unexpected short link %q", out.URL)
	return match[1]
}

func TestEndToEnd(t *testing.T) {
	router := newTestRouter(t, storage.NewInMemoryStorage(1000, nil))

	t.Run("Create then redirect", func(t *testing.T) {
		slug := createSlug(t, router, "https://example.com")

		resp := get(router, "/"+slug)
		assert.Equal(t, http.StatusFound, resp.Code)
		assert.Equal(t, "https://example.com", resp.Header().Get("Location"))
	})

	t.Run("Disallowed protocol", func(t *testing.T) {
		resp := postURL(t, router, `{"url":"javascript:alert(1)"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"error":"Invalid URL protocol"}`, resp.Body.String())
	})

	t.Run("Unknown slug", func(t *testing.T) {
		resp := get(router, "/doesnotexist")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `"URL not found"`, resp.Body.String())
	})

	t.Run("Round trip keeps the target", func(t *testing.T) {
		target := "https://example.com/path?q=1#frag"
		slug := createSlug(t, router, target)

		resp := get(router, "/"+slug)
		assert.Equal(t, http.StatusFound, resp.Code)
		assert.Equal(t, target, resp.Header().Get("Location"))
	})

	t.Run("Reads are idempotent", func(t *testing.T) {
		slug := createSlug(t, router, "https://example.org/a")

		for i := 0; i < 5; i++ {
			resp := get(router, "/"+slug)
			assert.Equal(t, http.StatusFound, resp.Code)
			assert.Equal(t, "https://example.org/a", resp.Header().Get("Location"))
		}
	})

	t.Run("Same URL twice gets two slugs", func(t *testing.T) {
		first := createSlug(t, router, "https://example.net")
		second := createSlug(t, router, "https://example.net")

		assert.NotEqual(t, first, second)
	})

	t.Run("Form and health", func(t *testing.T) {
		form := get(router, "/")
		assert.Equal(t, http.StatusOK, form.Code)
		assert.Contains(t, form.Body.String(), "<form")

		health := get(router, "/healthz")
		assert.Equal(t, http.StatusOK, health.Code)
		assert.Equal(t, "OK", health.Body.String())
	})

	t.Run("Metrics reflect traffic", func(t *testing.T) {
		resp := get(router, "/metrics")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "shortener_links_created_total")
		assert.Contains(t, resp.Body.String(), `route="/:slug"`)
	})
}

func TestEndToEndLegacyData(t *testing.T) {
	store := storage.NewInMemoryStorage(1000, nil)
	router := newTestRouter(t, store)

	require.NoError(t, store.PutIfAbsent(context.Background(), "legac1", "ftp://files.example.com"))

	resp := get(router, "/legac1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `"URL not found or invalid"`, resp.Body.String())
}

func TestEndToEndCapacity(t *testing.T) {
	store := storage.NewInMemoryStorage(1, nil)
	router := newTestRouter(t, store)

	createSlug(t, router, "https://example.com/one")

	resp := postURL(t, router, `{"url":"https://example.com/two"}`)
	assert.Equal(t, http.StatusInsufficientStorage, resp.Code)
	assert.JSONEq(t, `{"error":"Storage capacity reached"}`, resp.Body.String())
}

func TestEndToEndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := storage.NewRedisStorage(context.Background(), storage.RedisOptions{Addr: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	router := newTestRouter(t, store)
	slug := createSlug(t, router, "https://example.com/redis")

	stored, err := mr.Get(slug)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/redis", stored)

	resp := get(router, "/"+slug)
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "https://example.com/redis", resp.Header().Get("Location"))
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ServerAddress = freeAddress(t)
	cfg.ShutdownTimeout = 2 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, zap.NewNop(), cfg)
	}()

	healthURL := "http://" + cfg.ServerAddress + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunAddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := config.DefaultConfig()
	cfg.ServerAddress = l.Addr().String()

	err = Run(context.Background(), zap.NewNop(), cfg)
	assert.Error(t, err)
}

func TestRunStoreFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StoreBackend = "cassandra"

	err := Run(context.Background(), zap.NewNop(), cfg)
	assert.Error(t, err)
}
