package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"DuctSizer/internal/config"
	"github.com/gorilla/mux"
)

func testServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	router := mux.NewRouter()
	if err := HandleList(router, cfg); err != nil {
		t.Fatal(err)
	}
	return CORS(router)
}

func baseConfig() *config.Config {
	return &config.Config{RateLimit: 1000, RateBurst: 1000, TokenTTL: time.Hour}
}

func TestRoutes(t *testing.T) {
	h := testServer(t, baseConfig())

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/?cfm=2000&velocity=1000&shape=Rectangular&aspect=2", "", http.StatusOK},
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodPost, "/api/tools/duct/calc", `{"cfm":1200}`, http.StatusOK},
		{http.MethodGet, "/api/tools/duct/curve?cfm=1200&velocity=900", "", http.StatusOK},
		{http.MethodGet, "/api/tools/duct/table?cfm=1200", "", http.StatusOK},
		{http.MethodGet, "/api/tools/duct/standards", "", http.StatusOK},
		{http.MethodPost, "/api/tools/batch/duct", `{"items":[{"cfm":600}]}`, http.StatusOK},
		{http.MethodPost, "/api/tools/report/pdf", `{}`, http.StatusOK},
		{http.MethodOptions, "/api/tools/duct/calc", "", http.StatusNoContent},
		{http.MethodGet, "/missing", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRoutes_AuthEnabled(t *testing.T) {
	cfg := baseConfig()
	cfg.TokenKey = []byte("test-key")
	h := testServer(t, cfg)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tools/batch/duct", strings.NewReader(`{"items":[]}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("secure tool without token = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tools/duct/calc", strings.NewReader(`{}`)))
	if rec.Code != http.StatusOK {
		t.Errorf("public calc = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"a","password":"b"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login without admin = %d, want 401", rec.Code)
	}
}

func TestRoutes_RateLimited(t *testing.T) {
	cfg := baseConfig()
	cfg.RateLimit, cfg.RateBurst = 0.001, 1
	h := testServer(t, cfg)

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/duct/standards", nil))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}
