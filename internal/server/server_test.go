package server

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuspal/schedule-assistant/internal/auth"
	"github.com/campuspal/schedule-assistant/internal/config"
	"github.com/campuspal/schedule-assistant/internal/docs"
	"github.com/campuspal/schedule-assistant/internal/logger"
	"github.com/campuspal/schedule-assistant/internal/metrics"
	"github.com/campuspal/schedule-assistant/internal/schedule"
	"github.com/campuspal/schedule-assistant/internal/storage"
)

const testJWTSecret = "test-secret"

// mondayMorning falls inside the 9:50-10:40 SOFT SKILLS slot of the
// sample timetable.
var mondayMorning = time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := db.SeedSampleTimetable(ctx); err != nil {
		t.Fatalf("seed timetable: %v", err)
	}
	if err := db.SetUserRole(ctx, "admin-1", "admin"); err != nil {
		t.Fatalf("set admin role: %v", err)
	}
	if err := db.SetUserRole(ctx, "student-1", "student"); err != nil {
		t.Fatalf("set student role: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:       testJWTSecret,
		MetricsUsername: "prometheus",
		LLMTimeout:      time.Second,
		MaxUploadBytes:  1 << 20,
	}

	h := NewHandler(
		cfg,
		db,
		schedule.New(db, rand.New(rand.NewSource(1))),
		nil,
		docs.NewSummarizer(nil),
		auth.NewVerifier(testJWTSecret, db),
		metrics.New(prometheus.NewRegistry()),
		logger.NewWithWriter("error", io.Discard),
		nil,
	)
	h.now = func() time.Time { return mondayMorning }

	router := gin.New()
	h.RegisterRoutes(router, prometheus.NewRegistry())
	return h, router
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	_, router := newTestHandler(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestReady(t *testing.T) {
	_, router := newTestHandler(t)

	w := doJSON(t, router, http.MethodGet, "/ready", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "ready" {
		t.Errorf("expected status ready, got %v", body["status"])
	}
	if body["chat_enabled"] != false {
		t.Errorf("expected chat_enabled false, got %v", body["chat_enabled"])
	}
	timetable, ok := body["timetable"].(map[string]any)
	if !ok {
		t.Fatalf("expected timetable object, got %v", body["timetable"])
	}
	if timetable["slots"] != float64(30) {
		t.Errorf("expected 30 seeded slots, got %v", timetable["slots"])
	}
}
