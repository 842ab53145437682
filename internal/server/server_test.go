package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/config"
	"github.com/bensuskins/nutrition-hub/internal/testutil"
	"go.uber.org/goleak"
)

func newTestServer(t *testing.T, port string) *Server {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	testutil.SeedFoods(t, db)
	return New(db, config.Config{AllowedOrigins: []string{"https://app.example"}, Port: port})
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, "8080")

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
	if recorder.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", recorder.Body.String())
	}
}

func TestServer_Routes(t *testing.T) {
	server := newTestServer(t, "8080")

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{method: http.MethodPost, path: "/api/validate/profile", body: `{"age": 30, "weight": 70, "height": 175}`, want: http.StatusOK},
		{method: http.MethodPost, path: "/api/validate/meal", body: `{"food_items": []}`, want: http.StatusOK},
		{method: http.MethodPost, path: "/api/assessment", body: `{}`, want: http.StatusBadRequest},
		{method: http.MethodPost, path: "/api/recommendations", body: `{"goals": ["weight_loss"]}`, want: http.StatusOK},
		{method: http.MethodGet, path: "/api/foods", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/foods/apple", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/profiles", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/profiles/missing", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/profiles/missing/summary", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/community-health", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/unknown", want: http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.method+" "+test.path, func(t *testing.T) {
			request := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			recorder := httptest.NewRecorder()
			server.Handler().ServeHTTP(recorder, request)
			if recorder.Code != test.want {
				t.Errorf("expected status %d, got %d", test.want, recorder.Code)
			}
		})
	}
}

func TestServer_CORS(t *testing.T) {
	server := newTestServer(t, "8080")

	request := httptest.NewRequest(http.MethodGet, "/api/foods", nil)
	request.Header.Set("Origin", "https://app.example")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("expected allowed origin header, got %q", got)
	}

	request = httptest.NewRequest(http.MethodGet, "/api/foods", nil)
	request.Header.Set("Origin", "https://elsewhere.example")
	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header for an unknown origin, got %q", got)
	}
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	server := newTestServer(t, "0")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_StartReportsListenError(t *testing.T) {
	server := newTestServer(t, "not-a-port")

	if err := server.Start(context.Background()); err == nil {
		t.Error("expected a listen error")
	}
}
