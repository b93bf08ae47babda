package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cinema-listing/internal/data/repository"
	"cinema-listing/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type stubFeed struct {
	body []byte
	err  error
}

func (s stubFeed) Fetch(ctx context.Context) ([]byte, error) {
	return s.body, s.err
}

const feedXML = `<Feed><Films><Film><Code>F1</Code><FilmTitle>Test</FilmTitle></Film></Films><Performances><Performance><FilmCode>F1</FilmCode><PerformDate>2025-09-26</PerformDate><StartTime>20:00:00</StartTime></Performance></Performances></Feed>`

func newTestApp(t *testing.T, feed repository.FeedRepository) *App {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>Listings</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "app.js"), []byte("load()"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &utils.Config{
		App:       utils.AppConfig{Name: "test", Port: "8080", ShutdownTimeout: time.Second},
		Static:    utils.StaticConfig{Root: root},
		CORS:      utils.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: utils.RateLimitConfig{Requests: 0, Window: time.Minute},
		Metrics:   utils.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	return Wiring(&repository.Repository{Feed: feed}, cfg, zap.NewNop())
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes_Movies(t *testing.T) {
	app := newTestApp(t, stubFeed{body: []byte(feedXML)})

	rec := get(t, app, MoviesPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var films []struct {
		Code            string `json:"code"`
		Title           string `json:"title"`
		ShowtimesByDate map[string][]struct {
			Time string `json:"time"`
		} `json:"showtimesByDate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &films); err != nil {
		t.Fatalf("body is not a film array: %v\n%s", err, rec.Body.String())
	}
	if len(films) != 1 || films[0].Code != "F1" || films[0].Title != "Test" {
		t.Fatalf("films = %+v", films)
	}
	if st := films[0].ShowtimesByDate["2025-09-26"]; len(st) != 1 || st[0].Time != "20:00" {
		t.Errorf("showtimes = %+v", films[0].ShowtimesByDate)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRoutes_MoviesBadXML(t *testing.T) {
	app := newTestApp(t, stubFeed{body: []byte("<Feed><Films>")})

	rec := get(t, app, MoviesPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestRoutes_MoviesFetchError(t *testing.T) {
	app := newTestApp(t, stubFeed{err: &repository.FetchError{Class: repository.FetchNetwork, Err: errors.New("connection refused")}})

	rec := get(t, app, MoviesPath)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body utils.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "feed_network" || !strings.Contains(body.Details, "connection refused") {
		t.Errorf("body = %+v", body)
	}
}

func TestRoutes_StaticAndHealth(t *testing.T) {
	app := newTestApp(t, stubFeed{})

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "<h1>Listings</h1>"},
		{"/app.js", http.StatusOK, "load()"},
		{"/nope.css", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, app, tt.path)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRoutes_Metrics(t *testing.T) {
	app := newTestApp(t, stubFeed{body: []byte(feedXML)})
	get(t, app, MoviesPath)

	rec := get(t, app, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "feed_transform_outcomes_total") {
		t.Error("transform metrics not exported")
	}
}
