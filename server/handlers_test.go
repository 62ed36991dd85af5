package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/sahadev/jyotish/config"
)

// testServer builds a server with no AI provider so readings use the
// local fallback, and lat,lon place input so geocoding needs no
// network.
func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Geocoder: config.GeocoderConfig{
			BaseURL:   "http://nominatim.invalid",
			UserAgent: "jyotish-test/1.0",
		},
		Ephemeris: config.EphemerisConfig{Ayanamsa: "lahiri"},
		Reading:   config.ReadingConfig{Lang: "en", ChartStyle: "north"},
	}
	return New(cfg, nil)
}

func testRequestBody() string {
	return `{
		"name": "Test Person",
		"date": "1996-10-15",
		"time": "17:55",
		"place": "13.0827,80.2707",
		"timezone": "Asia/Kolkata",
		"chart_style": "north"
	}`
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestHandleConfig_RedactsSecrets(t *testing.T) {
	s := testServer(t)
	s.config().OpenRouter.APIKey = "sk-secret-value"

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "sk-secret-value") {
		t.Error("API key leaked in config response")
	}
	if !strings.Contains(w.Body.String(), "redacted") {
		t.Error("expected redaction marker")
	}
}

func TestHandleHoroscope(t *testing.T) {
	s := testServer(t)

	t.Run("full pipeline with fallback reading", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/horoscope", strings.NewReader(testRequestBody()))
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var resp HoroscopeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if len(resp.Chart.Placements) != 9 {
			t.Errorf("expected 9 placements, got %d", len(resp.Chart.Placements))
		}
		if resp.Chart.Meta.Timezone != "Asia/Kolkata" {
			t.Errorf("timezone = %q", resp.Chart.Meta.Timezone)
		}
		if resp.Reading == nil || resp.Reading.Headline != "Basic horoscope overview (local fallback)" {
			t.Errorf("expected fallback reading, got %+v", resp.Reading)
		}
		if !strings.Contains(resp.SVG, "<svg") {
			t.Error("expected SVG output")
		}
		if resp.Dasas.Current == "" {
			t.Error("expected a current dasa")
		}
	})

	t.Run("missing date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/horoscope",
			strings.NewReader(`{"time":"12:00","place":"10,76"}`))
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/horoscope",
			strings.NewReader(`{"date":"15-10-1996","time":"12:00","place":"10,76"}`))
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/horoscope", nil)
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestHandleChartSVG(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/chart.svg?date=1996-10-15&time=17:55&place=13.0827,80.2707&tz=Asia/Kolkata&style=south", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("expected SVG body")
	}

	t.Run("navamsa table style", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/chart.svg?date=1996-10-15&time=17:55&place=13.0827,80.2707&tz=Asia/Kolkata&style=navamsa", nil)
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Navamsa") {
			t.Error("expected navamsa heading")
		}
	})
}

func TestMiddleware(t *testing.T) {
	s := testServer(t)
	s.config().Server.AllowedOrigins = []string{"http://localhost:8787"}

	t.Run("request ID header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected a request ID")
		}
	})

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:8787")
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8787" {
			t.Error("expected CORS origin header")
		}
	})

	t.Run("disallowed origin gets no CORS origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("unexpected CORS origin header")
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/horoscope", nil)
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestHandleHoroscopeWS(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.mux)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/horoscope"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(json.RawMessage(testRequestBody())); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var stages []string
	var result *HoroscopeResponse
	for {
		var ev wsEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read failed after stages %v: %v", stages, err)
		}
		stages = append(stages, ev.Stage)
		if ev.Stage == "error" {
			t.Fatalf("pipeline error: %s", ev.Error)
		}
		if ev.Stage == "done" {
			result = ev.Result
			break
		}
	}

	want := []string{"geocoding", "yogas", "dasas", "rendering", "reading", "done"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i, stage := range want {
		if stages[i] != stage {
			t.Errorf("stage[%d] = %q, want %q", i, stages[i], stage)
		}
	}

	if result == nil || result.Reading == nil {
		t.Fatal("done event carried no result")
	}
	if len(result.Chart.Placements) != 9 {
		t.Errorf("expected 9 placements, got %d", len(result.Chart.Placements))
	}
}
