package server

import (
	"net/http"

	"github.com/google/uuid"
)

// setupRoutes configures all HTTP handlers
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.middleware(s.HandleHealth))
	s.mux.HandleFunc("/api/config", s.middleware(s.HandleConfig))
	s.mux.HandleFunc("/api/horoscope", s.middleware(s.HandleHoroscope))
	s.mux.HandleFunc("/api/chart.svg", s.middleware(s.HandleChartSVG))
	s.mux.HandleFunc("/ws/horoscope", s.middleware(s.HandleHoroscopeWS))
	s.mux.HandleFunc("/", s.middleware(s.HandleStatic))
}

// middleware tags each request with an ID and applies CORS headers
func (s *Server) middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// originAllowed checks an Origin header against the configured list
func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.config().GetServerAllowedOrigins() {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
