package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sahadev/jyotish/chart"
	"github.com/sahadev/jyotish/dasa"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/geocode"
	"github.com/sahadev/jyotish/horoscope"
	"github.com/sahadev/jyotish/render"
	"github.com/sahadev/jyotish/version"
	"github.com/sahadev/jyotish/yoga"
)

// HoroscopeRequest is the birth data submitted by the client
type HoroscopeRequest struct {
	Name       string `json:"name"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
	Place      string `json:"place"`
	Timezone   string `json:"timezone"`
	Lang       string `json:"lang,omitempty"`        // reading language, "ta" or "en"
	ChartStyle string `json:"chart_style,omitempty"` // north, south
}

// HoroscopeResponse is the full pipeline output
type HoroscopeResponse struct {
	Chart   *chart.Chart       `json:"chart"`
	Yogas   []string           `json:"yogas"`
	Dasas   dasa.Timeline      `json:"dasas"`
	Reading *horoscope.Reading `json:"reading"`
	SVG     string             `json:"svg,omitempty"`
}

// HandleHealth reports service liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Short(),
	})
}

// HandleConfig returns the effective configuration with secrets redacted
func (s *Server) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.config()

	openrouterKey := "not set"
	if cfg.OpenRouter.APIKey != "" {
		openrouterKey = "configured (redacted)"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"server": map[string]interface{}{
			"port":            cfg.GetServerPort(),
			"allowed_origins": cfg.GetServerAllowedOrigins(),
		},
		"geocoder": map[string]interface{}{
			"base_url":   cfg.Geocoder.BaseURL,
			"user_agent": cfg.Geocoder.UserAgent,
		},
		"ephemeris": map[string]interface{}{
			"ayanamsa": cfg.Ephemeris.Ayanamsa,
		},
		"local_inference": map[string]interface{}{
			"enabled":  cfg.LocalInference.Enabled,
			"base_url": cfg.LocalInference.BaseURL,
			"model":    cfg.LocalInference.Model,
		},
		"openrouter": map[string]interface{}{
			"api_key": openrouterKey,
			"model":   cfg.OpenRouter.Model,
		},
		"reading": map[string]interface{}{
			"lang":        cfg.Reading.Lang,
			"chart_style": cfg.GetChartStyle(),
		},
	})
}

// HandleHoroscope runs the full pipeline for a posted birth record
func (s *Server) HandleHoroscope(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req HoroscopeRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	resp, err := s.runPipeline(r.Context(), req, nil)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsInvalidRequestError(err) {
			status = http.StatusBadRequest
		} else if errors.IsGeocodeError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleChartSVG renders a chart from query parameters
func (s *Server) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	req := HoroscopeRequest{
		Name:       q.Get("name"),
		Date:       q.Get("date"),
		Time:       q.Get("time"),
		Place:      q.Get("place"),
		Timezone:   q.Get("tz"),
		ChartStyle: q.Get("style"),
	}

	c, err := s.computeChart(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	style := req.ChartStyle
	if style == "" {
		style = s.config().GetChartStyle()
	}

	var svg string
	if style == "navamsa" {
		svg = render.NavamsaTable(c, render.DefaultOptions())
	} else {
		svg = render.Rasi(c, style, render.DefaultOptions())
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

// runPipeline executes geocode, chart computation, yoga and dasa
// analysis, SVG rendering and the LLM reading. The progress callback,
// when non-nil, receives stage names as the pipeline advances.
func (s *Server) runPipeline(ctx context.Context, req HoroscopeRequest, progress func(stage string)) (*HoroscopeResponse, error) {
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	report("geocoding")
	c, err := s.computeChart(ctx, req)
	if err != nil {
		return nil, err
	}

	report("yogas")
	yogas := yoga.Detect(c)

	report("dasas")
	var timeline *dasa.Timeline
	if moon, ok := c.Placements["Moon"]; ok {
		birth, _ := time.Parse(time.RFC3339, c.Meta.Datetime)
		timeline = dasa.Compute(moon.Lon, birth)
	} else {
		timeline = dasa.Unknown()
	}

	report("rendering")
	style := req.ChartStyle
	if style == "" {
		style = s.config().GetChartStyle()
	}
	svg := render.Rasi(c, style, render.DefaultOptions())

	report("reading")
	engine := s.engine
	if req.Lang != "" {
		engine = engine.WithLang(req.Lang)
	}
	payload := horoscope.BuildPayload(c, yogas, *timeline)
	reading := engine.Generate(ctx, payload)

	return &HoroscopeResponse{
		Chart:   c,
		Yogas:   yogas,
		Dasas:   *timeline,
		Reading: reading,
		SVG:     svg,
	}, nil
}

// computeChart validates the request, resolves place and timezone and
// computes the chart.
func (s *Server) computeChart(ctx context.Context, req HoroscopeRequest) (*chart.Chart, error) {
	if req.Date == "" || req.Time == "" {
		return nil, errors.NewInvalidRequestError("date and time are required")
	}
	if req.Place == "" {
		return nil, errors.NewInvalidRequestError("place is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.NewInvalidRequestError("invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	clock, err := time.Parse("15:04", req.Time)
	if err != nil {
		return nil, errors.NewInvalidRequestError("invalid time %q, expected HH:MM", req.Time)
	}

	loc, err := s.geocoder.Resolve(ctx, req.Place)
	if err != nil {
		return nil, errors.WithHint(err, "Enter 'lat,lon' or a different place name")
	}

	tz := req.Timezone
	if tz == "" {
		tz = geocode.GuessTimezoneFromLocation(req.Place)
	}
	if tz == "" {
		tz, _ = geocode.DetectLocalTimezone()
	}
	normalized, err := geocode.NormalizeTimezone(tz)
	if err != nil {
		return nil, errors.NewInvalidRequestError("unknown timezone %q", tz)
	}

	birth, err := geocode.Localize(date.Year(), int(date.Month()), date.Day(),
		clock.Hour(), clock.Minute(), normalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to localize birth time")
	}

	s.logger.Infow("Computing chart",
		"place", req.Place,
		"lat", loc.Lat,
		"lon", loc.Lon,
		"timezone", normalized,
	)

	return chart.Compute(chart.Input{
		Name:  req.Name,
		Time:  birth,
		Lat:   loc.Lat,
		Lon:   loc.Lon,
		Place: req.Place,
	}), nil
}
