package web

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"lunarcal/internal/calendar"
	"lunarcal/internal/config"
	"lunarcal/internal/ics"
	appLog "lunarcal/internal/log"
	"lunarcal/internal/model"
)

const (
	gridCacheTTL        = 10 * time.Minute
	maxGridCacheEntries = 64
	monthLayout  = "2006-01"

	shutdownTimeout = 5 * time.Second
)

// Clock abstracts time.Now() so handlers can be tested against a fixed
// "today".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Server provides the HTTP API over the calendar engine.
type Server struct {
	cfg   *config.Config
	loc   *time.Location
	clock Clock
	mux   *http.ServeMux

	// Grids are cached per (month, today) without the selection overlay,
	// which is applied per request.
	gridMu    sync.RWMutex
	gridCache map[gridKey]gridCacheEntry

	feedMu    sync.RWMutex
	feedCache *feedCache
}

type gridKey struct {
	month string
	today string
}

type gridCacheEntry struct {
	grid      calendar.Grid
	updatedAt time.Time
}

type feedCache struct {
	body []byte
	etag string
	year int
}

// NewServer constructs a new Server. A nil clock uses the wall clock.
func NewServer(cfg *config.Config, clock Clock) *Server {
	if clock == nil {
		clock = realClock{}
	}
	s := &Server{
		cfg:       cfg,
		loc:       resolveLocationOrLocal(cfg),
		clock:     clock,
		mux:       http.NewServeMux(),
		gridCache: make(map[gridKey]gridCacheEntry),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// Run serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		appLog.Info("stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web: shutdown: %w", err)
		}
		return nil
	case err, ok := <-serveErr:
		if !ok {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	}
}

// InvalidateCache drops all cached grids and the feed. Called by the
// day-rollover job.
func (s *Server) InvalidateCache() {
	s.gridMu.Lock()
	n := len(s.gridCache)
	s.gridCache = make(map[gridKey]gridCacheEntry)
	s.gridMu.Unlock()

	s.feedMu.Lock()
	s.feedCache = nil
	s.feedMu.Unlock()

	appLog.Debug("grid cache invalidated", "entries", n)
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password is treated as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="lunarcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/month", s.handleMonth)
	s.mux.HandleFunc("/api/day", s.handleDay)
	s.mux.HandleFunc("/api/upcoming", s.handleUpcoming)
	s.mux.HandleFunc("/calendar.ics", s.handleFeed)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) today() time.Time {
	return calendar.DateOf(s.clock.Now().In(s.loc))
}

// dayDTO is a JSON-friendly view of a grid cell.
type dayDTO struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	Weekday        int    `json:"weekday"`
	IsCurrentMonth bool   `json:"is_current_month"`
	IsToday        bool   `json:"is_today"`
	IsSelected     bool   `json:"is_selected"`
	IsWeekend      bool   `json:"is_weekend"`
	LunarDay       string `json:"lunar_day"`
	LunarMonth     string `json:"lunar_month"`
	Festival       string `json:"festival,omitempty"`
	SolarTerm      string `json:"solar_term,omitempty"`
}

// monthResponse is the JSON response shape for /api/month.
type monthResponse struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Today     string   `json:"today"`
	Selected  string   `json:"selected,omitempty"`
	WeekStart string   `json:"week_start"`
	Policy    string   `json:"policy"`
	Weekdays  []string `json:"weekdays"`
	Rows      int      `json:"rows"`
	Days      []dayDTO `json:"days"`
	Prev      string   `json:"prev"`
	Next      string   `json:"next"`
}

// handleMonth returns the grid for a month.
//
// GET /api/month?month=2024-10&selected=2024-10-05
//   - month:    YYYY-MM, default the current month in the configured timezone
//   - selected: YYYY-MM-DD, default none
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := s.today()

	target := today
	if v := q.Get("month"); v != "" {
		t, err := time.Parse(monthLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		target = t
	}

	var selected time.Time
	if v := q.Get("selected"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid selected, expected YYYY-MM-DD")
			return
		}
		selected = t
	}

	grid := s.monthGrid(target, today).WithSelected(selected)

	days := make([]dayDTO, 0, len(grid.Days))
	for _, c := range grid.Days {
		days = append(days, toDayDTO(c))
	}

	resp := monthResponse{
		Year:      grid.Year,
		Month:     int(grid.Month),
		Today:     today.Format(time.DateOnly),
		WeekStart: s.cfg.WeekStart,
		Policy:    string(grid.Policy),
		Weekdays:  calendar.WeekdayLabels(grid.WeekStart),
		Rows:      len(grid.Rows()),
		Days:      days,
		Prev:      calendar.ShiftMonth(target, -1).Format(monthLayout),
		Next:      calendar.ShiftMonth(target, 1).Format(monthLayout),
	}
	if !selected.IsZero() {
		resp.Selected = selected.Format(time.DateOnly)
	}
	writeJSON(w, http.StatusOK, resp)
}

// monthGrid returns a cached grid when fresh, building and caching it
// otherwise.
func (s *Server) monthGrid(target, today time.Time) calendar.Grid {
	key := gridKey{month: target.Format(monthLayout), today: today.Format(time.DateOnly)}
	now := time.Now()

	s.gridMu.RLock()
	e, ok := s.gridCache[key]
	s.gridMu.RUnlock()
	if ok && now.Sub(e.updatedAt) < gridCacheTTL {
		return e.grid
	}

	grid := calendar.BuildMonthGrid(target, today, time.Time{},
		calendar.WithWeekStart(s.cfg.WeekStartDay()),
		calendar.WithPolicy(s.cfg.Policy()),
	)
	appLog.Debug("grid built", "month", key.month, "today", key.today, "cells", len(grid.Days))

	s.gridMu.Lock()
	s.pruneGridCacheLocked(now)
	s.gridCache[key] = gridCacheEntry{grid: grid, updatedAt: now}
	s.gridMu.Unlock()
	return grid
}

// pruneGridCacheLocked drops expired grids and, if the cache is still full,
// the oldest one so an insert keeps it within maxGridCacheEntries.
// Callers must hold gridMu for writing.
func (s *Server) pruneGridCacheLocked(now time.Time) {
	for k, e := range s.gridCache {
		if now.Sub(e.updatedAt) >= gridCacheTTL {
			delete(s.gridCache, k)
		}
	}
	for len(s.gridCache) >= maxGridCacheEntries {
		var (
			oldest   gridKey
			oldestAt time.Time
			found    bool
		)
		for k, e := range s.gridCache {
			if !found || e.updatedAt.Before(oldestAt) {
				oldest, oldestAt, found = k, e.updatedAt, true
			}
		}
		delete(s.gridCache, oldest)
		appLog.Debug("grid cache evicted", "month", oldest.month, "today", oldest.today)
	}
}

func toDayDTO(c model.CalendarDay) dayDTO {
	return dayDTO{
		Date:           c.Date.Format(time.DateOnly),
		Day:            c.DayOfMonth,
		Weekday:        int(c.Weekday),
		IsCurrentMonth: c.IsCurrentMonth,
		IsToday:        c.IsToday,
		IsSelected:     c.IsSelected,
		IsWeekend:      c.IsWeekend,
		LunarDay:       c.LunarDayLabel,
		LunarMonth:     c.LunarMonthLabel,
		Festival:       c.Festival,
		SolarTerm:      c.SolarTerm,
	}
}

// dayResponse is the JSON response shape for /api/day.
type dayResponse struct {
	Date       string   `json:"date"`
	LunarDate  string   `json:"lunar_date"`
	Zodiac     string   `json:"zodiac"`
	GanZhi     string   `json:"ganzhi"`
	Suitable   []string `json:"suitable"`
	Avoid      []string `json:"avoid"`
	Motivation string   `json:"motivation"`
	Festival   string   `json:"festival,omitempty"`
	SolarTerm  string   `json:"solar_term,omitempty"`
}

// handleDay returns the detail panel for a date (default today).
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := s.today()
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = t
	}

	detail := calendar.BuildDayDetail(date)
	writeJSON(w, http.StatusOK, dayResponse{
		Date:       detail.Date.Format(time.DateOnly),
		LunarDate:  detail.LunarDate,
		Zodiac:     detail.Zodiac,
		GanZhi:     detail.GanZhi,
		Suitable:   detail.Suitable,
		Avoid:      detail.Avoid,
		Motivation: detail.Motivation,
		Festival:   detail.Festival,
		SolarTerm:  detail.SolarTerm,
	})
}

type observanceDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// upcomingResponse is the JSON response shape for /api/upcoming.
type upcomingResponse struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Observances []observanceDTO `json:"observances"`
}

// handleUpcoming lists festivals and solar terms from today, plus the
// events of any configured ICS imports.
//
// GET /api/upcoming?days=30
//   - days: window length including today (default upcoming_days, max 366)
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days := parseIntDefault(r.URL.Query().Get("days"), s.cfg.UpcomingDays)
	if days <= 0 {
		days = s.cfg.UpcomingDays
	}
	if days > config.MaxUpcomingDays {
		days = config.MaxUpcomingDays
	}

	from := s.today()
	to := from.AddDate(0, 0, days-1)

	obs, err := ics.Observances(from, to)
	if err != nil {
		appLog.Error("api upcoming: expand failed", err)
		writeError(w, http.StatusInternalServerError, "failed to expand observances")
		return
	}
	if len(s.cfg.ICS.Imports) > 0 {
		// Failed imports are logged by LoadImports and left out.
		imported, _ := ics.LoadImports(s.cfg.ICS.Imports, from, to)
		obs = ics.Merge(obs, imported)
	}

	dtos := make([]observanceDTO, 0, len(obs))
	for _, o := range obs {
		dtos = append(dtos, observanceDTO{
			Date: o.Date.Format(time.DateOnly),
			Name: o.Name,
			Kind: string(o.Kind),
		})
	}
	writeJSON(w, http.StatusOK, upcomingResponse{
		From:        from.Format(time.DateOnly),
		To:          to.Format(time.DateOnly),
		Observances: dtos,
	})
}

// handleFeed serves the iCalendar subscription with ETag revalidation.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	fc, err := s.feed()
	if err != nil {
		appLog.Error("ics feed build failed", err)
		writeError(w, http.StatusInternalServerError, "failed to build feed")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", fc.etag)

	if r.Header.Get("If-None-Match") == fc.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(fc.body)
	}
}

func (s *Server) feed() (*feedCache, error) {
	year := s.cfg.ICS.AnchorYear
	if year == 0 {
		year = s.today().Year()
	}

	s.feedMu.RLock()
	fc := s.feedCache
	s.feedMu.RUnlock()
	if fc != nil && fc.year == year {
		return fc, nil
	}

	// DTSTAMP is pinned to the anchor year so the body, and therefore the
	// ETag, only changes when the content does.
	body, err := ics.BuildFeed(ics.FeedOptions{
		Name:       s.cfg.ICS.Name,
		AnchorYear: year,
		Now:        time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(body)
	fc = &feedCache{
		body: body,
		etag: `"` + hex.EncodeToString(sum[:]) + `"`,
		year: year,
	}

	s.feedMu.Lock()
	s.feedCache = fc
	s.feedMu.Unlock()
	return fc, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func resolveLocationOrLocal(cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", cfg.Timezone)
		return time.Local
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
