package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/labstack/gommon/log"

	"github.com/konczyk/irrops/internal/history"
	"github.com/konczyk/irrops/internal/models"
	"github.com/konczyk/irrops/internal/schedule"
)

// Server exposes one schedule over HTTP. The engine has no locking of its
// own, so every handler goes through the mutex.
type Server struct {
	mu    sync.Mutex
	sched *schedule.Schedule
	store *history.Store
}

// New constructs the HTTP router wired to the schedule. store may be nil;
// the history endpoint then reports it as not configured.
func New(sched *schedule.Schedule, store *history.Store) http.Handler {
	s := &Server{sched: sched, store: store}
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/flights", s.handleFlights)
	r.Get("/flights/{id}", s.handleFlight)
	r.Get("/airports", s.handleAirports)
	r.Get("/aircraft", s.handleAircraft)
	r.Get("/stats", s.handleStats)
	r.Get("/report", s.handleReport)
	r.Get("/history", s.handleHistory)
	r.Post("/assign", s.handleAssign)
	r.Post("/disruptions/delay", s.handleDelay)
	r.Post("/disruptions/curfew", s.handleCurfew)
	r.Post("/snapshot", s.handleSnapshot)

	return r
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	day := 0
	if q := r.URL.Query().Get("day"); q != "" {
		if d, err := strconv.Atoi(q); err == nil && d > 0 {
			day = d
		}
	}
	status := statusFilter(r.URL.Query().Get("status"))

	s.mu.Lock()
	flights := s.sched.Flights()
	out := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if day > 0 && f.Departure.Day() != day {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		out = append(out, f)
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	f, ok := s.sched.Flight(id)
	s.mu.Unlock()
	if !ok {
		writeJSONError(w, http.StatusNotFound, "flight not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	airports := s.sched.Airports()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(airports)
}

func (s *Server) handleAircraft(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	aircraft := s.sched.Aircraft()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(aircraft)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.sched.Stats()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report := s.sched.LastReport()
	s.mu.Unlock()
	if report == nil {
		writeJSONError(w, http.StatusNotFound, "no report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSONError(w, http.StatusNotFound, "history not configured")
		return
	}
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.store.Recent(limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sched.Assign()
	st := s.sched.Stats()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleDelay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FlightID string `json:"flight_id"`
		Minutes  int    `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FlightID == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.Minutes <= 0 {
		writeJSONError(w, http.StatusBadRequest, "minutes must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.sched.Flight(req.FlightID)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "flight not found")
		return
	}
	if f.Unscheduled() {
		writeJSONError(w, http.StatusBadRequest, "cannot delay an unscheduled flight")
		return
	}

	report := s.sched.ApplyDelay(req.FlightID, req.Minutes)
	s.record(report)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handleCurfew(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AirportID string `json:"airport_id"`
		From      int    `json:"from"`
		To        int    `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AirportID == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if req.From < 0 || req.To < 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid curfew window")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sched.HasAirport(req.AirportID) {
		writeJSONError(w, http.StatusNotFound, "airport not found")
		return
	}

	report := s.sched.ApplyCurfew(req.AirportID, models.Time(req.From), models.Time(req.To))
	s.record(report)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	err := s.sched.SaveFile(req.Path)
	s.mu.Unlock()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"saved": req.Path})
}

// record stores the report in the history database when one is configured.
func (s *Server) record(report *schedule.DisruptionReport) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(report); err != nil {
		log.Warnf("history not recorded: %v", err)
	}
}

// ===== helpers =====

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func statusFilter(q string) models.FlightStatus {
	switch q {
	case "u", "unscheduled":
		return models.StatusUnscheduled
	case "s", "scheduled":
		return models.StatusScheduled
	case "d", "delayed":
		return models.StatusDelayed
	}
	return ""
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
