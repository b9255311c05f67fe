package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/studiowebux/foodboard/internal/types"
)

const maxLogs = 1000

// Server is an in-memory /foods backend compatible with the dashboard
type Server struct {
	config     *Config
	httpServer *http.Server
	router     chi.Router
	logger     zerolog.Logger
	addr       string

	mu     sync.RWMutex
	foods  []types.FoodRecord
	faults map[string][]int // method -> queued statuses

	logs      []RequestLog
	logsMutex sync.RWMutex
}

// NewServer creates a new mock server
func NewServer(config *Config, logger zerolog.Logger) *Server {
	if config == nil {
		config = &Config{}
	}
	if config.Port == 0 {
		config.Port = 3333
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	s := &Server{
		config: config,
		logger: logger.With().Str("component", "mock").Logger(),
		foods:  []types.FoodRecord{},
		faults: make(map[string][]int),
		logs:   make([]RequestLog, 0),
	}
	s.Seed(config.Foods)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(s.injectFaults)
	r.Route("/foods", func(r chi.Router) {
		r.Get("/", s.listFoods)
		r.Post("/", s.createFood)
		r.Get("/{id}", s.getFood)
		r.Put("/{id}", s.updateFood)
		r.Delete("/{id}", s.deleteFood)
	})
	return r
}

// Handler exposes the router, e.g. for httptest.NewServer
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.addr = ln.Addr().String()

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("mock server stopped")
		}
	}()

	s.logger.Info().Str("addr", s.addr).Int("foods", len(s.Foods())).Msg("mock server listening")
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server base URL
func (s *Server) GetAddress() string {
	if s.addr != "" {
		return "http://" + s.addr
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// Seed replaces the catalog. Records without an id get one.
func (s *Server) Seed(records []types.FoodRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foods = make([]types.FoodRecord, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.foods = append(s.foods, r)
	}
}

// Foods returns a copy of the current catalog
func (s *Server) Foods() []types.FoodRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	foods := make([]types.FoodRecord, len(s.foods))
	copy(foods, s.foods)
	return foods
}

// FailNext makes the next request with the given method answer with status
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	method = strings.ToUpper(method)
	s.faults[method] = append(s.faults[method], status)
}

func (s *Server) popFault(method string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.faults[method]
	if len(queue) == 0 {
		return 0, false
	}
	s.faults[method] = queue[1:]
	return queue[0], true
}

func (s *Server) listFoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Foods())
}

func (s *Server) getFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		writeJSON(w, http.StatusOK, s.foods[i])
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (s *Server) createFood(w http.ResponseWriter, r *http.Request) {
	var food types.FoodRecord
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	if food.ID == "" || s.indexOf(food.ID) >= 0 {
		food.ID = uuid.NewString()
	}
	s.foods = append(s.foods, food)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, food)
}

func (s *Server) updateFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var food types.FoodRecord
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	food.ID = id

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.foods[i] = food
	}
	s.mu.Unlock()

	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.foods = append(s.foods[:i:i], s.foods[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// indexOf must be called with s.mu held
func (s *Server) indexOf(id string) int {
	for i := range s.foods {
		if s.foods[i].ID == id {
			return i
		}
	}
	return -1
}

// injectFaults answers with a queued status instead of running the handler
func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.popFault(r.Method); ok {
			writeJSON(w, status, map[string]string{"error": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests applies the configured delay and records each request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		bodyBytes, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			s.logger.Warn().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("failed to read request body")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
			return
		}
		r.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))

		if s.config.Delay > 0 {
			time.Sleep(time.Duration(s.config.Delay) * time.Millisecond)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			Body:      string(bodyBytes),
			Status:    rec.status,
			Duration:  time.Since(start),
		}
		s.logRequest(entry)

		if s.config.Logging {
			s.logger.Info().Str("method", entry.Method).Str("path", entry.Path).Int("status", entry.Status).Dur("duration", entry.Duration).Msg("request")
		}
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	// Keep only last 1000 logs
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	// Return a copy
	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// CountRequests returns how many logged requests match method and path
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, l := range s.GetLogs() {
		if l.Method == method && l.Path == path {
			n++
		}
	}
	return n
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
