package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/metrics"
)

// Server is the host service layer: health, metrics, text analysis and
// the live event stream. The detection core stays unaware of it.
type Server struct {
	logger     *logrus.Logger
	httpServer *http.Server
	mux        *http.ServeMux
	hub        *EventHub
	analyzer   *TextAnalyzer
	apiKey     string
	startTime  time.Time
}

// NewServer creates the HTTP server. apiKey guards the analyze endpoint;
// an empty key disables the check.
func NewServer(logger *logrus.Logger, port int, apiKey string, analyzer *TextAnalyzer, hub *EventHub) *Server {
	s := &Server{
		logger:    logger,
		mux:       http.NewServeMux(),
		hub:       hub,
		analyzer:  analyzer,
		apiKey:    apiKey,
		startTime: time.Now(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	if hub != nil {
		s.mux.HandleFunc("/ws/live", hub.ServeWS)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "online",
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
	})
}

// analyzeRequest is the inbound message payload.
type analyzeRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		metrics.RecordAnalyzeRequest("method_not_allowed")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST required"})
		return
	}

	if s.apiKey != "" && r.Header.Get("x-api-key") != s.apiKey {
		metrics.RecordAnalyzeRequest("unauthorized")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or invalid API key"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		metrics.RecordAnalyzeRequest("bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default-session"
	}

	result := s.analyzer.Analyze(r.Context(), req.SessionID, req.Text)
	metrics.RecordAnalyzeRequest("ok")
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
