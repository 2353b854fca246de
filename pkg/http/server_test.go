package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/semantic"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	logger := testLogger()
	analyzer := NewTextAnalyzer(logger, semantic.NewAnalyzer(logger, nil), nil)
	return NewServer(logger, 0, apiKey, analyzer, nil)
}

func postAnalyze(t *testing.T, s *Server, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) AnalyzeResult {
	t.Helper()
	var result AnalyzeResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	return result
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "online", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyzeRequiresAPIKey(t *testing.T) {
	s := newTestServer(t, "secret-key")

	w := postAnalyze(t, s, "", analyzeRequest{Text: "hello there friend"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postAnalyze(t, s, "wrong", analyzeRequest{Text: "hello there friend"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postAnalyze(t, s, "secret-key", analyzeRequest{Text: "hello there friend"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyzeRejectsNonPost(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	s := newTestServer(t, "")

	w := postAnalyze(t, s, "", analyzeRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeDefaultsSessionID(t *testing.T) {
	s := newTestServer(t, "")

	w := postAnalyze(t, s, "", analyzeRequest{Text: "hello there friend"})
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeResult(t, w)
	assert.Equal(t, "default-session", result.SessionID)
	assert.Equal(t, 1, result.MessagesCount)
}

func TestAnalyzeConversationEscalates(t *testing.T) {
	s := newTestServer(t, "")
	session := "scam-42"

	w := postAnalyze(t, s, "", analyzeRequest{SessionID: session, Text: "Hello, how are you today?"})
	result := decodeResult(t, w)
	assert.Equal(t, models.IntentGreeting, result.Intent.Label)
	assert.Equal(t, models.PhaseGreeting, result.Phase)
	assert.False(t, result.ScamDetected)
	assert.Empty(t, result.Reply)

	w = postAnalyze(t, s, "", analyzeRequest{SessionID: session, Text: "I am calling from the police station about your case"})
	result = decodeResult(t, w)
	assert.Equal(t, models.IntentAuthority, result.Intent.Label)
	assert.Equal(t, models.PhaseAuthority, result.Phase)
	assert.False(t, result.ScamDetected)

	w = postAnalyze(t, s, "", analyzeRequest{SessionID: session, Text: "Go and buy a gift card of 5000 rupees as penalty"})
	result = decodeResult(t, w)
	assert.Equal(t, models.IntentPayment, result.Intent.Label)
	assert.Equal(t, models.PhaseActionRequest, result.Phase)
	assert.Equal(t, models.RiskHigh, result.Risk.Level)
	assert.True(t, result.ScamDetected)
	assert.NotEmpty(t, result.Reply, "an escalated session answers in persona")
	assert.Equal(t, 3, result.MessagesCount)
	assert.Contains(t, result.Intelligence.SuspiciousKeywords, "gift card")
	assert.Contains(t, result.Intelligence.SuspiciousKeywords, "penalty")
}

func TestAnalyzeSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t, "")

	w := postAnalyze(t, s, "", analyzeRequest{SessionID: "a", Text: "Go and buy a gift card of 5000 rupees as penalty"})
	result := decodeResult(t, w)
	assert.True(t, result.ScamDetected)

	w = postAnalyze(t, s, "", analyzeRequest{SessionID: "b", Text: "Hello, how are you today?"})
	result = decodeResult(t, w)
	assert.False(t, result.ScamDetected, "escalation in one session never leaks into another")
	assert.Equal(t, 1, result.MessagesCount)
}

func TestAnalyzeIntelligenceAccumulates(t *testing.T) {
	s := newTestServer(t, "")
	session := "intel-1"

	postAnalyze(t, s, "", analyzeRequest{SessionID: session, Text: "send money to fraudster@paytm today please"})
	w := postAnalyze(t, s, "", analyzeRequest{SessionID: session, Text: "or call 9876543210 for urgent help"})

	result := decodeResult(t, w)
	assert.Equal(t, []string{"fraudster@paytm"}, result.Intelligence.UPIIDs)
	assert.Equal(t, []string{"9876543210"}, result.Intelligence.PhoneNumbers)
	assert.Contains(t, result.Intelligence.SuspiciousKeywords, "urgent")
}
