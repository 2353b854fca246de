package http

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/honeypot"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/intel"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/scorer"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/semantic"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/sequencer"
)

// AnalyzeResult is the outcome of analyzing one text message.
type AnalyzeResult struct {
	SessionID     string             `json:"session_id"`
	ScamDetected  bool               `json:"scam_detected"`
	Intent        models.SemanticIntent `json:"intent"`
	Phase         models.Phase       `json:"phase"`
	Risk          models.RiskScore   `json:"risk"`
	Reply         string             `json:"reply,omitempty"`
	Intelligence  intel.Intelligence `json:"extracted_intelligence"`
	MessagesCount int                `json:"total_messages_exchanged"`
}

// textSession carries the detection state of one text conversation.
type textSession struct {
	state     *models.CallState
	agent     *honeypot.Agent
	extractor *intel.Extractor
	lastSeen  time.Time
	mu        sync.Mutex
}

// TextAnalyzer runs the semantic/sequencer/scorer stages over text-only
// sessions, the chat equivalent of the audio pipeline. Paralinguistic
// features are zero for text, so scoring rests on intent and phase.
type TextAnalyzer struct {
	logger    *logrus.Logger
	sem       *semantic.Analyzer
	seq       *sequencer.Sequencer
	score     *scorer.Scorer
	responder honeypot.ReplyGenerator

	mu       sync.Mutex
	sessions map[string]*textSession
}

// NewTextAnalyzer builds the text-analysis service. responder may be nil.
func NewTextAnalyzer(logger *logrus.Logger, sem *semantic.Analyzer, responder honeypot.ReplyGenerator) *TextAnalyzer {
	return &TextAnalyzer{
		logger:    logger,
		sem:       sem,
		seq:       sequencer.New(logger),
		score:     scorer.New(),
		responder: responder,
		sessions:  make(map[string]*textSession),
	}
}

func (t *TextAnalyzer) session(sessionID string) *textSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[sessionID]
	if !ok {
		s = &textSession{
			state:     models.NewCallState(sessionID),
			agent:     honeypot.NewAgent(t.logger, t.responder),
			extractor: intel.NewExtractor(),
		}
		t.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	return s
}

// Analyze processes one scammer message within its session.
func (t *TextAnalyzer) Analyze(ctx context.Context, sessionID, text string) AnalyzeResult {
	s := t.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	segment := models.TranscriptSegment{
		Text:       text,
		StartTime:  now,
		EndTime:    now,
		Confidence: 1.0,
		IsFinal:    true,
	}
	s.state.TranscriptHistory = append(s.state.TranscriptHistory, segment)

	intent := t.sem.Analyze(ctx, text)
	t.seq.UpdateState(s.state, intent)

	risk := t.score.CalculateScore(s.state, models.ParalinguisticFeatures{}, intent)
	s.state.RiskHistory = append(s.state.RiskHistory, risk)

	s.extractor.Ingest(text)

	if risk.Level == models.RiskHigh || risk.Level == models.RiskCritical {
		s.agent.Activate(s.state)
	}

	var reply string
	if s.agent.IsActive() {
		reply = s.agent.GenerateReply(ctx, text, s.state)
	}

	return AnalyzeResult{
		SessionID:     sessionID,
		ScamDetected:  s.agent.IsActive(),
		Intent:        intent,
		Phase:         s.state.CurrentPhase,
		Risk:          risk,
		Reply:         reply,
		Intelligence:  s.extractor.Snapshot(),
		MessagesCount: len(s.state.TranscriptHistory),
	}
}
