package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/asr"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/audio"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/honeypot"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/metrics"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/paralinguistic"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/scorer"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/semantic"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/sequencer"
)

// Config selects the pipeline variants at construction time. All
// capability probing happens here, never in the per-chunk path.
type Config struct {
	// UseMockRecognizer forces the mock ASR variant.
	UseMockRecognizer bool

	// Language is "en", "hi", or "mix" for dual-language fusion.
	Language string

	// ModelDir overrides the offline model directory.
	ModelDir string

	// ChunkDuration overrides the analysis window (default 1s).
	ChunkDuration time.Duration

	// DisableParalinguistics selects the zero-feature analyzer.
	DisableParalinguistics bool

	// OpenAIAPIKey enables the embedding encoder and the honeypot's
	// LLM replies. When empty both degrade to their fallbacks.
	OpenAIAPIKey string
}

// ChunkEvent describes the outcome of processing one audio chunk. It is
// delivered to observers after the chunk is fully processed.
type ChunkEvent struct {
	CallID      string                     `json:"call_id"`
	Transcript  *models.TranscriptSegment  `json:"transcript,omitempty"`
	Intent      *models.SemanticIntent     `json:"intent,omitempty"`
	Risk        *models.RiskScore          `json:"risk,omitempty"`
	Phase       models.Phase               `json:"phase"`
	AgentActive bool                       `json:"agent_active"`
	AgentReply  string                     `json:"agent_reply,omitempty"`
}

// ChunkObserver receives chunk events for telemetry and streaming.
type ChunkObserver func(ChunkEvent)

// DetectionPipeline drives chunks through recognizer, paralinguistic
// analyzer, semantic analyzer, sequencer, scorer and escalation gate in
// fixed order. It exclusively owns the CallState for the call's
// lifetime and performs all mutations to it sequentially.
type DetectionPipeline struct {
	logger *logrus.Logger

	chunker    *audio.Chunker
	recognizer asr.Recognizer
	para       paralinguistic.Analyzer
	sem        *semantic.Analyzer
	seq        *sequencer.Sequencer
	score      *scorer.Scorer
	agent      *honeypot.Agent

	state     *models.CallState
	observers []ChunkObserver
}

// New wires a pipeline from explicitly constructed components. Hosts
// that need custom capabilities (tests, the HTTP layer) use this.
func New(logger *logrus.Logger, chunker *audio.Chunker, rec asr.Recognizer, para paralinguistic.Analyzer, sem *semantic.Analyzer, agent *honeypot.Agent) *DetectionPipeline {
	return &DetectionPipeline{
		logger:     logger,
		chunker:    chunker,
		recognizer: rec,
		para:       para,
		sem:        sem,
		seq:        sequencer.New(logger),
		score:      scorer.New(),
		agent:      agent,
		state:      models.NewCallState(uuid.NewString()),
	}
}

// NewFromConfig builds the default component set for cfg. Missing
// offline models degrade to the mock recognizer; a missing API key
// degrades the semantic analyzer to keyword matching. Impossible
// configurations (unknown language) fail construction.
func NewFromConfig(logger *logrus.Logger, cfg Config) (*DetectionPipeline, error) {
	language := cfg.Language
	if language == "" {
		language = "en"
	}

	rec, err := asr.New(logger, asr.Config{
		UseMock:  cfg.UseMockRecognizer,
		Language: language,
		ModelDir: cfg.ModelDir,
	})
	if err != nil {
		return nil, err
	}

	var para paralinguistic.Analyzer
	if cfg.DisableParalinguistics {
		para = paralinguistic.NullAnalyzer{}
	} else {
		para = paralinguistic.NewExtractor(logger)
	}

	apiKey := cfg.OpenAIAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	var encoder semantic.Encoder
	if apiKey != "" {
		encoder = semantic.NewOpenAIEncoder(apiKey)
	}
	sem := semantic.NewAnalyzer(logger, encoder)

	var generator honeypot.ReplyGenerator
	if responder := honeypot.NewLLMResponder(logger, apiKey); responder != nil {
		generator = responder
	}
	agent := honeypot.NewAgent(logger, generator)

	chunker := audio.NewChunker(logger, cfg.ChunkDuration)

	p := New(logger, chunker, rec, para, sem, agent)
	logger.WithFields(logrus.Fields{
		"call_id":    p.state.CallID,
		"recognizer": rec.Name(),
		"language":   language,
	}).Info("Detection pipeline initialized")
	return p, nil
}

// AddObserver registers a chunk event observer. Observers are invoked
// synchronously after each chunk, on the pipeline goroutine.
func (p *DetectionPipeline) AddObserver(obs ChunkObserver) {
	p.observers = append(p.observers, obs)
}

// State exposes the call state for host logging and telemetry. The
// returned pointer must be treated as read-only.
func (p *DetectionPipeline) State() *models.CallState {
	return p.state
}

// Phase returns the call's current scam-script phase.
func (p *DetectionPipeline) Phase() models.Phase {
	return p.state.CurrentPhase
}

// RiskHistory returns the append-only risk score log.
func (p *DetectionPipeline) RiskHistory() []models.RiskScore {
	return p.state.RiskHistory
}

// Escalated reports whether the honeypot agent has taken over.
func (p *DetectionPipeline) Escalated() bool {
	return p.agent.IsActive()
}

// ProcessFileSimulation runs the full pipeline over a WAV file to
// completion, paced at the file's real-time speed.
func (p *DetectionPipeline) ProcessFileSimulation(ctx context.Context, path string) error {
	chunks, err := p.chunker.StreamFile(ctx, path)
	if err != nil {
		return err
	}
	p.run(ctx, chunks)
	return nil
}

// ProcessMicrophoneSimulation runs the pipeline over live capture until
// ctx is cancelled or the device fails.
func (p *DetectionPipeline) ProcessMicrophoneSimulation(ctx context.Context) error {
	chunks, err := p.chunker.StreamMicrophone(ctx)
	if err != nil {
		return err
	}
	p.run(ctx, chunks)
	return nil
}

func (p *DetectionPipeline) run(ctx context.Context, chunks <-chan models.AudioChunk) {
	metrics.CallStarted()
	defer metrics.CallEnded()

	for chunk := range chunks {
		p.ProcessChunk(ctx, chunk)
	}

	p.state.IsActive = false
	p.logger.WithFields(logrus.Fields{
		"call_id":     p.state.CallID,
		"final_phase": p.state.CurrentPhase,
		"escalated":   p.agent.IsActive(),
		"assessments": len(p.state.RiskHistory),
	}).Info("Call processing finished")
}

// ProcessChunk runs one audio window through the detection stages in
// fixed order. It always completes, possibly with degraded results, and
// never fails the call on a single bad chunk.
func (p *DetectionPipeline) ProcessChunk(ctx context.Context, chunk models.AudioChunk) ChunkEvent {
	start := time.Now()
	defer func() {
		metrics.RecordChunk(p.state.CallID, time.Since(start))
	}()

	event := ChunkEvent{CallID: p.state.CallID}

	seg, err := p.recognizer.ProcessChunk(ctx, chunk)
	if err != nil {
		p.logger.WithError(err).Warn("Recognizer failed for chunk, treating as silence")
		seg = nil
	}

	// Paralinguistics run regardless of transcript availability.
	features := p.para.Analyze(chunk)

	if seg != nil {
		metrics.RecordTranscript(seg.IsFinal)
		if seg.IsFinal {
			p.state.TranscriptHistory = append(p.state.TranscriptHistory, *seg)
		}

		intent := p.sem.Analyze(ctx, seg.Text)
		p.seq.UpdateState(p.state, intent)

		risk := p.score.CalculateScore(p.state, features, intent)
		p.state.RiskHistory = append(p.state.RiskHistory, risk)
		metrics.RecordRiskLevel(string(risk.Level))

		p.logger.WithFields(logrus.Fields{
			"call_id":    p.state.CallID,
			"transcript": seg.Text,
			"intent":     intent.Label,
			"phase":      p.state.CurrentPhase,
			"score":      risk.Score,
			"level":      risk.Level,
		}).Info("Chunk analyzed")

		if risk.Level == models.RiskHigh || risk.Level == models.RiskCritical {
			if !p.agent.IsActive() {
				p.agent.Activate(p.state)
				metrics.RecordEscalation()
			}
		}

		if p.agent.IsActive() && seg.IsFinal {
			event.AgentReply = p.agent.GenerateReply(ctx, seg.Text, p.state)
		}

		event.Transcript = seg
		event.Intent = &intent
		event.Risk = &risk
	}

	event.Phase = p.state.CurrentPhase
	event.AgentActive = p.agent.IsActive()

	for _, obs := range p.observers {
		obs(event)
	}
	return event
}
