package models

import (
	"time"
)

// AudioChunk represents one window of raw audio captured from a stream.
// Data holds mono 16-bit signed PCM samples; SampleRate is carried per
// chunk because the source decides it, not the pipeline.
type AudioChunk struct {
	Data       []byte        `json:"-"`
	Timestamp  time.Time     `json:"timestamp"`
	Duration   time.Duration `json:"duration"`
	SampleRate int           `json:"sample_rate"`
}

// SampleCount returns the number of 16-bit samples in the chunk.
func (c AudioChunk) SampleCount() int {
	return len(c.Data) / 2
}

// TranscriptSegment represents a recognized segment of speech.
type TranscriptSegment struct {
	Text       string    `json:"text"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Confidence float64   `json:"confidence"`
	IsFinal    bool      `json:"is_final"`
}

// ParalinguisticFeatures holds the acoustic stress indicators extracted
// from a single chunk. A zero value means "no stress signal", which is
// the safe default when extraction is unavailable.
type ParalinguisticFeatures struct {
	PitchMean     float64 `json:"pitch_mean"`
	PitchVariance float64 `json:"pitch_variance"`
	IntensityMean float64 `json:"intensity_mean"`
	SpeakingRate  float64 `json:"speaking_rate"`
	Jitter        float64 `json:"jitter"`
	Shimmer       float64 `json:"shimmer"`
}

// IntentLabel is the classified narrative category of an utterance.
type IntentLabel string

const (
	IntentGreeting  IntentLabel = "GREETING"
	IntentAuthority IntentLabel = "AUTHORITY"
	IntentFear      IntentLabel = "FEAR"
	IntentUrgency   IntentLabel = "URGENCY"
	IntentPayment   IntentLabel = "PAYMENT"
	IntentThreat    IntentLabel = "THREAT"
	IntentNeutral   IntentLabel = "NEUTRAL"
	IntentSilence   IntentLabel = "SILENCE"
	IntentUnknown   IntentLabel = "UNKNOWN"
	IntentError     IntentLabel = "ERROR"
)

// SemanticIntent is the classification result for one transcript.
type SemanticIntent struct {
	Label      IntentLabel `json:"label"`
	Confidence float64     `json:"confidence"`
	Keywords   []string    `json:"keywords_detected,omitempty"`
}

// RiskLevel is the discrete tier derived from the numeric risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskScore is a point-in-time fraud assessment.
type RiskScore struct {
	Score          float64   `json:"score"`
	Level          RiskLevel `json:"level"`
	TriggerFactors []string  `json:"trigger_factors,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Phase is a position within the canonical scam-script progression.
type Phase string

const (
	PhaseStart         Phase = "START"
	PhaseGreeting      Phase = "GREETING"
	PhaseAuthority     Phase = "AUTHORITY"
	PhaseFear          Phase = "FEAR"
	PhaseUrgency       Phase = "URGENCY"
	PhaseActionRequest Phase = "ACTION_REQUEST"
	PhaseEnd           Phase = "END"
)

// Phases lists the call phases in strict forward order. The sequencer
// only ever promotes a call to a higher index in this list.
var Phases = []Phase{
	PhaseStart,
	PhaseGreeting,
	PhaseAuthority,
	PhaseFear,
	PhaseUrgency,
	PhaseActionRequest,
	PhaseEnd,
}

// PhaseIndex returns the position of a phase in the canonical order,
// or -1 when the phase is unknown.
func PhaseIndex(p Phase) int {
	for i, phase := range Phases {
		if phase == p {
			return i
		}
	}
	return -1
}

// CallState aggregates the state of one call. It is created once per
// call and mutated only by the pipeline orchestrator and the components
// it invokes synchronously.
type CallState struct {
	CallID            string              `json:"call_id"`
	CurrentPhase      Phase               `json:"current_phase"`
	TranscriptHistory []TranscriptSegment `json:"transcript_history"`
	RiskHistory       []RiskScore         `json:"risk_history"`
	IsActive          bool                `json:"is_active"`
}

// NewCallState creates the state for a fresh call.
func NewCallState(callID string) *CallState {
	return &CallState{
		CallID:       callID,
		CurrentPhase: PhaseStart,
		IsActive:     true,
	}
}

// LatestRisk returns the most recent risk assessment, or nil when no
// chunk has been scored yet.
func (s *CallState) LatestRisk() *RiskScore {
	if len(s.RiskHistory) == 0 {
		return nil
	}
	return &s.RiskHistory[len(s.RiskHistory)-1]
}
