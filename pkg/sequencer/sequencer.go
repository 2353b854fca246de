package sequencer

import (
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// intentPhases maps a detected intent to the scam-script phase it
// represents. Intents without an entry never cause a transition.
var intentPhases = map[models.IntentLabel]models.Phase{
	models.IntentGreeting:  models.PhaseGreeting,
	models.IntentAuthority: models.PhaseAuthority,
	models.IntentFear:      models.PhaseFear,
	models.IntentUrgency:   models.PhaseUrgency,
	models.IntentPayment:   models.PhaseActionRequest,
	models.IntentThreat:    models.PhaseFear,
}

// Sequencer tracks how far a call has progressed along the canonical
// scam script. It is a monotonic ratchet: the phase is only ever
// promoted to a strictly later index and never regresses within a call,
// matching the observation that scam scripts escalate rather than retreat.
type Sequencer struct {
	logger *logrus.Logger
}

// New creates a behavioral sequencer.
func New(logger *logrus.Logger) *Sequencer {
	return &Sequencer{logger: logger}
}

// UpdateState promotes the call phase if the detected intent maps to a
// later phase, and returns the (possibly unchanged) current phase.
func (s *Sequencer) UpdateState(state *models.CallState, intent models.SemanticIntent) models.Phase {
	candidate, ok := intentPhases[intent.Label]
	if !ok {
		return state.CurrentPhase
	}

	oldIdx := models.PhaseIndex(state.CurrentPhase)
	newIdx := models.PhaseIndex(candidate)
	if oldIdx < 0 || newIdx <= oldIdx {
		return state.CurrentPhase
	}

	s.logger.WithFields(logrus.Fields{
		"call_id": state.CallID,
		"from":    state.CurrentPhase,
		"to":      candidate,
		"intent":  intent.Label,
	}).Info("Call phase escalated")

	state.CurrentPhase = candidate
	return candidate
}

// Progress returns how deep into the scam script the call is, from 0 at
// START to 1 at END. Unknown phases report 0.
func Progress(phase models.Phase) float64 {
	idx := models.PhaseIndex(phase)
	if idx < 0 {
		return 0
	}
	return float64(idx) / float64(len(models.Phases)-1)
}
