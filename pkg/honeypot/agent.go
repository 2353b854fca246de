package honeypot

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// DefaultPersona is the cover identity the counter-agent plays.
const DefaultPersona = "Vulnerable Elderly Person"

// fallbackReply is spoken when no reply generator is configured or
// generation fails; stalling still works without an LLM behind it.
const fallbackReply = "Oh dear, I'm not very good with computers... can you say that again slower?"

// ReplyGenerator produces the counter-agent's stalling replies. Reply
// content is an external concern; the agent only decides activation.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, scammerText string, state *models.CallState) (string, error)
}

// Agent is the deceptive counter-agent. Its activation latch is one-way:
// once tripped for a call it stays set until the call ends.
type Agent struct {
	logger    *logrus.Logger
	persona   string
	generator ReplyGenerator
	active    bool
}

// NewAgent creates an inactive agent. generator may be nil, in which
// case replies fall back to a canned stalling line.
func NewAgent(logger *logrus.Logger, generator ReplyGenerator) *Agent {
	return &Agent{
		logger:    logger,
		persona:   DefaultPersona,
		generator: generator,
	}
}

// IsActive reports whether the agent has taken over the call.
func (a *Agent) IsActive() bool {
	return a.active
}

// Activate trips the latch and marks the call as under counter-agent
// control. It is idempotent: repeated triggers are no-ops.
func (a *Agent) Activate(state *models.CallState) {
	if a.active {
		return
	}
	a.active = true

	a.logger.WithFields(logrus.Fields{
		"call_id": state.CallID,
		"persona": a.persona,
	}).Warn("Honeypot agent activated, taking control of call")
}

// GenerateReply produces a stalling reply for the scammer's latest
// utterance. It returns an empty string while the agent is inactive.
func (a *Agent) GenerateReply(ctx context.Context, scammerText string, state *models.CallState) string {
	if !a.active {
		return ""
	}
	if a.generator == nil {
		return fallbackReply
	}

	reply, err := a.generator.GenerateReply(ctx, scammerText, state)
	if err != nil || reply == "" {
		a.logger.WithError(err).Warn("Reply generation failed, using canned stall")
		return fallbackReply
	}
	return reply
}
