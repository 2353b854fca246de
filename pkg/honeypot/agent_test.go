package honeypot

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) GenerateReply(context.Context, string, *models.CallState) (string, error) {
	g.calls++
	return g.reply, g.err
}

func TestAgentStartsInactive(t *testing.T) {
	agent := NewAgent(testLogger(), nil)
	assert.False(t, agent.IsActive())
}

func TestAgentSilentWhileInactive(t *testing.T) {
	gen := &stubGenerator{reply: "who is this?"}
	agent := NewAgent(testLogger(), gen)

	reply := agent.GenerateReply(context.Background(), "pay now", models.NewCallState("c1"))
	assert.Empty(t, reply)
	assert.Zero(t, gen.calls, "an inactive agent never consults the generator")
}

func TestAgentActivationIsIdempotent(t *testing.T) {
	agent := NewAgent(testLogger(), nil)
	state := models.NewCallState("c1")

	agent.Activate(state)
	assert.True(t, agent.IsActive())

	agent.Activate(state)
	agent.Activate(state)
	assert.True(t, agent.IsActive())
}

func TestAgentUsesGeneratorReply(t *testing.T) {
	gen := &stubGenerator{reply: "Oh, which bank did you say beta?"}
	agent := NewAgent(testLogger(), gen)
	state := models.NewCallState("c1")

	agent.Activate(state)
	reply := agent.GenerateReply(context.Background(), "this is SBI security", state)
	assert.Equal(t, "Oh, which bank did you say beta?", reply)
	assert.Equal(t, 1, gen.calls)
}

func TestAgentFallsBackWithoutGenerator(t *testing.T) {
	agent := NewAgent(testLogger(), nil)
	state := models.NewCallState("c1")

	agent.Activate(state)
	reply := agent.GenerateReply(context.Background(), "share the OTP", state)
	assert.Equal(t, fallbackReply, reply)
}

func TestAgentFallsBackOnGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("rate limited")}
	agent := NewAgent(testLogger(), gen)
	state := models.NewCallState("c1")

	agent.Activate(state)
	reply := agent.GenerateReply(context.Background(), "share the OTP", state)
	assert.Equal(t, fallbackReply, reply)
}

func TestAgentFallsBackOnEmptyReply(t *testing.T) {
	gen := &stubGenerator{reply: ""}
	agent := NewAgent(testLogger(), gen)
	state := models.NewCallState("c1")

	agent.Activate(state)
	reply := agent.GenerateReply(context.Background(), "hello", state)
	assert.Equal(t, fallbackReply, reply)
}

func TestNewLLMResponderRequiresKey(t *testing.T) {
	assert.Nil(t, NewLLMResponder(testLogger(), ""))
	assert.NotNil(t, NewLLMResponder(testLogger(), "sk-test"))
}
