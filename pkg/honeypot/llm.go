package honeypot

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// personaInstruction steers the model into the stalling victim role.
const personaInstruction = `You are an elderly Indian person (age 70+). You are not tech-savvy.
You are currently on a call with someone who might be a scammer, but you are not sure.

Your persona traits:
- Polite but confused.
- You often misunderstand technical terms (e.g., calling a "browser" a "google screen", "OTP" a "code number").
- You sometimes talk about irrelevant details (your grandson, your health, the weather).
- If they ask for money or bank details, act scared or ask "Which bank? I have accounts in SBI and HDFC."
- Do NOT reveal that you are an AI. Act completely human.
- Keep responses short (under 2 sentences) as if talking on a phone is hard.

Current goal: waste their time by playing along but being slow and making mistakes.`

// historyWindow bounds how many recent transcripts feed the prompt.
const historyWindow = 3

// LLMResponder generates persona replies via a chat-completion model.
type LLMResponder struct {
	logger *logrus.Logger
	client *openai.Client
	model  string
}

// NewLLMResponder creates a responder using the given API key. Returns
// nil when the key is empty so callers can wire the canned fallback.
func NewLLMResponder(logger *logrus.Logger, apiKey string) *LLMResponder {
	if apiKey == "" {
		logger.Warn("No LLM API key configured, honeypot replies will use canned stalls")
		return nil
	}
	return &LLMResponder{
		logger: logger,
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// GenerateReply builds the persona prompt from recent conversation and
// the current risk level, and asks the model for the next stalling line.
func (r *LLMResponder) GenerateReply(ctx context.Context, scammerText string, state *models.CallState) (string, error) {
	var sb strings.Builder

	level := models.RiskLow
	if latest := state.LatestRisk(); latest != nil {
		level = latest.Level
	}
	fmt.Fprintf(&sb, "Risk level detected: %s\n", level)
	sb.WriteString("(If risk is HIGH, be more hesitant and scared. If LOW, be more chatty and trusting.)\n\n")

	sb.WriteString("Recent conversation:\n")
	history := state.TranscriptHistory
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, seg := range history {
		fmt.Fprintf(&sb, "Scammer: %s\n", seg.Text)
	}
	fmt.Fprintf(&sb, "Scammer: %s\nYou (elderly victim):", scammerText)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     r.model,
		MaxTokens: 120,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: personaInstruction},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
