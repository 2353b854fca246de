package scorer

import (
	"fmt"
	"time"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/sequencer"
)

// Fixed score thresholds mapping the clamped score to a risk tier.
const (
	ThresholdMedium   = 0.4
	ThresholdHigh     = 0.7
	ThresholdCritical = 0.9
)

// Fixed contribution weights; these are hand-tuned, not learned.
const (
	sequenceWeight     = 0.4
	paymentBoost       = 0.5
	riskyIntentBoost   = 0.2
	stressIncrement    = 0.1
	deepScriptProgress = 0.6
)

// Stress thresholds, in the units produced by the paralinguistic analyzer.
const (
	pitchVarianceStress = 0.5
	jitterStress        = 0.05
	speakingRateStress  = 4.0
)

// riskyIntents add a flat contribution when they label the latest chunk.
var riskyIntents = map[models.IntentLabel]bool{
	models.IntentThreat:    true,
	models.IntentUrgency:   true,
	models.IntentFear:      true,
	models.IntentAuthority: true,
}

// Scorer fuses scam-script progress, the latest intent, and vocal stress
// into a normalized fraud score. It is pure: call state is read-only
// here and every output depends only on the three inputs.
type Scorer struct{}

// New creates a fraud risk scorer.
func New() *Scorer {
	return &Scorer{}
}

// CalculateScore computes the risk assessment for the latest chunk.
func (s *Scorer) CalculateScore(state *models.CallState, features models.ParalinguisticFeatures, intent models.SemanticIntent) models.RiskScore {
	score := 0.0
	var triggers []string

	progress := sequencer.Progress(state.CurrentPhase)
	score += progress * sequenceWeight
	if progress > deepScriptProgress {
		triggers = append(triggers, fmt.Sprintf("Deep in Scam Script (%s)", state.CurrentPhase))
	}

	switch {
	case intent.Label == models.IntentPayment:
		score += paymentBoost
		triggers = append(triggers, "Payment Demand")
	case riskyIntents[intent.Label]:
		score += riskyIntentBoost
		triggers = append(triggers, fmt.Sprintf("High Risk Intent: %s", intent.Label))
	}

	stress := 0.0
	if features.PitchVariance > pitchVarianceStress {
		stress += stressIncrement
	}
	if features.Jitter > jitterStress {
		stress += stressIncrement
	}
	if features.SpeakingRate > speakingRateStress {
		stress += stressIncrement
	}
	score += stress
	if stress > 0 {
		triggers = append(triggers, "Vocal Stress/Urgency Detected")
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return models.RiskScore{
		Score:          score,
		Level:          LevelFor(score),
		TriggerFactors: triggers,
		Timestamp:      time.Now(),
	}
}

// LevelFor maps a clamped score to its discrete risk tier.
func LevelFor(score float64) models.RiskLevel {
	switch {
	case score >= ThresholdCritical:
		return models.RiskCritical
	case score >= ThresholdHigh:
		return models.RiskHigh
	case score >= ThresholdMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
