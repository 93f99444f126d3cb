package risk

import (
	"math/rand"

	"github.com/i474232898/downtime-prediction/internal/common"
)

// AlertThreshold is the fixed probability above which a prediction raises an alert.
const AlertThreshold = 0.7

// jitterSpan is the half-width of the uniform jitter added to every local score.
const jitterSpan = 0.1

const defaultRecommendation = "Inspect backhaul links and pre-arm backup routes; " +
	"schedule maintenance outside the high-risk window."

// Scorer maps raw readings to a downtime probability. The weighted terms are
// deterministic; a uniform jitter in [-0.1, +0.1] is added on top, so two calls
// with the same input may differ. Tests inject their own jitter source.
type Scorer struct {
	jitter func() float64
}

// NewScorer returns a Scorer drawing jitter from the shared math/rand source,
// which is safe for concurrent use.
func NewScorer() *Scorer {
	return &Scorer{jitter: func() float64 {
		return rand.Float64()*2*jitterSpan - jitterSpan
	}}
}

// NewScorerWithJitter returns a Scorer using the given jitter source.
// A nil source disables jitter entirely, making the Scorer deterministic.
func NewScorerWithJitter(jitter func() float64) *Scorer {
	return &Scorer{jitter: jitter}
}

// BaseProbability is the deterministic portion of the score: latency contributes
// up to 0.3 at 1000ms, packet loss up to 0.3 at 100%, and each adverse
// environmental condition adds a flat penalty. The sum is clamped to [0, 1].
func BaseProbability(in PredictionInput) float64 {
	p := (in.LatencyMS / 1000) * 0.3
	p += (in.PacketLoss / 100) * 0.3
	if in.Temperature > 35 || in.Temperature < 0 {
		p += 0.15
	}
	if in.Humidity > 90 {
		p += 0.1
	}
	if in.WindSpeed > 20 {
		p += 0.15
	}
	return common.Clamp01(p)
}

// Score computes a downtime prediction for the given readings. It never fails:
// out-of-range inputs simply produce out-of-expected-range intermediate values,
// which the clamps absorb.
func (s *Scorer) Score(in PredictionInput) PredictionResult {
	p := BaseProbability(in)
	if s.jitter != nil {
		p = common.Clamp01(p + s.jitter())
	}
	p = common.Round2(p)

	return PredictionResult{
		DowntimeProbability: p,
		Threshold:           AlertThreshold,
		AlertTriggered:      p > AlertThreshold,
		ContributingFactors: contributingFactors(),
		Recommendation:      defaultRecommendation,
		Source:              SourceLocal,
	}
}

// contributingFactors returns the static display weights shown with every local
// prediction. They are presentation metadata, not a decomposition of the
// computed probability, and do not vary with input.
func contributingFactors() []Factor {
	return []Factor{
		{Name: "Network Latency", Impact: 0.35},
		{Name: "Packet Loss", Impact: 0.30},
		{Name: "Environmental Conditions", Impact: 0.25},
	}
}
