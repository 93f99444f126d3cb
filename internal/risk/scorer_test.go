package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseProbability(t *testing.T) {
	t.Run("should be zero under calm conditions", func(t *testing.T) {
		in := PredictionInput{
			Region:      "kenya",
			LatencyMS:   0,
			PacketLoss:  0,
			Temperature: 25,
			WindSpeed:   5,
			Humidity:    60,
		}

		assert.Zero(t, BaseProbability(in))
	})

	t.Run("should weight latency up to 0.3 at 1000ms", func(t *testing.T) {
		in := PredictionInput{Region: "r", LatencyMS: 500, Temperature: 20}

		// 500/1000 * 0.3 = 0.15
		assert.InDelta(t, 0.15, BaseProbability(in), 1e-9)

		in.LatencyMS = 1000
		assert.InDelta(t, 0.3, BaseProbability(in), 1e-9)
	})

	t.Run("should weight packet loss up to 0.3 at 100 percent", func(t *testing.T) {
		in := PredictionInput{Region: "r", PacketLoss: 10, Temperature: 20}

		// 10/100 * 0.3 = 0.03
		assert.InDelta(t, 0.03, BaseProbability(in), 1e-9)

		in.PacketLoss = 100
		assert.InDelta(t, 0.3, BaseProbability(in), 1e-9)
	})

	t.Run("should apply flat penalties only beyond the environmental limits", func(t *testing.T) {
		base := PredictionInput{Region: "r", Temperature: 20}

		hot := base
		hot.Temperature = 35
		assert.Zero(t, BaseProbability(hot), "temperature of exactly 35 carries no penalty")
		hot.Temperature = 35.1
		assert.InDelta(t, 0.15, BaseProbability(hot), 1e-9)

		cold := base
		cold.Temperature = 0
		assert.Zero(t, BaseProbability(cold), "temperature of exactly 0 carries no penalty")
		cold.Temperature = -0.1
		assert.InDelta(t, 0.15, BaseProbability(cold), 1e-9)

		humid := base
		humid.Humidity = 90
		assert.Zero(t, BaseProbability(humid), "humidity of exactly 90 carries no penalty")
		humid.Humidity = 90.1
		assert.InDelta(t, 0.1, BaseProbability(humid), 1e-9)

		windy := base
		windy.WindSpeed = 20
		assert.Zero(t, BaseProbability(windy), "wind speed of exactly 20 carries no penalty")
		windy.WindSpeed = 20.1
		assert.InDelta(t, 0.15, BaseProbability(windy), 1e-9)
	})

	t.Run("should saturate at one under worst-case readings", func(t *testing.T) {
		in := PredictionInput{
			Region:      "r",
			LatencyMS:   1000,
			PacketLoss:  100,
			Temperature: 40,
			WindSpeed:   25,
			Humidity:    95,
		}

		// 0.3 + 0.3 + 0.15 + 0.1 + 0.15 = 1.0
		assert.InDelta(t, 1.0, BaseProbability(in), 1e-9)
	})

	t.Run("should clamp out-of-range readings instead of failing", func(t *testing.T) {
		in := PredictionInput{Region: "r", LatencyMS: 50000, PacketLoss: 400, Temperature: 20}

		assert.InDelta(t, 1.0, BaseProbability(in), 1e-9)

		in = PredictionInput{Region: "r", LatencyMS: -2000, Temperature: 20}
		assert.Zero(t, BaseProbability(in))
	})
}

func TestScore(t *testing.T) {
	t.Run("should stay within unit range and two decimals for any input", func(t *testing.T) {
		scorer := NewScorer()
		rnd := rand.New(rand.NewSource(1))

		for i := 0; i < 200; i++ {
			in := PredictionInput{
				Region:      "sweep",
				LatencyMS:   rnd.Float64() * 3000,
				PacketLoss:  rnd.Float64() * 150,
				Temperature: rnd.Float64()*120 - 60,
				WindSpeed:   rnd.Float64() * 40,
				Humidity:    rnd.Float64() * 100,
			}

			res := scorer.Score(in)
			p := res.DowntimeProbability

			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			// Two decimal places: p*100 must be whole.
			assert.InDelta(t, math.Round(p*100), p*100, 1e-9)
			assert.Equal(t, p > res.Threshold, res.AlertTriggered)
		}
	})

	t.Run("should be deterministic with a nil jitter source", func(t *testing.T) {
		scorer := NewScorerWithJitter(nil)
		in := PredictionInput{Region: "r", LatencyMS: 500, PacketLoss: 10, Temperature: 20}

		first := scorer.Score(in)
		second := scorer.Score(in)

		// 0.15 + 0.03 = 0.18
		assert.InDelta(t, 0.18, first.DowntimeProbability, 1e-9)
		assert.Equal(t, first, second)
	})

	t.Run("should keep default jitter within a tenth of a calm base", func(t *testing.T) {
		calm := PredictionInput{Region: "kenya", Temperature: 25, WindSpeed: 5, Humidity: 60}

		assert.Zero(t, NewScorerWithJitter(nil).Score(calm).DowntimeProbability)

		scorer := NewScorer()
		for i := 0; i < 100; i++ {
			p := scorer.Score(calm).DowntimeProbability
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 0.1)
		}
	})

	t.Run("should keep a saturated prediction above 0.9 and alerting", func(t *testing.T) {
		scorer := NewScorer()
		worst := PredictionInput{
			Region:      "r",
			LatencyMS:   1000,
			PacketLoss:  100,
			Temperature: 40,
			WindSpeed:   25,
			Humidity:    95,
		}

		for i := 0; i < 100; i++ {
			res := scorer.Score(worst)
			assert.GreaterOrEqual(t, res.DowntimeProbability, 0.9)
			assert.LessOrEqual(t, res.DowntimeProbability, 1.0)
			assert.True(t, res.AlertTriggered)
		}
	})

	t.Run("should apply injected jitter and clamp the result", func(t *testing.T) {
		up := NewScorerWithJitter(func() float64 { return 1.0 })
		down := NewScorerWithJitter(func() float64 { return -1.0 })
		calm := PredictionInput{Region: "r", Temperature: 20}

		assert.InDelta(t, 1.0, up.Score(calm).DowntimeProbability, 1e-9)
		assert.Zero(t, down.Score(calm).DowntimeProbability)
	})

	t.Run("should not alert when probability equals the threshold", func(t *testing.T) {
		scorer := NewScorerWithJitter(nil)
		// 0.3 + 0.3 + 0.1 = 0.7, right on the threshold.
		in := PredictionInput{Region: "r", LatencyMS: 1000, PacketLoss: 100, Temperature: 20, Humidity: 95}

		res := scorer.Score(in)

		assert.InDelta(t, 0.7, res.DowntimeProbability, 1e-9)
		assert.False(t, res.AlertTriggered)
	})

	t.Run("should alert strictly above the threshold", func(t *testing.T) {
		scorer := NewScorerWithJitter(nil)
		// 0.3 + 0.3 + 0.1 + 0.15 = 0.85
		in := PredictionInput{Region: "r", LatencyMS: 1000, PacketLoss: 100, Temperature: 20, Humidity: 95, WindSpeed: 25}

		res := scorer.Score(in)

		assert.InDelta(t, 0.85, res.DowntimeProbability, 1e-9)
		assert.True(t, res.AlertTriggered)
	})

	t.Run("should report the same static factors for any input", func(t *testing.T) {
		scorer := NewScorer()
		calm := PredictionInput{Region: "a", Temperature: 20}
		harsh := PredictionInput{Region: "b", LatencyMS: 900, PacketLoss: 80, Temperature: 45, WindSpeed: 30, Humidity: 99}

		for _, res := range []PredictionResult{scorer.Score(calm), scorer.Score(harsh)} {
			assert.Len(t, res.ContributingFactors, 3)
			assert.Equal(t, "Network Latency", res.ContributingFactors[0].Name)
			assert.Equal(t, "Packet Loss", res.ContributingFactors[1].Name)
			assert.Equal(t, "Environmental Conditions", res.ContributingFactors[2].Name)

			sum := 0.0
			for _, f := range res.ContributingFactors {
				sum += f.Impact
			}
			// 0.35 + 0.30 + 0.25 = 0.90, independent of the readings.
			assert.InDelta(t, 0.90, sum, 1e-9)
		}
	})

	t.Run("should mark local results and carry a recommendation", func(t *testing.T) {
		res := NewScorer().Score(PredictionInput{Region: "r", Temperature: 20})

		assert.Equal(t, SourceLocal, res.Source)
		assert.NotEmpty(t, res.Recommendation)
		assert.InDelta(t, AlertThreshold, res.Threshold, 1e-9)
	})
}
