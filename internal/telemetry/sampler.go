// Package telemetry produces synthetic readings for monitored regions when no
// live collector feeds the service.
package telemetry

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/downtime-prediction/internal/risk"
)

// Profile describes the baseline operating conditions of a region.
type Profile struct {
	LatencyMS   float64
	PacketLoss  float64
	Temperature float64
	WindSpeed   float64
	Humidity    float64
}

// profiles holds baselines for the regions the stock deployment tracks.
var profiles = map[string]Profile{
	"kenya": {LatencyMS: 180, PacketLoss: 1.5, Temperature: 25, WindSpeed: 6, Humidity: 62},
	"spain": {LatencyMS: 90, PacketLoss: 0.8, Temperature: 21, WindSpeed: 9, Humidity: 55},
	"usa":   {LatencyMS: 70, PacketLoss: 0.5, Temperature: 18, WindSpeed: 11, Humidity: 58},
	"uk":    {LatencyMS: 60, PacketLoss: 0.6, Temperature: 12, WindSpeed: 14, Humidity: 78},
}

var defaultProfile = Profile{LatencyMS: 200, PacketLoss: 2, Temperature: 22, WindSpeed: 8, Humidity: 60}

// Sampler draws readings around per-region baselines with bounded spread.
// Safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSampler creates a Sampler seeded from the current time.
func NewSampler() *Sampler {
	return NewSamplerWithSeed(time.Now().UnixNano())
}

// NewSamplerWithSeed creates a Sampler with a fixed seed, for reproducible runs.
func NewSamplerWithSeed(seed int64) *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(seed))}
}

// Sample produces one set of readings for a region. Unknown regions use a
// generic baseline.
func (s *Sampler) Sample(region string) risk.PredictionInput {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		p = defaultProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return risk.PredictionInput{
		Region:      region,
		LatencyMS:   math.Max(0, p.LatencyMS*(1+s.spread(0.4))),
		PacketLoss:  clamp(p.PacketLoss*(1+s.spread(0.6)), 0, 100),
		Temperature: p.Temperature + s.spread(6),
		WindSpeed:   math.Max(0, p.WindSpeed*(1+s.spread(0.5))),
		Humidity:    clamp(p.Humidity+s.spread(15), 0, 100),
	}
}

// spread returns a uniform value in [-span, span].
func (s *Sampler) spread(span float64) float64 {
	return (s.rnd.Float64()*2 - 1) * span
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
