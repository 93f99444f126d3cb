package risk

import (
	"time"
)

// Tier represents a coarse relative-risk classification of a city's
// downtime probability, used for display coloring.
type Tier string

const (
	TierLower    Tier = "lower"
	TierModerate Tier = "moderate"
	TierHigher   Tier = "higher"
)

// Source marks where a prediction came from, so callers can tell real
// backend results apart from local fallback data.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// PredictionInput is one set of network and environmental readings for a region.
// Constructed fresh per request; never mutated after construction.
type PredictionInput struct {
	Region      string  `json:"region"`
	LatencyMS   float64 `json:"latency_ms"`
	PacketLoss  float64 `json:"packet_loss"` // percent, 0-100
	Temperature float64 `json:"temperature"` // degrees Celsius
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    float64 `json:"humidity"` // percent, 0-100
}

// Factor is a named component with a display impact weight shown alongside
// a prediction result.
type Factor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

// PredictionResult is the outcome of a single downtime prediction.
// Created once per call; immutable after construction.
type PredictionResult struct {
	DowntimeProbability float64  `json:"downtime_probability"` // [0,1], 2 decimal places
	Threshold           float64  `json:"threshold"`
	AlertTriggered      bool     `json:"alert_triggered"`
	ContributingFactors []Factor `json:"contributing_factors"`
	Recommendation      string   `json:"recommendation"`
	Source              Source   `json:"source"`
}

// CityProbabilities maps city names (unique within a country) to downtime
// probabilities.
type CityProbabilities map[string]float64

// CityRisk is one classified row of a per-country city ranking.
type CityRisk struct {
	City           string  `json:"city"`
	Probability    float64 `json:"probability"`
	PercentageText string  `json:"percentageText"` // probability*100 at 4 decimal places
	Tier           Tier    `json:"tier"`
	BarFraction    float64 `json:"barFraction"` // relative bar length, top entry = 1.0
}

// RiskSnapshot is one stored evaluation of a monitored region.
type RiskSnapshot struct {
	ID        string           `json:"id"`
	Region    string           `json:"region"`
	Input     PredictionInput  `json:"input"`
	Result    PredictionResult `json:"result"`
	Timestamp time.Time        `json:"timestamp"` // always UTC
}

// AlertEvent records a prediction that crossed the alert threshold.
type AlertEvent struct {
	ID             string    `json:"id"`
	Region         string    `json:"region"`
	Probability    float64   `json:"probability"`
	Threshold      float64   `json:"threshold"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

// RiskSummary aggregates a range of snapshots for analytics views.
type RiskSummary struct {
	Count          int     `json:"count"`
	AvgProbability float64 `json:"avgProbability"`
	MinProbability float64 `json:"minProbability"`
	MaxProbability float64 `json:"maxProbability"`
	Alerts         int     `json:"alerts"`
}
