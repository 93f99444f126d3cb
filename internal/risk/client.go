package risk

import (
	"context"
	"time"
)

// RemoteClient abstracts the external prediction service. Implementations make
// exactly one attempt per call; retry policy is deliberately absent, since the
// Service falls back locally on the first failure.
type RemoteClient interface {
	Name() string

	// Predict requests a prediction for a full set of readings.
	Predict(ctx context.Context, in PredictionInput) (PredictionResult, error)

	// PredictRegion is the simplified variant: the service derives readings
	// for the region on its side.
	PredictRegion(ctx context.Context, region string) (PredictionResult, error)

	// CityPredictions requests the per-city probability set for a country.
	CityPredictions(ctx context.Context, country string) (CityProbabilities, error)
}

// Store is the contract the in-memory store (and any future persistent store)
// must satisfy.
type Store interface {
	SaveSnapshot(region string, snap RiskSnapshot)
	GetLatest(region string) (RiskSnapshot, error)
	GetRange(region string, from, to time.Time) ([]RiskSnapshot, error)
	RecordAlert(ev AlertEvent)
	RecentAlerts(limit int) []AlertEvent
}
