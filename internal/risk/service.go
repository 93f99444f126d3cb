package risk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/downtime-prediction/internal/logging"
)

// Options control the Service's remote-versus-local decision policy.
type Options struct {
	// DemoMode forces the local path even when a remote client is configured.
	DemoMode bool

	// MockDelay simulates backend latency on the local path.
	MockDelay time.Duration

	// CityTimeout bounds the remote city-prediction call.
	CityTimeout time.Duration
}

// Service decides, per call, whether to ask the external prediction service or
// fall back to the local scorer and static datasets. No failure ever reaches
// the caller as an error: every path terminates in a valid, possibly degraded,
// result.
type Service struct {
	remote RemoteClient // nil when the external service is not configured
	store  Store
	scorer *Scorer
	opts   Options
}

// NewService creates a new Service. remote may be nil.
func NewService(store Store, remote RemoteClient, scorer *Scorer, opts Options) *Service {
	if opts.CityTimeout <= 0 {
		opts.CityTimeout = 10 * time.Second
	}
	return &Service{
		remote: remote,
		store:  store,
		scorer: scorer,
		opts:   opts,
	}
}

func (s *Service) useRemote() bool {
	return s.remote != nil && !s.opts.DemoMode
}

// Predict obtains a downtime prediction for the given readings. Remote results
// are returned as-is; any remote failure falls back to scoring the original
// input locally.
func (s *Service) Predict(ctx context.Context, in PredictionInput) PredictionResult {
	if s.useRemote() {
		res, err := s.remote.Predict(ctx, in)
		if err == nil {
			return res
		}
		logging.Warn("remote prediction failed; falling back to local scorer",
			zap.String("client", s.remote.Name()),
			zap.String("region", in.Region),
			zap.Error(err))
		return s.scorer.Score(in)
	}

	s.simulateLatency(ctx)
	return s.scorer.Score(in)
}

// PredictRegion is the simplified variant: callers supply only a region and the
// remote service derives the readings. Both the local path and the remote error
// path score a fixed substitute average input for the region.
func (s *Service) PredictRegion(ctx context.Context, region string) PredictionResult {
	if s.useRemote() {
		res, err := s.remote.PredictRegion(ctx, region)
		if err == nil {
			return res
		}
		logging.Warn("remote region prediction failed; scoring substitute input",
			zap.String("client", s.remote.Name()),
			zap.String("region", region),
			zap.Error(err))
		return s.scorer.Score(averageInput(region))
	}

	s.simulateLatency(ctx)
	return s.scorer.Score(averageInput(region))
}

// CityPredictions obtains the per-city probability set for a country. The
// remote call is bounded by an explicit deadline; on failure the static
// dataset is served when the country has one, otherwise an empty map.
func (s *Service) CityPredictions(ctx context.Context, country string) CityProbabilities {
	if s.useRemote() {
		cctx, cancel := context.WithTimeout(ctx, s.opts.CityTimeout)
		defer cancel()

		preds, err := s.remote.CityPredictions(cctx, country)
		if err == nil {
			return preds
		}
		logging.Warn("remote city prediction failed; using static dataset",
			zap.String("client", s.remote.Name()),
			zap.String("country", country),
			zap.Error(err))
	} else {
		s.simulateLatency(ctx)
	}

	if preds, ok := FallbackCities(country); ok {
		return preds
	}
	return CityProbabilities{}
}

// EvaluateAndStore runs one monitoring evaluation for a region: predict,
// snapshot, and record an alert event when the threshold is crossed.
func (s *Service) EvaluateAndStore(ctx context.Context, region string, in PredictionInput) RiskSnapshot {
	res := s.Predict(ctx, in)

	snap := RiskSnapshot{
		ID:        uuid.NewString(),
		Region:    region,
		Input:     in,
		Result:    res,
		Timestamp: time.Now().UTC(),
	}
	s.store.SaveSnapshot(region, snap)

	if res.AlertTriggered {
		s.store.RecordAlert(AlertEvent{
			ID:             uuid.NewString(),
			Region:         region,
			Probability:    res.DowntimeProbability,
			Threshold:      res.Threshold,
			Recommendation: res.Recommendation,
			Timestamp:      snap.Timestamp,
		})
		logging.Warn("downtime alert triggered",
			zap.String("region", region),
			zap.Float64("probability", res.DowntimeProbability),
			zap.String("source", string(res.Source)))
	}

	return snap
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(region string) (RiskSnapshot, error) {
	return s.store.GetLatest(region)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(region string, from, to time.Time) ([]RiskSnapshot, error) {
	return s.store.GetRange(region, from, to)
}

// RecentAlerts delegates to the underlying store.
func (s *Service) RecentAlerts(limit int) []AlertEvent {
	return s.store.RecentAlerts(limit)
}

// SummarizeRange aggregates the stored snapshots for a region between from and to.
func (s *Service) SummarizeRange(region string, from, to time.Time) (RiskSummary, error) {
	snaps, err := s.store.GetRange(region, from, to)
	if err != nil {
		return RiskSummary{}, err
	}
	return Summarize(snaps), nil
}

// simulateLatency imitates backend response time on the local path. It returns
// early if the caller's context is cancelled.
func (s *Service) simulateLatency(ctx context.Context) {
	if s.opts.MockDelay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.MockDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
