package diagnosis

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/Pratham9108106876/farm/internal/core/domain"
)

const offlineReasoning = "Offline analysis completed. For more accurate results, try online mode when internet is available."

// OfflineClassifier simulates an analysis without model access: it
// draws a uniform candidate and reports a confidence in the configured
// band. It never fails.
type OfflineClassifier struct {
	minConfidence  float64
	confidenceSpan float64
	logger         *slog.Logger
}

// NewOfflineClassifier creates the offline strategy.
func NewOfflineClassifier(minConfidence, confidenceSpan float64, logger *slog.Logger) *OfflineClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	if minConfidence <= 0 {
		minConfidence = 0.5
	}
	if confidenceSpan < 0 {
		confidenceSpan = 0.3
	}

	return &OfflineClassifier{
		minConfidence:  minConfidence,
		confidenceSpan: confidenceSpan,
		logger:         logger,
	}
}

// Name identifies the strategy in logs and persistence.
func (c *OfflineClassifier) Name() string { return "offline" }

// DefaultTreatments returns the advice used when the picked record
// carries none.
func (c *OfflineClassifier) DefaultTreatments() domain.Treatments {
	return offlineDefaultTreatments()
}

// Classify picks one candidate at random. The image is accepted for
// interface symmetry but not inspected.
func (c *OfflineClassifier) Classify(ctx context.Context, img Image, crop *domain.Crop, candidates []domain.Disease) (*Classification, error) {
	picked := candidates[rand.IntN(len(candidates))]
	confidence := c.minConfidence + rand.Float64()*c.confidenceSpan

	c.logger.Info("offline classification",
		slog.String("disease", picked.Name),
		slog.Float64("confidence", confidence))

	return &Classification{
		DiseaseName: picked.Name,
		Confidence:  confidence,
		Reasoning:   offlineReasoning,
		IsOffline:   true,
	}, nil
}
