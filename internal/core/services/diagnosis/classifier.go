// Package diagnosis implements the diagnosis pipeline: image intake,
// candidate lookup, model classification and reconciliation into a
// fully populated result. Classification itself is a strategy so the
// same pipeline serves online and offline requests.
package diagnosis

import (
	"context"

	"github.com/Pratham9108106876/farm/internal/core/domain"
)

// Image carries decoded upload bytes through the pipeline.
type Image struct {
	Data     []byte
	MIMEType string
}

// Classification is what a strategy reports back. Fields may be empty
// or zero; the reconciler fills the gaps from the matched catalog
// record and the strategy's defaults.
type Classification struct {
	DiseaseName string            `json:"diseaseName"`
	Confidence  float64           `json:"confidence"`
	Reasoning   string            `json:"reasoning"`
	Treatments  domain.Treatments `json:"treatments"`
	IsOffline   bool              `json:"-"`
}

// Classifier selects a disease from the candidate set. An error means
// the strategy could not produce any classification at all; degraded
// output (parse fallback and the like) is returned as a Classification
// with nil error.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, img Image, crop *domain.Crop, candidates []domain.Disease) (*Classification, error)
	DefaultTreatments() domain.Treatments
}

func onlineDefaultTreatments() domain.Treatments {
	return domain.Treatments{
		Organic:  []string{"Apply neem oil", "Use organic compost"},
		Chemical: []string{"Apply fungicide", "Use appropriate pesticides"},
	}
}

func offlineDefaultTreatments() domain.Treatments {
	return domain.Treatments{
		Organic:  []string{"Apply neem oil spray", "Use compost tea as a natural fungicide"},
		Chemical: []string{"Apply copper-based fungicide", "Use systemic fungicide as per label instructions"},
	}
}

func failureDefaultTreatments() domain.Treatments {
	return domain.Treatments{
		Organic:  []string{"Apply neem oil", "Use organic compost", "Remove affected leaves"},
		Chemical: []string{"Apply fungicide", "Use appropriate pesticides"},
	}
}
