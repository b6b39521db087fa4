package diagnosis

import (
	"github.com/Pratham9108106876/farm/internal/core/domain"
)

// matchCandidate finds the catalog record the model named, comparing
// normalized names. With no match the first candidate stands in, so a
// diagnosis always lands on a concrete record.
func matchCandidate(diseaseName string, candidates []domain.Disease) domain.Disease {
	if diseaseName != "" {
		want := normalizeName(diseaseName)
		for _, d := range candidates {
			if normalizeName(d.Name) == want {
				return d
			}
		}
	}
	return candidates[0]
}

// reconcile merges a classification with the catalog into a fully
// populated result. Every field coalesces model output, the matched
// record, then the strategy defaults.
func reconcile(cls *Classification, candidates []domain.Disease, crop *domain.Crop, imageURL string, defaults domain.Treatments) *domain.DiagnosisResult {
	matched := matchCandidate(cls.DiseaseName, candidates)

	return &domain.DiagnosisResult{
		Disease:      matched,
		DetectedCrop: crop,
		Confidence:   clamp01(coalesce(zeroFloat, cls.Confidence, 0.7)),
		Reasoning:    coalesce(emptyString, cls.Reasoning, "Visual analysis complete"),
		Treatments: domain.Treatments{
			Organic:  coalesce(emptyList, cls.Treatments.Organic, matched.OrganicTreatmentList(), defaults.Organic),
			Chemical: coalesce(emptyList, cls.Treatments.Chemical, matched.ChemicalTreatmentList(), defaults.Chemical),
		},
		IsOffline: cls.IsOffline,
		ImageURL:  imageURL,
	}
}
