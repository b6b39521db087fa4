package diagnosis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/core/services/extraction"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
)

// VisionModel is the multimodal generation surface the online strategy
// needs.
type VisionModel interface {
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// OnlineClassifier asks the vision model to pick a disease from the
// candidate list. Unparsable model output degrades to a fixed-
// confidence fallback instead of an error; only a failed invocation
// (after one retry with a simplified prompt) is reported as an error.
type OnlineClassifier struct {
	model                   VisionModel
	parseFallbackConfidence float64
	logger                  *slog.Logger
}

// NewOnlineClassifier creates the online strategy.
func NewOnlineClassifier(model VisionModel, parseFallbackConfidence float64, logger *slog.Logger) *OnlineClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	if parseFallbackConfidence <= 0 {
		parseFallbackConfidence = 0.7
	}

	return &OnlineClassifier{
		model:                   model,
		parseFallbackConfidence: parseFallbackConfidence,
		logger:                  logger,
	}
}

// Name identifies the strategy in logs and persistence.
func (c *OnlineClassifier) Name() string { return "online" }

// DefaultTreatments returns the advice used when neither the model nor
// the matched record provides any.
func (c *OnlineClassifier) DefaultTreatments() domain.Treatments {
	return onlineDefaultTreatments()
}

// Classify sends the image and candidate list to the model and parses
// the structured response out of whatever text comes back.
func (c *OnlineClassifier) Classify(ctx context.Context, img Image, crop *domain.Crop, candidates []domain.Disease) (*Classification, error) {
	if c.model == nil {
		return nil, apperrors.ModelNotConfigured()
	}

	text, err := c.model.GenerateVision(ctx, diseasePrompt(crop, candidates), img.Data, img.MIMEType)
	if err != nil {
		c.logger.Warn("classification request failed, retrying with simplified prompt",
			slog.Any("error", err))

		text, err = c.model.GenerateVision(ctx, simplifiedDiseasePrompt(crop), img.Data, img.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("classification failed: %w", err)
		}
	}

	var cls Classification
	if !extraction.Unmarshal(text, &cls) {
		c.logger.Warn("could not parse model response, using parse fallback",
			slog.Int("response_chars", len(text)))
		return &Classification{
			Confidence: c.parseFallbackConfidence,
			Reasoning:  "Could not parse AI response. Using fallback diagnosis.",
		}, nil
	}

	c.logger.Info("model classification parsed",
		slog.String("disease", cls.DiseaseName),
		slog.Float64("confidence", cls.Confidence))

	return &cls, nil
}

func diseasePrompt(crop *domain.Crop, candidates []domain.Disease) string {
	var b strings.Builder

	cropName := "plant"
	if crop != nil && crop.Name != "" {
		cropName = crop.Name
	}

	fmt.Fprintf(&b, "Analyze this image of a %s plant and identify any diseases.\n\n", cropName)
	b.WriteString("Possible diseases include:\n")
	for _, d := range candidates {
		symptoms := d.Symptoms
		if symptoms == "" {
			symptoms = "Unknown symptoms"
		}
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, symptoms)
	}
	b.WriteString(`
Please identify the most likely disease and provide:
1. The name of the disease
2. Your confidence level (0-1)
3. Detailed reasoning based on visual symptoms

Format your response as JSON like this:
{
  "diseaseName": "Disease name",
  "confidence": 0.85,
  "reasoning": "Detailed explanation of visual symptoms",
  "treatments": {
    "organic": ["Treatment 1", "Treatment 2"],
    "chemical": ["Treatment 1", "Treatment 2"]
  }
}
`)

	return b.String()
}

func simplifiedDiseasePrompt(crop *domain.Crop) string {
	cropName := "plant"
	if crop != nil && crop.Name != "" {
		cropName = crop.Name
	}

	return fmt.Sprintf(`Identify the most likely disease on this %s plant.
Respond with JSON only:
{"diseaseName": "Disease name", "confidence": 0.85, "reasoning": "Explanation"}
`, cropName)
}
