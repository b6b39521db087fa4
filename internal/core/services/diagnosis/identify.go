package diagnosis

import (
	"context"
	"log/slog"

	"github.com/Pratham9108106876/farm/internal/core/services/extraction"
)

// CropIdentification is the model's answer to "what plant is this".
type CropIdentification struct {
	CropName   string  `json:"cropName"`
	Confidence float64 `json:"confidence"`
}

const cropIdentificationPrompt = `Analyze this image and identify the crop or plant species shown.
Return your answer as JSON in this format:
{
  "cropName": "Name of the crop",
  "confidence": 0.85
}
`

// CropIdentifier determines the crop species from the uploaded image.
type CropIdentifier struct {
	model  VisionModel
	logger *slog.Logger
}

// NewCropIdentifier creates a crop identifier backed by the vision
// model.
func NewCropIdentifier(model VisionModel, logger *slog.Logger) *CropIdentifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &CropIdentifier{
		model:  model,
		logger: logger,
	}
}

// Identify asks the model for the crop species. Failures of any kind
// degrade to the Unknown crop at half confidence; identification never
// blocks a diagnosis.
func (i *CropIdentifier) Identify(ctx context.Context, img Image) CropIdentification {
	unknown := CropIdentification{CropName: "Unknown", Confidence: 0.5}

	if i.model == nil {
		return unknown
	}

	text, err := i.model.GenerateVision(ctx, cropIdentificationPrompt, img.Data, img.MIMEType)
	if err != nil {
		i.logger.Warn("crop identification request failed",
			slog.Any("error", err))
		return unknown
	}

	var ident CropIdentification
	if !extraction.Unmarshal(text, &ident) || ident.CropName == "" {
		i.logger.Warn("could not parse crop identification response",
			slog.Int("response_chars", len(text)))
		return unknown
	}

	i.logger.Info("crop identified",
		slog.String("crop", ident.CropName),
		slog.Float64("confidence", ident.Confidence))

	return ident
}
