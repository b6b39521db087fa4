package diagnosis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/infrastructure/storage"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceFallbackReasoning = "AI analysis failed. Using fallback diagnosis based on common diseases."

// ImageStore persists the uploaded image and always yields a usable
// reference.
type ImageStore interface {
	SaveDataURI(ctx context.Context, dataURI string) string
}

// CropStore is the crop persistence surface used when the model
// identifies a crop that may not exist yet.
type CropStore interface {
	FindByName(ctx context.Context, name string) (*domain.Crop, error)
	Create(ctx context.Context, crop *domain.Crop) error
}

// DiagnosisStore records finished diagnoses.
type DiagnosisStore interface {
	Create(ctx context.Context, diagnosis *domain.Diagnosis) error
}

// Catalog resolves crops and candidate diseases.
type Catalog interface {
	Candidates(ctx context.Context, cropID uuid.UUID, cropName string) []domain.Disease
	CropByID(ctx context.Context, id uuid.UUID) *domain.Crop
}

// Request is one diagnosis submission.
type Request struct {
	Image  string
	CropID *uuid.UUID
	UserID string
}

// Service runs the diagnosis pipeline. The classification strategy is
// injected per call so online and offline requests share every other
// stage.
type Service struct {
	catalog                   Catalog
	crops                     CropStore
	diagnoses                 DiagnosisStore
	images                    ImageStore
	identifier                *CropIdentifier
	serviceFallbackConfidence float64
	logger                    *slog.Logger
}

// NewService creates the pipeline. identifier may be nil when no
// vision model is configured; crop identification then degrades to the
// Unknown crop.
func NewService(catalog Catalog, crops CropStore, diagnoses DiagnosisStore, images ImageStore, identifier *CropIdentifier, serviceFallbackConfidence float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if serviceFallbackConfidence <= 0 {
		serviceFallbackConfidence = 0.6
	}

	return &Service{
		catalog:                   catalog,
		crops:                     crops,
		diagnoses:                 diagnoses,
		images:                    images,
		identifier:                identifier,
		serviceFallbackConfidence: serviceFallbackConfidence,
		logger:                    logger,
	}
}

// Diagnose runs the full pipeline and always returns a complete
// result: storage, catalog and model failures all degrade to
// fallbacks. The only error cases are missing input.
func (s *Service) Diagnose(ctx context.Context, req Request, classifier Classifier) (*domain.DiagnosisResult, error) {
	if req.Image == "" {
		return nil, apperrors.BadRequest("image is required")
	}

	imageURL := s.images.SaveDataURI(ctx, req.Image)

	img := s.decodeImage(req.Image)
	crop := s.resolveCrop(ctx, req, img)

	candidates := s.catalog.Candidates(ctx, crop.ID, crop.Name)

	cls, err := classifier.Classify(ctx, img, crop, candidates)
	defaults := classifier.DefaultTreatments()
	if err != nil {
		s.logger.Warn("classification strategy failed, using service fallback",
			slog.String("strategy", classifier.Name()),
			slog.Any("error", err))
		cls = &Classification{
			Confidence: s.serviceFallbackConfidence,
			Reasoning:  serviceFallbackReasoning,
			IsOffline:  true,
		}
		defaults = failureDefaultTreatments()
	}

	result := reconcile(cls, candidates, crop, imageURL, defaults)

	s.record(ctx, req, classifier, crop, result)

	return result, nil
}

func (s *Service) decodeImage(dataURI string) Image {
	data, ext, err := storage.DecodeDataURI(dataURI)
	if err != nil {
		s.logger.Warn("could not decode image payload for analysis",
			slog.Any("error", err))
		return Image{}
	}

	mimeType := "image/jpeg"
	switch ext {
	case ".png":
		mimeType = "image/png"
	case ".webp":
		mimeType = "image/webp"
	case ".gif":
		mimeType = "image/gif"
	}

	return Image{Data: data, MIMEType: mimeType}
}

func (s *Service) resolveCrop(ctx context.Context, req Request, img Image) *domain.Crop {
	if req.CropID != nil {
		if crop := s.catalog.CropByID(ctx, *req.CropID); crop != nil {
			return crop
		}
		return &domain.Crop{ID: *req.CropID, Name: "Unknown"}
	}

	if s.identifier == nil {
		return &domain.Crop{Name: "Unknown"}
	}

	ident := s.identifier.Identify(ctx, img)
	return s.findOrCreateCrop(ctx, ident.CropName)
}

// findOrCreateCrop resolves a model-identified crop name against the
// store, creating a record on first sight. Store failures yield a
// synthetic crop so the pipeline keeps moving.
func (s *Service) findOrCreateCrop(ctx context.Context, name string) *domain.Crop {
	existing, err := s.crops.FindByName(ctx, name)
	if err == nil {
		return existing
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		crop := &domain.Crop{
			Name:        name,
			Description: "Auto-detected crop",
		}
		if createErr := s.crops.Create(ctx, crop); createErr != nil {
			s.logger.Warn("failed to create detected crop",
				slog.String("name", name),
				slog.Any("error", createErr))
			return &domain.Crop{Name: name}
		}
		return crop
	}

	s.logger.Warn("crop lookup failed",
		slog.String("name", name),
		slog.Any("error", err))
	return &domain.Crop{Name: name}
}

// record persists the diagnosis best-effort. A storage failure never
// fails the request.
func (s *Service) record(ctx context.Context, req Request, classifier Classifier, crop *domain.Crop, result *domain.DiagnosisResult) {
	notes := result.Reasoning
	if classifier.Name() == "offline" {
		notes = "Offline analysis"
	}

	diagnosis := &domain.Diagnosis{
		UserID:          req.UserID,
		CropID:          realID(crop.ID),
		DiseaseID:       realID(result.Disease.ID),
		ImageURL:        result.ImageURL,
		ConfidenceScore: result.Confidence,
		Notes:           notes,
		IsOffline:       result.IsOffline,
	}

	if err := s.diagnoses.Create(ctx, diagnosis); err != nil {
		s.logger.Warn("failed to record diagnosis",
			slog.Any("error", err))
	}
}

// realID maps synthetic and fallback identifiers to a null foreign
// key: only rows that exist in the store may be referenced.
func realID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
