package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/infrastructure/parsers"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"gorm.io/gorm"
)

// CropWriter is the subset of crop persistence the importer needs.
type CropWriter interface {
	FindByName(ctx context.Context, name string) (*domain.Crop, error)
	Upsert(ctx context.Context, crop *domain.Crop) error
}

// DiseaseWriter is the subset of disease persistence the importer needs.
type DiseaseWriter interface {
	Upsert(ctx context.Context, disease *domain.Disease) error
}

// ImportSummary reports what an import run did.
type ImportSummary struct {
	Rows     int `json:"rows"`
	Crops    int `json:"crops"`
	Diseases int `json:"diseases"`
	Skipped  int `json:"skipped"`
}

// Importer loads catalog rows from tabular files into the store. One
// row describes a disease together with the crop it belongs to; crops
// are upserted on first sight.
type Importer struct {
	crops    CropWriter
	diseases DiseaseWriter
	factory  *parsers.ParserFactory
	logger   *slog.Logger
}

// NewImporter creates a catalog importer.
func NewImporter(crops CropWriter, diseases DiseaseWriter, factory *parsers.ParserFactory, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = parsers.NewParserFactory(nil)
	}

	return &Importer{
		crops:    crops,
		diseases: diseases,
		factory:  factory,
		logger:   logger,
	}
}

// ImportStream parses the reader using the parser registered for ext
// and upserts every row. Rows without a crop or disease name are
// counted as skipped, not fatal.
func (i *Importer) ImportStream(ctx context.Context, reader io.Reader, ext string) (*ImportSummary, error) {
	parser, err := i.factory.GetParser(ext)
	if err != nil {
		return nil, apperrors.UnsupportedFormat(ext)
	}

	result, err := parser.ParseStream(ctx, reader)
	if err != nil {
		return nil, apperrors.FileParseError(err)
	}

	return i.importRecords(ctx, result.Records)
}

// ImportFile parses a file on disk and upserts every row.
func (i *Importer) ImportFile(ctx context.Context, filePath string) (*ImportSummary, error) {
	result, err := i.factory.ParseFile(ctx, filePath)
	if err != nil {
		return nil, apperrors.FileParseError(err)
	}

	return i.importRecords(ctx, result.Records)
}

func (i *Importer) importRecords(ctx context.Context, records []parsers.Record) (*ImportSummary, error) {
	summary := &ImportSummary{Rows: len(records)}
	seenCrops := make(map[string]*domain.Crop)

	for _, rec := range records {
		cropName := rec.String("crop")
		diseaseName := rec.String("disease")
		if cropName == "" || diseaseName == "" {
			summary.Skipped++
			continue
		}

		crop, err := i.ensureCrop(ctx, rec, cropName, seenCrops, summary)
		if err != nil {
			i.logger.Error("failed to upsert crop",
				slog.String("name", cropName),
				slog.Any("error", err))
			summary.Skipped++
			continue
		}

		disease := &domain.Disease{
			CropID:            crop.ID,
			Name:              diseaseName,
			Symptoms:          rec.String("symptoms"),
			Causes:            rec.String("causes"),
			Prevention:        rec.String("prevention"),
			OrganicTreatment:  rec.String("organic_treatment"),
			ChemicalTreatment: rec.String("chemical_treatment"),
			ImageURL:          rec.String("image_url"),
		}
		if err := i.diseases.Upsert(ctx, disease); err != nil {
			i.logger.Error("failed to upsert disease",
				slog.String("name", diseaseName),
				slog.Any("error", err))
			summary.Skipped++
			continue
		}
		summary.Diseases++
	}

	i.logger.Info("catalog import completed",
		slog.Int("rows", summary.Rows),
		slog.Int("crops", summary.Crops),
		slog.Int("diseases", summary.Diseases),
		slog.Int("skipped", summary.Skipped))

	return summary, nil
}

func (i *Importer) ensureCrop(ctx context.Context, rec parsers.Record, name string, seen map[string]*domain.Crop, summary *ImportSummary) (*domain.Crop, error) {
	key := strings.ToLower(name)
	if crop, ok := seen[key]; ok {
		return crop, nil
	}

	crop := &domain.Crop{
		Name:           name,
		ScientificName: rec.String("scientific_name"),
		Description:    rec.String("description"),
		ImageURL:       rec.String("crop_image_url"),
	}

	existing, err := i.crops.FindByName(ctx, name)
	switch {
	case err == nil:
		crop.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// new crop, Upsert will create it
	default:
		return nil, fmt.Errorf("crop lookup failed: %w", err)
	}

	if err := i.crops.Upsert(ctx, crop); err != nil {
		return nil, err
	}

	seen[key] = crop
	summary.Crops++
	return crop, nil
}
