package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiseaseRepository provides access to the diseases table
type DiseaseRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewDiseaseRepository creates a new repository instance
func NewDiseaseRepository(db *gorm.DB, logger *slog.Logger) *DiseaseRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &DiseaseRepository{
		db:     db,
		logger: logger,
	}
}

// FindByCrop returns all diseases recorded for a crop
func (r *DiseaseRepository) FindByCrop(ctx context.Context, cropID uuid.UUID) ([]domain.Disease, error) {
	var diseases []domain.Disease

	err := r.db.WithContext(ctx).
		Where("crop_id = ?", cropID).
		Order("name ASC").
		Find(&diseases).
		Error

	if err != nil {
		r.logger.Error("failed to find diseases for crop",
			slog.String("crop_id", cropID.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return diseases, nil
}

// ListTop returns up to limit diseases across all crops. Used to
// broaden the candidate pool when a crop has no recorded diseases.
func (r *DiseaseRepository) ListTop(ctx context.Context, limit int) ([]domain.Disease, error) {
	var diseases []domain.Disease

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Find(&diseases).
		Error

	if err != nil {
		r.logger.Error("failed to list diseases",
			slog.Int("limit", limit),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return diseases, nil
}

// FindByID returns a single disease by primary key
func (r *DiseaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Disease, error) {
	var disease domain.Disease

	err := r.db.WithContext(ctx).
		First(&disease, "id = ?", id).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		r.logger.Error("failed to find disease",
			slog.String("disease_id", id.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return &disease, nil
}

// Upsert inserts a disease or updates the existing row with the same
// name and crop. Used by the catalog importer.
func (r *DiseaseRepository) Upsert(ctx context.Context, disease *domain.Disease) error {
	var existing domain.Disease

	err := r.db.WithContext(ctx).
		Where("crop_id = ? AND LOWER(name) = LOWER(?)", disease.CropID, disease.Name).
		First(&existing).
		Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("failed to look up disease",
				slog.String("name", disease.Name),
				slog.Any("error", err))
			return fmt.Errorf("database query failed: %w", err)
		}

		if err := r.db.WithContext(ctx).Create(disease).Error; err != nil {
			r.logger.Error("failed to create disease",
				slog.String("name", disease.Name),
				slog.Any("error", err))
			return fmt.Errorf("failed to insert disease: %w", err)
		}
		return nil
	}

	disease.ID = existing.ID
	err = r.db.WithContext(ctx).
		Model(&domain.Disease{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"symptoms":           disease.Symptoms,
			"causes":             disease.Causes,
			"prevention":         disease.Prevention,
			"organic_treatment":  disease.OrganicTreatment,
			"chemical_treatment": disease.ChemicalTreatment,
			"image_url":          disease.ImageURL,
		}).
		Error

	if err != nil {
		r.logger.Error("failed to update disease",
			slog.String("name", disease.Name),
			slog.Any("error", err))
		return fmt.Errorf("failed to update disease: %w", err)
	}

	return nil
}
