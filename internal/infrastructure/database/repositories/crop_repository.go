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

// CropRepository provides access to the crops table
type CropRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCropRepository creates a new repository instance
func NewCropRepository(db *gorm.DB, logger *slog.Logger) *CropRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &CropRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all crops ordered by name
func (r *CropRepository) List(ctx context.Context) ([]domain.Crop, error) {
	var crops []domain.Crop

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&crops).
		Error

	if err != nil {
		r.logger.Error("failed to list crops", slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return crops, nil
}

// FindByID returns a single crop by primary key
func (r *CropRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Crop, error) {
	var crop domain.Crop

	err := r.db.WithContext(ctx).
		First(&crop, "id = ?", id).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		r.logger.Error("failed to find crop",
			slog.String("crop_id", id.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return &crop, nil
}

// FindByName returns the crop whose name matches case-insensitively
func (r *CropRepository) FindByName(ctx context.Context, name string) (*domain.Crop, error) {
	var crop domain.Crop

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&crop).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		r.logger.Error("failed to find crop by name",
			slog.String("name", name),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return &crop, nil
}

// Create inserts a new crop
func (r *CropRepository) Create(ctx context.Context, crop *domain.Crop) error {
	err := r.db.WithContext(ctx).
		Create(crop).
		Error

	if err != nil {
		r.logger.Error("failed to create crop",
			slog.String("name", crop.Name),
			slog.Any("error", err))
		return fmt.Errorf("failed to insert crop: %w", err)
	}

	r.logger.Info("created crop",
		slog.String("crop_id", crop.ID.String()),
		slog.String("name", crop.Name))

	return nil
}

// Upsert inserts a crop or updates the existing row with the same
// name. Used by the catalog importer.
func (r *CropRepository) Upsert(ctx context.Context, crop *domain.Crop) error {
	existing, err := r.FindByName(ctx, crop.Name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.Create(ctx, crop)
	}

	crop.ID = existing.ID
	err = r.db.WithContext(ctx).
		Model(&domain.Crop{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"scientific_name": crop.ScientificName,
			"description":     crop.Description,
			"image_url":       crop.ImageURL,
		}).
		Error

	if err != nil {
		r.logger.Error("failed to update crop",
			slog.String("name", crop.Name),
			slog.Any("error", err))
		return fmt.Errorf("failed to update crop: %w", err)
	}

	return nil
}
