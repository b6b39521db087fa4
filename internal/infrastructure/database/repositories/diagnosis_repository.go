package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"gorm.io/gorm"
)

// DiagnosisRepository provides access to the diagnoses table
type DiagnosisRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewDiagnosisRepository creates a new repository instance
func NewDiagnosisRepository(db *gorm.DB, logger *slog.Logger) *DiagnosisRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &DiagnosisRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new diagnosis record
func (r *DiagnosisRepository) Create(ctx context.Context, diagnosis *domain.Diagnosis) error {
	err := r.db.WithContext(ctx).
		Create(diagnosis).
		Error

	if err != nil {
		r.logger.Error("failed to create diagnosis",
			slog.Any("error", err))
		return fmt.Errorf("failed to insert diagnosis: %w", err)
	}

	r.logger.Info("recorded diagnosis",
		slog.String("diagnosis_id", diagnosis.ID.String()),
		slog.Float64("confidence", diagnosis.ConfidenceScore),
		slog.Bool("offline", diagnosis.IsOffline))

	return nil
}

// ListRecords returns diagnosis history joined with crop and disease
// names, newest first.
func (r *DiagnosisRepository) ListRecords(ctx context.Context, limit, offset int) ([]domain.DiagnosisRecord, error) {
	var records []domain.DiagnosisRecord

	err := r.db.WithContext(ctx).
		Model(&domain.Diagnosis{}).
		Select(`diagnoses.id,
			COALESCE(crops.name, 'Unknown') AS crop_name,
			COALESCE(diseases.name, 'Unknown') AS disease_name,
			diagnoses.image_url,
			diagnoses.confidence_score,
			diagnoses.notes,
			diagnoses.is_offline,
			diagnoses.created_at`).
		Joins("LEFT JOIN crops ON crops.id = diagnoses.crop_id").
		Joins("LEFT JOIN diseases ON diseases.id = diagnoses.disease_id").
		Order("diagnoses.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&records).
		Error

	if err != nil {
		r.logger.Error("failed to list diagnoses",
			slog.Int("limit", limit),
			slog.Int("offset", offset),
			slog.Any("error", err))
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return records, nil
}
