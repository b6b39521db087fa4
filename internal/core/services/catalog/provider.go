// Package catalog supplies crop and disease reference data with a
// layered fallback: relational store first, then a broadened query,
// then the built-in static catalog. Candidate lookups never return an
// empty set.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// CropStore is the subset of crop persistence the provider needs.
type CropStore interface {
	List(ctx context.Context) ([]domain.Crop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Crop, error)
}

// DiseaseStore is the subset of disease persistence the provider needs.
type DiseaseStore interface {
	FindByCrop(ctx context.Context, cropID uuid.UUID) ([]domain.Disease, error)
	ListTop(ctx context.Context, limit int) ([]domain.Disease, error)
}

// Cache is the optional read-through cache in front of the store.
type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const candidateCacheTTL = 10 * time.Minute

// Provider resolves candidate diseases and the crop list.
type Provider struct {
	crops        CropStore
	diseases     DiseaseStore
	cache        Cache
	broadenLimit int
	logger       *slog.Logger
}

// NewProvider creates a catalog provider. The cache may be nil, in
// which case every lookup goes straight to the store.
func NewProvider(crops CropStore, diseases DiseaseStore, c Cache, broadenLimit int, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if broadenLimit <= 0 {
		broadenLimit = 10
	}

	return &Provider{
		crops:        crops,
		diseases:     diseases,
		cache:        c,
		broadenLimit: broadenLimit,
		logger:       logger,
	}
}

// Candidates returns the disease candidates for a crop. Lookup order:
// diseases recorded for the crop, then up to broadenLimit diseases
// across all crops, then the static catalog. Store and cache errors
// are absorbed so the result is never empty.
func (p *Provider) Candidates(ctx context.Context, cropID uuid.UUID, cropName string) []domain.Disease {
	if cropID != uuid.Nil {
		if cached := p.cachedCandidates(ctx, cropID); len(cached) > 0 {
			return cached
		}

		diseases, err := p.diseases.FindByCrop(ctx, cropID)
		if err != nil {
			p.logger.Warn("disease lookup failed, using static catalog",
				slog.String("crop_id", cropID.String()),
				slog.Any("error", err))
			return domain.FallbackDiseases(cropID, cropName)
		}
		if len(diseases) > 0 {
			p.storeCandidates(ctx, cropID, diseases)
			return diseases
		}
	}

	broad, err := p.diseases.ListTop(ctx, p.broadenLimit)
	if err != nil {
		p.logger.Warn("broadened disease lookup failed, using static catalog",
			slog.Any("error", err))
		return domain.FallbackDiseases(cropID, cropName)
	}
	if len(broad) > 0 {
		return broad
	}

	return domain.FallbackDiseases(cropID, cropName)
}

// Crops returns the crop list, falling back to the static catalog when
// the store fails or is empty.
func (p *Provider) Crops(ctx context.Context) []domain.Crop {
	crops, err := p.crops.List(ctx)
	if err != nil {
		p.logger.Warn("crop listing failed, using static catalog",
			slog.Any("error", err))
		return domain.FallbackCrops()
	}
	if len(crops) == 0 {
		return domain.FallbackCrops()
	}
	return crops
}

// CropByID resolves a crop by id, returning nil when it does not
// exist or the store fails.
func (p *Provider) CropByID(ctx context.Context, id uuid.UUID) *domain.Crop {
	crop, err := p.crops.FindByID(ctx, id)
	if err != nil {
		for _, c := range domain.FallbackCrops() {
			if c.ID == id {
				return &c
			}
		}
		return nil
	}
	return crop
}

func candidateCacheKey(cropID uuid.UUID) string {
	return "catalog:diseases:" + cropID.String()
}

func (p *Provider) cachedCandidates(ctx context.Context, cropID uuid.UUID) []domain.Disease {
	if p.cache == nil {
		return nil
	}

	data, err := p.cache.GetBytes(ctx, candidateCacheKey(cropID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Debug("candidate cache read failed",
				slog.String("crop_id", cropID.String()),
				slog.Any("error", err))
		}
		return nil
	}

	var diseases []domain.Disease
	if err := json.Unmarshal(data, &diseases); err != nil {
		p.logger.Debug("candidate cache entry corrupt",
			slog.String("crop_id", cropID.String()),
			slog.Any("error", err))
		return nil
	}
	return diseases
}

func (p *Provider) storeCandidates(ctx context.Context, cropID uuid.UUID, diseases []domain.Disease) {
	if p.cache == nil {
		return
	}

	data, err := json.Marshal(diseases)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, candidateCacheKey(cropID), data, candidateCacheTTL); err != nil {
		p.logger.Debug("candidate cache write failed",
			slog.String("crop_id", cropID.String()),
			slog.Any("error", err))
	}
}
