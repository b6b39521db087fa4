package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// DiagnosisHistory is the persistence surface for the history
// endpoints.
type DiagnosisHistory interface {
	ListRecords(ctx context.Context, limit, offset int) ([]domain.DiagnosisRecord, error)
	Create(ctx context.Context, diagnosis *domain.Diagnosis) error
}

// DiagnosesHandler serves the diagnosis history listing and manual
// record saves.
type DiagnosesHandler struct {
	store  DiagnosisHistory
	images ImageSaver
	logger *slog.Logger
}

// ImageSaver persists data URI images for manually saved records.
type ImageSaver interface {
	SaveDataURI(ctx context.Context, dataURI string) string
}

// NewDiagnosesHandler creates the handler.
func NewDiagnosesHandler(store DiagnosisHistory, images ImageSaver, logger *slog.Logger) *DiagnosesHandler {
	return &DiagnosesHandler{
		store:  store,
		images: images,
		logger: logger,
	}
}

// List returns recent diagnoses joined with crop and disease names.
// A store failure degrades to an empty list so history screens render.
func (h *DiagnosesHandler) List(c echo.Context) error {
	limit := queryInt(c, "limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, err := h.store.ListRecords(c.Request().Context(), limit, offset)
	if err != nil {
		h.logger.Warn("history listing failed, returning empty set",
			slog.Any("error", err))
		return c.JSON(http.StatusOK, []domain.DiagnosisRecord{})
	}
	if records == nil {
		records = []domain.DiagnosisRecord{}
	}

	return c.JSON(http.StatusOK, records)
}

type saveDiagnosisRequest struct {
	Result *struct {
		Disease *struct {
			ID     uuid.UUID  `json:"id"`
			CropID *uuid.UUID `json:"crop_id"`
		} `json:"disease"`
		Confidence float64 `json:"confidence"`
		Notes      string  `json:"notes"`
		IsOffline  bool    `json:"isOffline"`
	} `json:"result"`
	ImageURL string `json:"imageUrl"`
}

// Create saves a client-side diagnosis result. The insert is best
// effort: a store failure is logged and the record is still echoed
// back so the client flow completes.
func (h *DiagnosesHandler) Create(c echo.Context) error {
	var req saveDiagnosisRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	if req.Result == nil || req.Result.Disease == nil {
		return apperrors.BadRequest("Missing diagnosis result")
	}

	imageURL := req.ImageURL
	if strings.HasPrefix(imageURL, "data:") && h.images != nil {
		imageURL = h.images.SaveDataURI(c.Request().Context(), imageURL)
	}

	diagnosis := &domain.Diagnosis{
		CropID:          req.Result.Disease.CropID,
		DiseaseID:       diseaseID(req.Result.Disease.ID),
		ImageURL:        imageURL,
		ConfidenceScore: req.Result.Confidence,
		Notes:           req.Result.Notes,
		IsOffline:       req.Result.IsOffline,
	}

	if err := h.store.Create(c.Request().Context(), diagnosis); err != nil {
		h.logger.Warn("failed to save diagnosis record",
			slog.Any("error", err))
	}

	return c.JSON(http.StatusOK, diagnosis)
}

func diseaseID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
