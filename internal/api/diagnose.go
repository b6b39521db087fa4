package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/core/services/diagnosis"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Diagnoser runs the diagnosis pipeline with a chosen classifier.
type Diagnoser interface {
	Diagnose(ctx context.Context, req diagnosis.Request, classifier diagnosis.Classifier) (*domain.DiagnosisResult, error)
}

// DiagnoseHandler serves the online and offline diagnosis endpoints.
type DiagnoseHandler struct {
	service Diagnoser
	online  diagnosis.Classifier
	offline diagnosis.Classifier
	logger  *slog.Logger
}

// NewDiagnoseHandler creates the handler with both classification
// modes wired.
func NewDiagnoseHandler(service Diagnoser, online, offline diagnosis.Classifier, logger *slog.Logger) *DiagnoseHandler {
	return &DiagnoseHandler{
		service: service,
		online:  online,
		offline: offline,
		logger:  logger,
	}
}

type diagnoseRequest struct {
	Image  string `json:"image"`
	CropID string `json:"cropId"`
}

// Online diagnoses an image with the multimodal model. cropId is
// optional; when absent the crop is identified from the image.
func (h *DiagnoseHandler) Online(c echo.Context) error {
	var req diagnoseRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	if req.Image == "" {
		return apperrors.BadRequest("Missing required image")
	}

	cropID, err := parseCropID(req.CropID)
	if err != nil {
		return err
	}

	result, diagErr := h.service.Diagnose(c.Request().Context(), diagnosis.Request{
		Image:  req.Image,
		CropID: cropID,
	}, h.online)
	if diagErr != nil {
		return diagErr
	}

	return c.JSON(http.StatusOK, result)
}

// Offline diagnoses without model access. Both image and cropId are
// required because there is no identification step to fall back on.
func (h *DiagnoseHandler) Offline(c echo.Context) error {
	var req diagnoseRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	if req.Image == "" || req.CropID == "" {
		return apperrors.BadRequest("Missing required fields")
	}

	cropID, err := parseCropID(req.CropID)
	if err != nil {
		return err
	}

	result, diagErr := h.service.Diagnose(c.Request().Context(), diagnosis.Request{
		Image:  req.Image,
		CropID: cropID,
	}, h.offline)
	if diagErr != nil {
		return diagErr
	}

	return c.JSON(http.StatusOK, result)
}

func parseCropID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid cropId")
	}
	return &id, nil
}
