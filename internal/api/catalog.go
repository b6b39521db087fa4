package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/core/services/catalog"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/labstack/echo/v4"
)

// CropLister returns the crop catalog.
type CropLister interface {
	Crops(ctx context.Context) []domain.Crop
}

// CatalogImporter loads catalog records from an uploaded file.
type CatalogImporter interface {
	ImportStream(ctx context.Context, reader io.Reader, ext string) (*catalog.ImportSummary, error)
}

// CatalogHandler serves the crop list and bulk catalog imports.
type CatalogHandler struct {
	crops    CropLister
	importer CatalogImporter
	logger   *slog.Logger
}

// NewCatalogHandler creates the handler.
func NewCatalogHandler(crops CropLister, importer CatalogImporter, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		crops:    crops,
		importer: importer,
		logger:   logger,
	}
}

// ListCrops returns every known crop. The provider already falls back
// to the static catalog, so this never returns an empty body.
func (h *CatalogHandler) ListCrops(c echo.Context) error {
	return c.JSON(http.StatusOK, h.crops.Crops(c.Request().Context()))
}

// Import accepts a multipart "file" upload (CSV, Excel or JSON) and
// loads its rows into the catalog.
func (h *CatalogHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.BadRequest("Missing catalog file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.FileParseError(err)
	}
	defer src.Close()

	summary, err := h.importer.ImportStream(c.Request().Context(), src, filepath.Ext(fileHeader.Filename))
	if err != nil {
		return err
	}

	h.logger.Info("catalog import completed",
		slog.String("file", fileHeader.Filename),
		slog.Int("rows", summary.Rows),
		slog.Int("diseases", summary.Diseases),
		slog.Int("skipped", summary.Skipped))

	return c.JSON(http.StatusOK, summary)
}
