// Package parsers turns uploaded catalog files (CSV, Excel, JSON)
// into uniform records keyed by normalized column names, ready for the
// catalog importer.
package parsers

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Record is a single catalog row keyed by normalized column name.
type Record map[string]interface{}

// String returns the row's value for a normalized column as a trimmed
// string, empty when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// ParseResult carries the parsed rows plus parsing statistics.
type ParseResult struct {
	Records     []Record
	TotalRows   int
	SkippedRows int
	Columns     []string
	Format      string
}

// FileParser is implemented by every format parser.
type FileParser interface {
	// Parse reads and parses the file at the given path.
	Parse(ctx context.Context, filePath string) (*ParseResult, error)

	// ParseStream reads and parses from a reader, as used for uploads.
	ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error)

	// SupportedFormats returns the file extensions this parser handles.
	SupportedFormats() []string
}

// ParserConfig holds shared parser settings.
type ParserConfig struct {
	// SkipEmptyRows drops rows whose every cell is blank.
	SkipEmptyRows bool

	// TrimWhitespace trims cell values and column names.
	TrimWhitespace bool

	// MaxFileSize is the maximum file size in bytes (0 = unlimited).
	MaxFileSize int64
}

// DefaultParserConfig returns the settings used for catalog uploads.
func DefaultParserConfig() *ParserConfig {
	return &ParserConfig{
		SkipEmptyRows:  true,
		TrimWhitespace: true,
		MaxFileSize:    20 * 1024 * 1024,
	}
}

// columnAliases maps the spellings seen in catalog exports onto the
// canonical column names the importer reads.
var columnAliases = map[string]string{
	"crop_name":     "crop",
	"plant":         "crop",
	"disease_name":  "disease",
	"organic":       "organic_treatment",
	"chemical":      "chemical_treatment",
	"image":         "image_url",
	"disease_image": "image_url",
	"crop_image":    "crop_image_url",
}

// normalizeColumn lowercases a header and converts separators to
// underscores so "Organic Treatment" and "organic-treatment" land on
// the same key.
func normalizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if canonical, ok := columnAliases[s]; ok {
		return canonical
	}
	return s
}

// isEmptyRow reports whether a row contains only blank cells.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
