package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONParser parses catalog files holding an array of row objects, or
// a single object treated as one row.
type JSONParser struct {
	config *ParserConfig
}

// NewJSONParser creates a new JSON parser.
func NewJSONParser(config *ParserConfig) *JSONParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &JSONParser{config: config}
}

// Parse reads and parses a JSON file from disk.
func (p *JSONParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer file.Close()

	if p.config.MaxFileSize > 0 {
		stat, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if stat.Size() > p.config.MaxFileSize {
			return nil, fmt.Errorf("file size %d exceeds maximum %d", stat.Size(), p.config.MaxFileSize)
		}
	}

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses JSON data from a reader.
func (p *JSONParser) ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Fall back to a single object
		var one map[string]interface{}
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		raw = []map[string]interface{}{one}
	}

	records := make([]Record, 0, len(raw))
	columnSet := make(map[string]struct{})

	for _, row := range raw {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record := make(Record, len(row))
		for key, value := range row {
			col := normalizeColumn(key)
			record[col] = value
			columnSet[col] = struct{}{}
		}
		records = append(records, record)
	}

	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}

	return &ParseResult{
		Records:   records,
		TotalRows: len(records),
		Columns:   columns,
		Format:    "JSON",
	}, nil
}

// SupportedFormats returns the file extensions this parser handles.
func (p *JSONParser) SupportedFormats() []string {
	return []string{".json"}
}
