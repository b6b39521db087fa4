package parsers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVParser parses comma-separated catalog files.
type CSVParser struct {
	config *ParserConfig
}

// NewCSVParser creates a new CSV parser.
func NewCSVParser(config *ParserConfig) *CSVParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &CSVParser{config: config}
}

// Parse reads and parses a CSV file from disk.
func (p *CSVParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
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

// ParseStream reads and parses CSV data from a reader.
func (p *CSVParser) ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = p.config.TrimWhitespace
	csvReader.FieldsPerRecord = -1

	rawHeader, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	header := make([]string, len(rawHeader))
	for i, col := range rawHeader {
		header[i] = normalizeColumn(col)
	}

	var records []Record
	totalRows := 0
	skippedRows := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are skipped, not fatal
			totalRows++
			skippedRows++
			continue
		}

		totalRows++

		if p.config.SkipEmptyRows && isEmptyRow(row) {
			skippedRows++
			continue
		}

		record := make(Record, len(header))
		for i, col := range header {
			value := ""
			if i < len(row) {
				value = row[i]
				if p.config.TrimWhitespace {
					value = strings.TrimSpace(value)
				}
			}
			record[col] = value
		}
		records = append(records, record)
	}

	return &ParseResult{
		Records:     records,
		TotalRows:   totalRows,
		SkippedRows: skippedRows,
		Columns:     header,
		Format:      "CSV",
	}, nil
}

// SupportedFormats returns the file extensions this parser handles.
func (p *CSVParser) SupportedFormats() []string {
	return []string{".csv"}
}
