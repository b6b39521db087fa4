package parsers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelParser parses spreadsheet catalog files. Rows are read from the
// first sheet only.
type ExcelParser struct {
	config *ParserConfig
}

// NewExcelParser creates a new Excel parser.
func NewExcelParser(config *ParserConfig) *ExcelParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &ExcelParser{config: config}
}

// Parse reads and parses an Excel file from disk.
func (p *ExcelParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	if p.config.MaxFileSize > 0 {
		stat, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if stat.Size() > p.config.MaxFileSize {
			return nil, fmt.Errorf("file size %d exceeds maximum %d", stat.Size(), p.config.MaxFileSize)
		}
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return p.parseWorkbook(ctx, f)
}

// ParseStream reads and parses Excel data from a reader.
func (p *ExcelParser) ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel stream: %w", err)
	}
	defer f.Close()

	return p.parseWorkbook(ctx, f)
}

func (p *ExcelParser) parseWorkbook(ctx context.Context, f *excelize.File) (*ParseResult, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return &ParseResult{Format: "XLSX"}, nil
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = normalizeColumn(col)
	}

	var records []Record
	totalRows := 0
	skippedRows := 0

	for _, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
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
		Format:      "XLSX",
	}, nil
}

// SupportedFormats returns the file extensions this parser handles.
func (p *ExcelParser) SupportedFormats() []string {
	return []string{".xlsx", ".xls"}
}
