package parsers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ParserFactory selects a parser by file extension.
type ParserFactory struct {
	config  *ParserConfig
	parsers map[string]FileParser
}

// NewParserFactory creates a factory with all built-in parsers
// registered.
func NewParserFactory(config *ParserConfig) *ParserFactory {
	if config == nil {
		config = DefaultParserConfig()
	}

	factory := &ParserFactory{
		config:  config,
		parsers: make(map[string]FileParser),
	}

	factory.RegisterParser(NewCSVParser(config))
	factory.RegisterParser(NewExcelParser(config))
	factory.RegisterParser(NewJSONParser(config))

	return factory
}

// RegisterParser registers a parser for its supported extensions.
func (f *ParserFactory) RegisterParser(parser FileParser) {
	for _, ext := range parser.SupportedFormats() {
		f.parsers[canonicalExt(ext)] = parser
	}
}

// GetParser returns the parser registered for a file extension.
func (f *ParserFactory) GetParser(fileExt string) (FileParser, error) {
	parser, exists := f.parsers[canonicalExt(fileExt)]
	if !exists {
		return nil, fmt.Errorf("no parser found for extension: %s", fileExt)
	}
	return parser, nil
}

// ParseFile selects the parser from the file path and parses the file.
func (f *ParserFactory) ParseFile(ctx context.Context, filePath string) (*ParseResult, error) {
	parser, err := f.GetParser(filepath.Ext(filePath))
	if err != nil {
		return nil, err
	}
	return parser.Parse(ctx, filePath)
}

// SupportedFormats returns all registered file extensions.
func (f *ParserFactory) SupportedFormats() []string {
	formats := make([]string, 0, len(f.parsers))
	for ext := range f.parsers {
		formats = append(formats, ext)
	}
	return formats
}

// IsSupported reports whether a file extension has a parser.
func (f *ParserFactory) IsSupported(fileExt string) bool {
	_, exists := f.parsers[canonicalExt(fileExt)]
	return exists
}

func canonicalExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
