package parsers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "crop", normalizeColumn("Crop"))
	assert.Equal(t, "crop", normalizeColumn(" Crop Name "))
	assert.Equal(t, "disease", normalizeColumn("Disease-Name"))
	assert.Equal(t, "organic_treatment", normalizeColumn("Organic Treatment"))
	assert.Equal(t, "organic_treatment", normalizeColumn("organic"))
	assert.Equal(t, "image_url", normalizeColumn("Image"))
	assert.Equal(t, "symptoms", normalizeColumn("Symptoms"))
}

func TestRecordString(t *testing.T) {
	rec := Record{
		"crop":       " Tomato ",
		"confidence": 0.8,
		"empty":      nil,
	}

	assert.Equal(t, "Tomato", rec.String("crop"))
	assert.Equal(t, "0.8", rec.String("confidence"))
	assert.Equal(t, "", rec.String("empty"))
	assert.Equal(t, "", rec.String("missing"))
}

func TestCSVParser_ParseStream(t *testing.T) {
	csvData := `Crop,Disease,Symptoms,Organic Treatment,Chemical Treatment
Tomato,Early Blight,Brown spots,Apply neem oil,Apply fungicide
Tomato,Late Blight,Water-soaked spots,Remove plants,Use mancozeb
,,,,
Potato,Black Scurf,Dark patches,Crop rotation,Seed treatment
`
	parser := NewCSVParser(nil)
	result, err := parser.ParseStream(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, "CSV", result.Format)
	assert.Equal(t, []string{"crop", "disease", "symptoms", "organic_treatment", "chemical_treatment"}, result.Columns)
	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.SkippedRows)

	first := result.Records[0]
	assert.Equal(t, "Tomato", first.String("crop"))
	assert.Equal(t, "Early Blight", first.String("disease"))
	assert.Equal(t, "Apply neem oil", first.String("organic_treatment"))
}

func TestCSVParser_ShortRows(t *testing.T) {
	csvData := "Crop,Disease,Symptoms\nRice,Blast Disease\n"
	parser := NewCSVParser(nil)

	result, err := parser.ParseStream(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "", result.Records[0].String("symptoms"))
}

func TestCSVParser_Parse_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("Crop,Disease\nWheat,Rust\n"), 0644))

	parser := NewCSVParser(nil)
	result, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Wheat", result.Records[0].String("crop"))
}

func TestJSONParser_ParseStream(t *testing.T) {
	jsonData := `[
		{"Crop": "Tomato", "Disease": "Early Blight", "Symptoms": "Brown spots"},
		{"Crop": "Rice", "Disease": "Blast Disease"}
	]`
	parser := NewJSONParser(nil)

	result, err := parser.ParseStream(context.Background(), strings.NewReader(jsonData))
	require.NoError(t, err)

	assert.Equal(t, "JSON", result.Format)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Tomato", result.Records[0].String("crop"))
	assert.Equal(t, "Blast Disease", result.Records[1].String("disease"))
}

func TestJSONParser_SingleObject(t *testing.T) {
	parser := NewJSONParser(nil)

	result, err := parser.ParseStream(context.Background(), strings.NewReader(`{"Crop": "Onion", "Disease": "Purple Blotch"}`))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Onion", result.Records[0].String("crop"))
}

func TestJSONParser_Invalid(t *testing.T) {
	parser := NewJSONParser(nil)

	_, err := parser.ParseStream(context.Background(), strings.NewReader("not json"))
	require.Error(t, err)
}

func TestExcelParser_ParseStream(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Crop", "Disease", "Symptoms"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Cotton", "Cotton Leaf Curl Virus", "Curling leaves"}))
	// Empty rows between data rows are skipped, not imported as blanks
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"", "", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]string{"Maize", "Downy Mildew", "Chlorotic streaks"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	parser := NewExcelParser(nil)
	result, err := parser.ParseStream(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, "XLSX", result.Format)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.SkippedRows)
	assert.Equal(t, "Cotton", result.Records[0].String("crop"))
	assert.Equal(t, "Maize", result.Records[1].String("crop"))
}

func TestParserFactory(t *testing.T) {
	factory := NewParserFactory(nil)

	for _, ext := range []string{".csv", "csv", ".xlsx", ".XLSX", ".json"} {
		parser, err := factory.GetParser(ext)
		require.NoError(t, err, ext)
		assert.NotNil(t, parser)
	}

	_, err := factory.GetParser(".pdf")
	require.Error(t, err)
	assert.False(t, factory.IsSupported(".pdf"))
	assert.True(t, factory.IsSupported("xls"))
}

func TestParserFactory_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Crop": "Soybean", "Disease": "Soybean Rust"}]`), 0644))

	factory := NewParserFactory(nil)
	result, err := factory.ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Soybean Rust", result.Records[0].String("disease"))
}

func TestParserFactory_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := NewCSVParser(nil)
	_, err := parser.ParseStream(ctx, strings.NewReader("Crop,Disease\nA,B\n"))
	require.Error(t, err)
}
