package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/Pratham9108106876/farm/internal/core/services/assistant"
	"github.com/Pratham9108106876/farm/internal/core/services/catalog"
	"github.com/Pratham9108106876/farm/internal/core/services/diagnosis"
	"github.com/Pratham9108106876/farm/internal/pkg/config"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "development",
		ServerHost:    "127.0.0.1",
		ServerPort:    "0",
		MaxUploadSize: 10,
	}
}

type fakeDiagnoser struct {
	lastReq        diagnosis.Request
	lastClassifier diagnosis.Classifier
	result         *domain.DiagnosisResult
	err            error
}

func (f *fakeDiagnoser) Diagnose(ctx context.Context, req diagnosis.Request, classifier diagnosis.Classifier) (*domain.DiagnosisResult, error) {
	f.lastReq = req
	f.lastClassifier = classifier
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type stubClassifier struct {
	name string
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Classify(ctx context.Context, img diagnosis.Image, crop *domain.Crop, candidates []domain.Disease) (*diagnosis.Classification, error) {
	return nil, errors.New("not used")
}

func (s *stubClassifier) DefaultTreatments() domain.Treatments {
	return domain.Treatments{}
}

type fakeHistory struct {
	records   []domain.DiagnosisRecord
	listErr   error
	created   []*domain.Diagnosis
	createErr error
	lastLimit int
}

func (f *fakeHistory) ListRecords(ctx context.Context, limit, offset int) ([]domain.DiagnosisRecord, error) {
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeHistory) Create(ctx context.Context, d *domain.Diagnosis) error {
	f.created = append(f.created, d)
	return f.createErr
}

type fakeImageSaver struct {
	saved []string
	url   string
}

func (f *fakeImageSaver) SaveDataURI(ctx context.Context, dataURI string) string {
	f.saved = append(f.saved, dataURI)
	return f.url
}

type fakeAssistant struct {
	lastReq assistant.Request
	text    string
	err     error
}

func (f *fakeAssistant) Chat(ctx context.Context, req assistant.Request) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeCropLister struct {
	crops []domain.Crop
}

func (f *fakeCropLister) Crops(ctx context.Context) []domain.Crop {
	return f.crops
}

type fakeImporter struct {
	lastExt string
	summary *catalog.ImportSummary
	err     error
}

func (f *fakeImporter) ImportStream(ctx context.Context, reader io.Reader, ext string) (*catalog.ImportSummary, error) {
	f.lastExt = ext
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeHealth struct {
	status string
}

func (f *fakeHealth) Health(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{"status": f.status}
}

func newTestServer(t *testing.T, h *Handlers) *Server {
	t.Helper()

	if h.Diagnose == nil {
		h.Diagnose = NewDiagnoseHandler(&fakeDiagnoser{result: &domain.DiagnosisResult{}}, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())
	}
	if h.Catalog == nil {
		h.Catalog = NewCatalogHandler(&fakeCropLister{}, &fakeImporter{summary: &catalog.ImportSummary{}}, testLogger())
	}
	if h.Diagnoses == nil {
		h.Diagnoses = NewDiagnosesHandler(&fakeHistory{}, &fakeImageSaver{url: "/uploads/x.jpg"}, testLogger())
	}
	if h.Chat == nil {
		h.Chat = NewChatHandler(&fakeAssistant{text: "hello"}, testLogger())
	}
	if h.Health == nil {
		h.Health = NewHealthHandler(map[string]HealthChecker{"database": &fakeHealth{status: "up"}})
	}

	s := NewServer(testConfig(), testLogger())
	s.RegisterRoutes(h, "")
	return s
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestDiagnoseOnline_RequiresImage(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body["error"])
	assert.Equal(t, "Missing required image", body["message"])
}

func TestDiagnoseOnline_RunsPipeline(t *testing.T) {
	service := &fakeDiagnoser{result: &domain.DiagnosisResult{Confidence: 0.9}}
	h := &Handlers{Diagnose: NewDiagnoseHandler(service, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online", `{"image": "data:image/jpeg;base64,aGk="}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "data:image/jpeg;base64,aGk=", service.lastReq.Image)
	assert.Nil(t, service.lastReq.CropID)
	assert.Equal(t, "online", service.lastClassifier.Name())
}

func TestDiagnoseOnline_OptionalCropID(t *testing.T) {
	service := &fakeDiagnoser{result: &domain.DiagnosisResult{}}
	h := &Handlers{Diagnose: NewDiagnoseHandler(service, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())}
	s := newTestServer(t, h)

	cropID := uuid.New()
	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online",
		`{"image": "data:image/jpeg;base64,aGk=", "cropId": "`+cropID.String()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, service.lastReq.CropID)
	assert.Equal(t, cropID, *service.lastReq.CropID)
}

func TestDiagnoseOnline_RejectsBadCropID(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online",
		`{"image": "data:image/jpeg;base64,aGk=", "cropId": "not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiagnoseOffline_RequiresImageAndCrop(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	for _, body := range []string{
		`{}`,
		`{"image": "data:image/jpeg;base64,aGk="}`,
		`{"cropId": "` + uuid.NewString() + `"}`,
	} {
		rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/offline", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "Missing required fields", payload["message"])
	}
}

func TestDiagnoseOffline_UsesOfflineClassifier(t *testing.T) {
	service := &fakeDiagnoser{result: &domain.DiagnosisResult{}}
	h := &Handlers{Diagnose: NewDiagnoseHandler(service, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/offline",
		`{"image": "data:image/jpeg;base64,aGk=", "cropId": "`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "offline", service.lastClassifier.Name())
}

func TestDiagnoses_List(t *testing.T) {
	history := &fakeHistory{records: []domain.DiagnosisRecord{
		{ID: uuid.New(), CropName: "Tomato", DiseaseName: "Early Blight"},
	}}
	h := &Handlers{Diagnoses: NewDiagnosesHandler(history, &fakeImageSaver{}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/api/v1/diagnoses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultHistoryLimit, history.lastLimit)

	var records []domain.DiagnosisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Tomato", records[0].CropName)
}

func TestDiagnoses_ListAbsorbsStoreFailure(t *testing.T) {
	history := &fakeHistory{listErr: errors.New("db down")}
	h := &Handlers{Diagnoses: NewDiagnosesHandler(history, &fakeImageSaver{}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/api/v1/diagnoses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestDiagnoses_ListClampsLimit(t *testing.T) {
	history := &fakeHistory{}
	h := &Handlers{Diagnoses: NewDiagnosesHandler(history, &fakeImageSaver{}, testLogger())}
	s := newTestServer(t, h)

	doJSON(s, http.MethodGet, "/api/v1/diagnoses?limit=5000", "")
	assert.Equal(t, defaultHistoryLimit, history.lastLimit)

	doJSON(s, http.MethodGet, "/api/v1/diagnoses?limit=5", "")
	assert.Equal(t, 5, history.lastLimit)
}

func TestDiagnoses_CreateRequiresResult(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	for _, body := range []string{`{}`, `{"result": {}}`} {
		rec := doJSON(s, http.MethodPost, "/api/v1/diagnoses", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestDiagnoses_CreateSavesRecord(t *testing.T) {
	history := &fakeHistory{}
	images := &fakeImageSaver{url: "/uploads/saved.jpg"}
	h := &Handlers{Diagnoses: NewDiagnosesHandler(history, images, testLogger())}
	s := newTestServer(t, h)

	diseaseID := uuid.New()
	cropID := uuid.New()
	body := `{
		"result": {
			"disease": {"id": "` + diseaseID.String() + `", "crop_id": "` + cropID.String() + `"},
			"confidence": 0.85,
			"notes": "Leaf spots",
			"isOffline": true
		},
		"imageUrl": "data:image/jpeg;base64,aGk="
	}`

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnoses", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, history.created, 1)
	saved := history.created[0]
	require.NotNil(t, saved.DiseaseID)
	assert.Equal(t, diseaseID, *saved.DiseaseID)
	require.NotNil(t, saved.CropID)
	assert.Equal(t, cropID, *saved.CropID)
	assert.Equal(t, 0.85, saved.ConfidenceScore)
	assert.Equal(t, "Leaf spots", saved.Notes)
	assert.True(t, saved.IsOffline)
	assert.Equal(t, "/uploads/saved.jpg", saved.ImageURL)
	require.Len(t, images.saved, 1)
}

func TestDiagnoses_CreateAbsorbsStoreFailure(t *testing.T) {
	history := &fakeHistory{createErr: errors.New("db down")}
	h := &Handlers{Diagnoses: NewDiagnosesHandler(history, &fakeImageSaver{}, testLogger())}
	s := newTestServer(t, h)

	body := `{"result": {"disease": {"id": "` + uuid.NewString() + `"}}, "imageUrl": "/uploads/x.jpg"}`
	rec := doJSON(s, http.MethodPost, "/api/v1/diagnoses", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCrops_List(t *testing.T) {
	lister := &fakeCropLister{crops: []domain.Crop{{Name: "Tomato"}, {Name: "Rice"}}}
	h := &Handlers{Catalog: NewCatalogHandler(lister, &fakeImporter{}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/api/v1/crops", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var crops []domain.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crops))
	require.Len(t, crops, 2)
	assert.Equal(t, "Tomato", crops[0].Name)
}

func TestCatalogImport(t *testing.T) {
	importer := &fakeImporter{summary: &catalog.ImportSummary{Rows: 3, Crops: 2, Diseases: 3}}
	h := &Handlers{Catalog: NewCatalogHandler(&fakeCropLister{}, importer, testLogger())}
	s := newTestServer(t, h)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Crop,Disease\nTomato,Early Blight\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".csv", importer.lastExt)

	var summary catalog.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Diseases)
}

func TestCatalogImport_MissingFile(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	rec := doJSON(s, http.MethodPost, "/api/v1/catalog/import", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	a := &fakeAssistant{text: "Use neem oil weekly."}
	h := &Handlers{Chat: NewChatHandler(a, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodPost, "/api/v1/chat",
		`{"message": "How do I treat blight?", "language": "hindi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Use neem oil weekly.", resp.Text)
	assert.Equal(t, "hindi", a.lastReq.Language)
}

func TestChat_ValidationErrorPropagates(t *testing.T) {
	a := &fakeAssistant{err: apperrors.BadRequest("Message or image is required")}
	h := &Handlers{Chat: NewChatHandler(a, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodPost, "/api/v1/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	h := &Handlers{Health: NewHealthHandler(map[string]HealthChecker{
		"database": &fakeHealth{status: "up"},
		"cache":    &fakeHealth{status: "up"},
	})}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealth_Degraded(t *testing.T) {
	h := &Handlers{Health: NewHealthHandler(map[string]HealthChecker{
		"database": &fakeHealth{status: "up"},
		"cache":    &fakeHealth{status: "down"},
	})}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth_SkipsNilComponents(t *testing.T) {
	h := &Handlers{Health: NewHealthHandler(map[string]HealthChecker{
		"database": &fakeHealth{status: "up"},
		"cache":    nil,
	})}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Components map[string]map[string]interface{} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Components, "database")
	assert.NotContains(t, body.Components, "cache")
}

func TestErrorHandler_DevModeDetail(t *testing.T) {
	service := &fakeDiagnoser{err: apperrors.InternalWrap(errors.New("downstream boom"), "diagnosis failed")}
	h := &Handlers{Diagnose: NewDiagnoseHandler(service, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())}
	s := newTestServer(t, h)

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online", `{"image": "data:image/jpeg;base64,aGk="}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["error"])
	assert.Equal(t, "downstream boom", body["detail"])
}

func TestErrorHandler_ProductionHidesDetail(t *testing.T) {
	service := &fakeDiagnoser{err: apperrors.InternalWrap(errors.New("downstream boom"), "diagnosis failed")}
	h := &Handlers{Diagnose: NewDiagnoseHandler(service, &stubClassifier{name: "online"}, &stubClassifier{name: "offline"}, testLogger())}

	cfg := testConfig()
	cfg.Environment = "production"
	s := NewServer(cfg, testLogger())
	s.RegisterRoutes(h, "")

	rec := doJSON(s, http.MethodPost, "/api/v1/diagnose/online", `{"image": "data:image/jpeg;base64,aGk="}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "detail")
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	s := newTestServer(t, &Handlers{})

	rec := doJSON(s, http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
