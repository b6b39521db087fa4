package repositories

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Pratham9108106876/farm/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB creates a PostgreSQL testcontainer for testing
func setupTestDB(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(pgdriver.Open(connStr), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.Crop{},
		&domain.Disease{},
		&domain.Diagnosis{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCropRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCropRepository(db, quietLogger())
	ctx := context.Background()

	crop := &domain.Crop{Name: "Tomato", ScientificName: "Solanum lycopersicum"}
	require.NoError(t, repo.Create(ctx, crop))
	assert.NotEqual(t, uuid.Nil, crop.ID)

	byID, err := repo.FindByID(ctx, crop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", byID.Name)

	byName, err := repo.FindByName(ctx, "tomato")
	require.NoError(t, err)
	assert.Equal(t, crop.ID, byName.ID)

	_, err = repo.FindByName(ctx, "mango")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCropRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCropRepository(db, quietLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Crop{Name: "Rice"}))
	require.NoError(t, repo.Create(ctx, &domain.Crop{Name: "Cotton"}))

	crops, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, crops, 2)
}

func TestCropRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCropRepository(db, quietLogger())
	ctx := context.Background()

	crop := &domain.Crop{Name: "Wheat"}
	require.NoError(t, repo.Upsert(ctx, crop))
	firstID := crop.ID

	crop.Description = "Winter wheat"
	require.NoError(t, repo.Upsert(ctx, crop))
	assert.Equal(t, firstID, crop.ID)

	crops, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, crops, 1)
}

func TestDiseaseRepository_FindByCrop(t *testing.T) {
	db := setupTestDB(t)
	cropRepo := NewCropRepository(db, quietLogger())
	diseaseRepo := NewDiseaseRepository(db, quietLogger())
	ctx := context.Background()

	tomato := &domain.Crop{Name: "Tomato"}
	require.NoError(t, cropRepo.Create(ctx, tomato))
	rice := &domain.Crop{Name: "Rice"}
	require.NoError(t, cropRepo.Create(ctx, rice))

	require.NoError(t, diseaseRepo.Upsert(ctx, &domain.Disease{
		CropID: tomato.ID, Name: "Early Blight", Symptoms: "Brown spots",
	}))
	require.NoError(t, diseaseRepo.Upsert(ctx, &domain.Disease{
		CropID: tomato.ID, Name: "Late Blight",
	}))
	require.NoError(t, diseaseRepo.Upsert(ctx, &domain.Disease{
		CropID: rice.ID, Name: "Blast Disease",
	}))

	diseases, err := diseaseRepo.FindByCrop(ctx, tomato.ID)
	require.NoError(t, err)
	assert.Len(t, diseases, 2)

	none, err := diseaseRepo.FindByCrop(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDiseaseRepository_ListTop(t *testing.T) {
	db := setupTestDB(t)
	cropRepo := NewCropRepository(db, quietLogger())
	diseaseRepo := NewDiseaseRepository(db, quietLogger())
	ctx := context.Background()

	crop := &domain.Crop{Name: "Potato"}
	require.NoError(t, cropRepo.Create(ctx, crop))

	for _, name := range []string{"Black Scurf", "Common Scab", "Late Blight"} {
		require.NoError(t, diseaseRepo.Upsert(ctx, &domain.Disease{CropID: crop.ID, Name: name}))
	}

	top, err := diseaseRepo.ListTop(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestDiseaseRepository_UpsertUpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	cropRepo := NewCropRepository(db, quietLogger())
	diseaseRepo := NewDiseaseRepository(db, quietLogger())
	ctx := context.Background()

	crop := &domain.Crop{Name: "Tomato"}
	require.NoError(t, cropRepo.Create(ctx, crop))

	disease := &domain.Disease{CropID: crop.ID, Name: "Early Blight"}
	require.NoError(t, diseaseRepo.Upsert(ctx, disease))

	updated := &domain.Disease{CropID: crop.ID, Name: "Early Blight", Symptoms: "Target-like rings"}
	require.NoError(t, diseaseRepo.Upsert(ctx, updated))

	diseases, err := diseaseRepo.FindByCrop(ctx, crop.ID)
	require.NoError(t, err)
	require.Len(t, diseases, 1)
	assert.Equal(t, "Target-like rings", diseases[0].Symptoms)
}

func TestDiagnosisRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	cropRepo := NewCropRepository(db, quietLogger())
	diseaseRepo := NewDiseaseRepository(db, quietLogger())
	diagnosisRepo := NewDiagnosisRepository(db, quietLogger())
	ctx := context.Background()

	crop := &domain.Crop{Name: "Tomato"}
	require.NoError(t, cropRepo.Create(ctx, crop))
	disease := &domain.Disease{CropID: crop.ID, Name: "Early Blight"}
	require.NoError(t, diseaseRepo.Upsert(ctx, disease))

	require.NoError(t, diagnosisRepo.Create(ctx, &domain.Diagnosis{
		CropID:          &crop.ID,
		DiseaseID:       &disease.ID,
		ImageURL:        "/uploads/a.jpg",
		ConfidenceScore: 0.85,
		Notes:           "Ring lesions on lower leaves",
	}))

	records, err := diagnosisRepo.ListRecords(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Tomato", records[0].CropName)
	assert.Equal(t, "Early Blight", records[0].DiseaseName)
	assert.Equal(t, 0.85, records[0].ConfidenceScore)
}

func TestDiagnosisRepository_ListHandlesMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	diagnosisRepo := NewDiagnosisRepository(db, quietLogger())
	ctx := context.Background()

	// Fallback diagnoses carry no crop or disease rows
	require.NoError(t, diagnosisRepo.Create(ctx, &domain.Diagnosis{
		ImageURL:        "/placeholder-image.jpg",
		ConfidenceScore: 0.6,
		IsOffline:       true,
	}))

	records, err := diagnosisRepo.ListRecords(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].CropName)
	assert.Equal(t, "Unknown", records[0].DiseaseName)
	assert.True(t, records[0].IsOffline)
}

func TestDiagnosisRepository_ListOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	diagnosisRepo := NewDiagnosisRepository(db, quietLogger())
	ctx := context.Background()

	require.NoError(t, diagnosisRepo.Create(ctx, &domain.Diagnosis{Notes: "first", ConfidenceScore: 0.5}))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, diagnosisRepo.Create(ctx, &domain.Diagnosis{Notes: "second", ConfidenceScore: 0.5}))

	records, err := diagnosisRepo.ListRecords(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Notes)
}
