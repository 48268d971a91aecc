package centers

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUploader struct {
	uploads []string
}

func (s *stubUploader) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	s.uploads = append(s.uploads, folder+"/"+filename)
	return fmt.Sprintf("https://cdn.test/%s/%s", folder, filename), nil
}

func setupCentersService(t *testing.T) (Service, *gorm.DB, *stubUploader) {
	t.Helper()
	conn := setupCentersTestDB(t)
	uploader := &stubUploader{}
	svc, err := NewService(ServiceParams{DB: db.NewFromConn(conn), Uploader: uploader})
	require.NoError(t, err)
	return svc, conn, uploader
}

func TestServiceCreateWithImageAndDays(t *testing.T) {
	svc, _, uploader := setupCentersService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateCenterInput{
		Name:    "Harbor",
		Address: "9 Quay Rd",
		WorkingDays: []WorkingDayInput{
			{Day: "MONDAY", StartTime: "08:00", EndTime: "16:00"},
		},
	}, &gcs.File{Filename: "harbor.png", ContentType: "image/png", Data: []byte("img")})
	require.NoError(t, err)

	require.NotNil(t, dto.ImageURL)
	assert.Contains(t, *dto.ImageURL, "https://cdn.test/centers/")
	require.Len(t, dto.WorkingDays, 1)
	assert.Equal(t, "MONDAY", dto.WorkingDays[0].Day)
	assert.Len(t, uploader.uploads, 1)
}

func TestServiceListMarshalsFlatPageFields(t *testing.T) {
	svc, _, _ := setupCentersService(t)
	ctx := context.Background()

	for _, name := range []string{"North", "South", "East"} {
		_, err := svc.Create(ctx, CreateCenterInput{Name: name, Address: name + " St"}, nil)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total":3`)
	assert.Contains(t, string(raw), `"page":2`)
	assert.Contains(t, string(raw), `"limit":2`)
	assert.NotContains(t, string(raw), `"meta"`)
	assert.NotContains(t, string(raw), `"lastPage"`)
}

func TestServiceUpdateReplacesWorkingDays(t *testing.T) {
	svc, conn, _ := setupCentersService(t)
	ctx := context.Background()

	center := seedCenter(t, conn, "Patch")
	require.NoError(t, conn.Create(&models.CenterDay{
		CenterID: center.ID, Day: "MONDAY", StartTime: "08:00", EndTime: "16:00",
	}).Error)

	newName := "Patched"
	days := []WorkingDayInput{
		{Day: "SATURDAY", StartTime: "10:00", EndTime: "13:00"},
		{Day: "SUNDAY", StartTime: "10:00", EndTime: "13:00"},
	}
	dto, err := svc.Update(ctx, center.ID, UpdateCenterInput{Name: &newName, WorkingDays: &days}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Patched", dto.Name)
	require.Len(t, dto.WorkingDays, 2)
	assert.Equal(t, "SATURDAY", dto.WorkingDays[0].Day)
}

func TestServiceUpdateMissingCenter(t *testing.T) {
	svc, _, _ := setupCentersService(t)

	name := "ghost"
	_, err := svc.Update(context.Background(), 404, UpdateCenterInput{Name: &name}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceAddCollectablesRejectsUnknownNames(t *testing.T) {
	svc, conn, _ := setupCentersService(t)
	ctx := context.Background()

	center := seedCenter(t, conn, "Strict")
	seedType(t, conn, "aluminium can", 12)

	_, err := svc.AddCollectableTypes(ctx, center.ID, AddCollectablesInput{
		Names: []string{"aluminium can", "mystery goo"},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Contains(t, err.Error(), "mystery goo")

	// Nothing was linked on the failed request.
	var count int64
	require.NoError(t, conn.Model(&models.CenterCollect{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestServiceAddCollectablesLinksKnownNames(t *testing.T) {
	svc, conn, _ := setupCentersService(t)
	ctx := context.Background()

	center := seedCenter(t, conn, "Open")
	seedType(t, conn, "pet bottle", 6)

	result, err := svc.AddCollectableTypes(ctx, center.ID, AddCollectablesInput{Names: []string{"pet bottle"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"pet bottle"}, result.Names)

	dto, err := svc.GetByID(ctx, center.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pet bottle"}, dto.Collects)
}

func TestServiceAddSchedulesAppends(t *testing.T) {
	svc, conn, _ := setupCentersService(t)
	ctx := context.Background()

	center := seedCenter(t, conn, "Slots")
	start := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	created, err := svc.AddSchedules(ctx, center.ID, AddSchedulesInput{
		Schedules: []ScheduleInput{
			{StartTime: start, EndTime: start.Add(2 * time.Hour)},
			{StartTime: start.Add(24 * time.Hour), EndTime: start.Add(26 * time.Hour)},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)

	dto, err := svc.GetByID(ctx, center.ID)
	require.NoError(t, err)
	assert.Len(t, dto.Schedules, 2)
}

func TestServiceDeleteMissingCenter(t *testing.T) {
	svc, _, _ := setupCentersService(t)

	err := svc.Delete(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
