package centers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
	"gorm.io/gorm"
)

const imageFolder = "centers"

// ServiceParams groups dependencies for the centers service. Uploader may be
// nil when image uploads are disabled.
type ServiceParams struct {
	DB       *db.Client
	Uploader gcs.Uploader
}

// Service exposes collection-center operations.
type Service interface {
	Create(ctx context.Context, input CreateCenterInput, image *gcs.File) (CenterDTO, error)
	List(ctx context.Context, page, limit int) (CentersPageDTO, error)
	GetByID(ctx context.Context, id int64) (CenterDTO, error)
	Update(ctx context.Context, id int64, input UpdateCenterInput, image *gcs.File) (CenterDTO, error)
	Delete(ctx context.Context, id int64) error
	AddCollectableTypes(ctx context.Context, centerID int64, input AddCollectablesInput) (CollectablesResultDTO, error)
	AddSchedules(ctx context.Context, centerID int64, input AddSchedulesInput) ([]ScheduleDTO, error)
}

type service struct {
	db       *db.Client
	uploader gcs.Uploader
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{db: params.DB, uploader: params.Uploader}, nil
}

func (s *service) Create(ctx context.Context, input CreateCenterInput, image *gcs.File) (CenterDTO, error) {
	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload center image")
	}

	center := &models.Center{
		Name:         input.Name,
		Address:      input.Address,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactTel:   input.ContactTel,
		ImageURL:     imageURL,
		CollectorID:  input.CollectorID,
	}
	for _, d := range input.WorkingDays {
		center.WorkingDays = append(center.WorkingDays, models.CenterDay{
			Day:       d.Day,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	repo := NewRepository(s.db.DB())
	if err := repo.Create(ctx, center); err != nil {
		return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create center")
	}
	return toCenterDTO(center), nil
}

func (s *service) List(ctx context.Context, page, limit int) (CentersPageDTO, error) {
	p := pagination.Normalize(page, limit)

	repo := NewRepository(s.db.DB())
	centers, total, err := repo.List(ctx, p)
	if err != nil {
		return CentersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list centers")
	}

	data := make([]CenterDTO, 0, len(centers))
	for i := range centers {
		data = append(data, toCenterDTO(&centers[i]))
	}
	return CentersPageDTO{Data: data, PageInfo: pagination.NewPageInfo(total, p)}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (CenterDTO, error) {
	repo := NewRepository(s.db.DB())
	center, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "center not found")
		}
		return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load center")
	}
	return toCenterDTO(center), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateCenterInput, image *gcs.File) (CenterDTO, error) {
	patch := map[string]interface{}{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Address != nil {
		patch["address"] = *input.Address
	}
	if input.ContactName != nil {
		patch["contact_name"] = *input.ContactName
	}
	if input.ContactEmail != nil {
		patch["contact_email"] = *input.ContactEmail
	}
	if input.ContactTel != nil {
		patch["contact_tel"] = *input.ContactTel
	}
	if input.CollectorID != nil {
		patch["collector_id"] = *input.CollectorID
	}

	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload center image")
	}
	if imageURL != nil {
		patch["image_url"] = *imageURL
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if len(patch) > 0 {
			if err := repo.Update(ctx, id, patch); err != nil {
				return err
			}
		} else if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		if input.WorkingDays != nil {
			days := make([]models.CenterDay, 0, len(*input.WorkingDays))
			for _, d := range *input.WorkingDays {
				days = append(days, models.CenterDay{Day: d.Day, StartTime: d.StartTime, EndTime: d.EndTime})
			}
			return repo.ReplaceWorkingDays(ctx, id, days)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "center not found")
		}
		return CenterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update center")
	}

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	repo := NewRepository(s.db.DB())
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "center not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete center")
	}
	return nil
}

// AddCollectableTypes validates every name against the types table before
// linking; unknown names fail the whole request.
func (s *service) AddCollectableTypes(ctx context.Context, centerID int64, input AddCollectablesInput) (CollectablesResultDTO, error) {
	repo := NewRepository(s.db.DB())

	if _, err := repo.FindByID(ctx, centerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CollectablesResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "center not found")
		}
		return CollectablesResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load center")
	}

	known, err := repo.ExistingTypeNames(ctx, input.Names)
	if err != nil {
		return CollectablesResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check type names")
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[name] = struct{}{}
	}
	var unknown []string
	for _, name := range input.Names {
		if _, ok := knownSet[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return CollectablesResultDTO{}, pkgerrors.New(
			pkgerrors.CodeNotFound,
			fmt.Sprintf("unknown types: %s", strings.Join(unknown, ", ")),
		)
	}

	if err := repo.AddCollects(ctx, centerID, input.Names); err != nil {
		return CollectablesResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link collectable types")
	}

	return CollectablesResultDTO{Message: "collectable types added", Names: input.Names}, nil
}

func (s *service) AddSchedules(ctx context.Context, centerID int64, input AddSchedulesInput) ([]ScheduleDTO, error) {
	repo := NewRepository(s.db.DB())

	if _, err := repo.FindByID(ctx, centerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "center not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load center")
	}

	schedules := make([]models.Schedule, 0, len(input.Schedules))
	for _, slot := range input.Schedules {
		schedules = append(schedules, models.Schedule{
			CenterID:  centerID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	if err := repo.AddSchedules(ctx, schedules); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append schedules")
	}

	out := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ScheduleDTO{ID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out, nil
}
