package types

import (
	"context"
	"errors"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
	"gorm.io/gorm"
)

const imageFolder = "types"

// ServiceParams groups dependencies for the types service. Uploader may be
// nil when image uploads are disabled.
type ServiceParams struct {
	DB       *db.Client
	Uploader gcs.Uploader
}

// Service exposes collectable-type operations keyed on the unique name.
type Service interface {
	AddToMaterial(ctx context.Context, materialID int64, input CreateTypeInput, image *gcs.File) (TypeDTO, error)
	GetByName(ctx context.Context, name string) (TypeDTO, error)
	UpdateByName(ctx context.Context, name string, input UpdateTypeInput, image *gcs.File) (TypeDTO, error)
	DeleteByName(ctx context.Context, name string) error
	List(ctx context.Context, page, limit int) (TypesPageDTO, error)
	ListByMaterial(ctx context.Context, materialID int64, page, limit int) (TypesPageDTO, error)
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

func (s *service) AddToMaterial(ctx context.Context, materialID int64, input CreateTypeInput, image *gcs.File) (TypeDTO, error) {
	repo := NewRepository(s.db.DB())

	exists, err := repo.MaterialExists(ctx, materialID)
	if err != nil {
		return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check material")
	}
	if !exists {
		return TypeDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
	}

	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload type image")
	}

	typ := &models.Type{
		Name:        input.Name,
		Points:      input.Points,
		IsHazardous: input.IsHazardous,
		ImageURL:    imageURL,
		MaterialID:  materialID,
	}
	if err := repo.Create(ctx, typ); err != nil {
		if db.IsUniqueViolation(err, "") {
			return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "type name already exists")
		}
		return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create type")
	}
	return toTypeDTO(typ), nil
}

func (s *service) GetByName(ctx context.Context, name string) (TypeDTO, error) {
	repo := NewRepository(s.db.DB())
	typ, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "type not found")
		}
		return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load type")
	}
	return toTypeDTO(typ), nil
}

func (s *service) UpdateByName(ctx context.Context, name string, input UpdateTypeInput, image *gcs.File) (TypeDTO, error) {
	patch := map[string]interface{}{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Points != nil {
		patch["points"] = *input.Points
	}
	if input.IsHazardous != nil {
		patch["is_hazardous"] = *input.IsHazardous
	}

	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload type image")
	}
	if imageURL != nil {
		patch["image_url"] = *imageURL
	}

	current := name
	if input.Name != nil {
		current = *input.Name
	}

	repo := NewRepository(s.db.DB())
	if len(patch) > 0 {
		if err := repo.UpdateByName(ctx, name, patch); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "type not found")
			}
			if db.IsUniqueViolation(err, "") {
				return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "type name already exists")
			}
			return TypeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update type")
		}
	}
	return s.GetByName(ctx, current)
}

func (s *service) DeleteByName(ctx context.Context, name string) error {
	repo := NewRepository(s.db.DB())
	if err := repo.DeleteByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "type not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete type")
	}
	return nil
}

func (s *service) List(ctx context.Context, page, limit int) (TypesPageDTO, error) {
	p := pagination.Normalize(page, limit)
	repo := NewRepository(s.db.DB())

	result, total, err := repo.List(ctx, p)
	if err != nil {
		return TypesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list types")
	}
	return toPage(result, total, p), nil
}

func (s *service) ListByMaterial(ctx context.Context, materialID int64, page, limit int) (TypesPageDTO, error) {
	repo := NewRepository(s.db.DB())

	exists, err := repo.MaterialExists(ctx, materialID)
	if err != nil {
		return TypesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check material")
	}
	if !exists {
		return TypesPageDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
	}

	p := pagination.Normalize(page, limit)
	result, total, err := repo.ListByMaterial(ctx, materialID, p)
	if err != nil {
		return TypesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list material types")
	}
	return toPage(result, total, p), nil
}

func toPage(result []models.Type, total int64, p pagination.Params) TypesPageDTO {
	data := make([]TypeDTO, 0, len(result))
	for i := range result {
		data = append(data, toTypeDTO(&result[i]))
	}
	return TypesPageDTO{Data: data, PageInfo: pagination.NewPageInfo(total, p)}
}
