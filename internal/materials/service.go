package materials

import (
	"context"
	"errors"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the materials service.
type ServiceParams struct {
	DB *db.Client
}

// Service exposes material catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateMaterialInput) (MaterialDTO, error)
	List(ctx context.Context, page, limit int) (MaterialsPageDTO, error)
	GetByID(ctx context.Context, id int64) (MaterialDTO, error)
	Update(ctx context.Context, id int64, input UpdateMaterialInput) (MaterialDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db *db.Client
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Create(ctx context.Context, input CreateMaterialInput) (MaterialDTO, error) {
	material := &models.Material{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Instruction: input.Instruction,
	}
	for _, typ := range input.Types {
		material.Types = append(material.Types, models.Type{
			Name:        typ.Name,
			Points:      typ.Points,
			IsHazardous: typ.IsHazardous,
		})
	}

	repo := NewRepository(s.db.DB())
	if err := repo.Create(ctx, material); err != nil {
		if db.IsUniqueViolation(err, "") {
			return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "type name already exists")
		}
		return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create material")
	}
	return toMaterialDTO(material), nil
}

func (s *service) List(ctx context.Context, page, limit int) (MaterialsPageDTO, error) {
	p := pagination.Normalize(page, limit)

	repo := NewRepository(s.db.DB())
	materials, total, err := repo.List(ctx, p)
	if err != nil {
		return MaterialsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}

	data := make([]MaterialDTO, 0, len(materials))
	for i := range materials {
		data = append(data, toMaterialDTO(&materials[i]))
	}
	return MaterialsPageDTO{Data: data, PageInfo: pagination.NewPageInfo(total, p)}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (MaterialDTO, error) {
	repo := NewRepository(s.db.DB())
	material, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "material not found")
		}
		return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
	}
	return toMaterialDTO(material), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateMaterialInput) (MaterialDTO, error) {
	patch := map[string]interface{}{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Category != nil {
		patch["category"] = *input.Category
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Instruction != nil {
		patch["instruction"] = *input.Instruction
	}
	if len(patch) == 0 {
		return s.GetByID(ctx, id)
	}

	repo := NewRepository(s.db.DB())
	if err := repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "material not found")
		}
		return MaterialDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update material")
	}
	return s.GetByID(ctx, id)
}

// Delete removes the material and its child types in one transaction.
func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.DeleteTypes(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "material not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete material")
	}
	return nil
}
