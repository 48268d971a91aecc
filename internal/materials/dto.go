package materials

import (
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// NestedTypeInput creates a type alongside its parent material.
type NestedTypeInput struct {
	Name        string `json:"name" validate:"required"`
	Points      int    `json:"points" validate:"gte=0"`
	IsHazardous bool   `json:"isHazardous"`
}

// CreateMaterialInput is the material creation payload.
type CreateMaterialInput struct {
	Name        string            `json:"name" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	Description *string           `json:"description,omitempty"`
	Instruction *string           `json:"instruction,omitempty"`
	Types       []NestedTypeInput `json:"types,omitempty" validate:"omitempty,dive"`
}

// UpdateMaterialInput patches a material. Nil fields are untouched.
type UpdateMaterialInput struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Instruction *string `json:"instruction,omitempty"`
}

// MaterialTypeDTO is the type shape embedded in material responses.
type MaterialTypeDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	IsHazardous bool    `json:"isHazardous"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// MaterialDTO is the outward material shape.
type MaterialDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description *string           `json:"description,omitempty"`
	Instruction *string           `json:"instruction,omitempty"`
	Types       []MaterialTypeDTO `json:"types"`
}

// MaterialsPageDTO is one page of materials with flat pagination fields.
type MaterialsPageDTO struct {
	Data []MaterialDTO `json:"data"`
	pagination.PageInfo
}

func toMaterialDTO(material *models.Material) MaterialDTO {
	types := make([]MaterialTypeDTO, 0, len(material.Types))
	for _, typ := range material.Types {
		types = append(types, MaterialTypeDTO{
			ID:          typ.ID,
			Name:        typ.Name,
			Points:      typ.Points,
			IsHazardous: typ.IsHazardous,
			ImageURL:    typ.ImageURL,
		})
	}
	return MaterialDTO{
		ID:          material.ID,
		Name:        material.Name,
		Category:    material.Category,
		Description: material.Description,
		Instruction: material.Instruction,
		Types:       types,
	}
}
