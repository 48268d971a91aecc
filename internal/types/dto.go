package types

import (
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// CreateTypeInput adds a type to an existing material. The image rides in as
// a separate multipart part.
type CreateTypeInput struct {
	Name        string `json:"name" validate:"required"`
	Points      int    `json:"points" validate:"gte=0"`
	IsHazardous bool   `json:"isHazardous"`
}

// UpdateTypeInput patches a type keyed on its current name. Nil fields are
// untouched.
type UpdateTypeInput struct {
	Name        *string `json:"name,omitempty"`
	Points      *int    `json:"points,omitempty" validate:"omitempty,gte=0"`
	IsHazardous *bool   `json:"isHazardous,omitempty"`
}

// TypeDTO is the outward type shape.
type TypeDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	IsHazardous bool    `json:"isHazardous"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	MaterialID  int64   `json:"materialId"`
}

// TypesPageDTO is one page of types with flat pagination fields.
type TypesPageDTO struct {
	Data []TypeDTO `json:"data"`
	pagination.PageInfo
}

func toTypeDTO(typ *models.Type) TypeDTO {
	return TypeDTO{
		ID:          typ.ID,
		Name:        typ.Name,
		Points:      typ.Points,
		IsHazardous: typ.IsHazardous,
		ImageURL:    typ.ImageURL,
		MaterialID:  typ.MaterialID,
	}
}
