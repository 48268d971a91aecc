package users

import (
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// UserDTO is the public profile projection; the password hash and refresh
// token never leave the service layer.
type UserDTO struct {
	ID        int64          `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Tel       *string        `json:"tel,omitempty"`
	DOB       *time.Time     `json:"dob,omitempty"`
	Address   *string        `json:"address,omitempty"`
	Gender    *string        `json:"gender,omitempty"`
	Role      enums.UserRole `json:"role"`
	Points    *int           `json:"points,omitempty"`
	License   *string        `json:"license,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// UsersPageDTO is the paginated user listing with flat pagination fields.
type UsersPageDTO struct {
	Data []UserDTO `json:"data"`
	pagination.PageInfo
}

// UpdateUserInput is the explicit patch surface for profile updates; nil
// fields are left untouched.
type UpdateUserInput struct {
	Name    *string    `json:"name,omitempty"`
	Tel     *string    `json:"tel,omitempty"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address *string    `json:"address,omitempty"`
	Gender  *string    `json:"gender,omitempty"`
}

// RecycleStatDTO is one material-category slice of a customer's recycling history.
type RecycleStatDTO struct {
	Category   string  `json:"category"`
	TotalKg    int     `json:"totalKg"`
	Percentage float64 `json:"percentage"`
}

func toUserDTO(user *models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Tel:       user.Tel,
		DOB:       user.DOB,
		Address:   user.Address,
		Gender:    user.Gender,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.Customer != nil {
		points := user.Customer.Points
		dto.Points = &points
	}
	if user.Collector != nil {
		license := user.Collector.License
		dto.License = &license
	}
	return dto
}
