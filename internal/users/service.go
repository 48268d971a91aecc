package users

import (
	"context"
	"errors"
	"math"

	"github.com/minhle2212044/greencycle-backend/pkg/config"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/minhle2212044/greencycle-backend/pkg/security"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	Repo     *Repository
	Password config.PasswordConfig
}

// Service exposes profile management and recycling statistics.
type Service interface {
	List(ctx context.Context, p pagination.Params) (UsersPageDTO, error)
	GetByID(ctx context.Context, id int64) (UserDTO, error)
	GetByEmail(ctx context.Context, email string) (UserDTO, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (UserDTO, error)
	Delete(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, newPassword string) error
	RecycleStats(ctx context.Context, userID int64) ([]RecycleStatDTO, error)
}

type service struct {
	repo     *Repository
	password config.PasswordConfig
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{repo: params.Repo, password: params.Password}, nil
}

func (s *service) List(ctx context.Context, p pagination.Params) (UsersPageDTO, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return UsersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	data := make([]UserDTO, 0, len(rows))
	for i := range rows {
		data = append(data, toUserDTO(&rows[i]))
	}
	return UsersPageDTO{Data: data, PageInfo: pagination.NewPageInfo(total, p)}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toUserDTO(user), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toUserDTO(user), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateUserInput) (UserDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Tel != nil {
		updates["tel"] = *input.Tel
	}
	if input.DOB != nil {
		updates["dob"] = *input.DOB
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func (s *service) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	hash, err := security.HashPassword(newPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hashing password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

func (s *service) RecycleStats(ctx context.Context, userID int64) ([]RecycleStatDTO, error) {
	customer, err := s.repo.FindCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	rows, err := s.repo.RecycleStats(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recycle stats")
	}

	total := 0
	for _, row := range rows {
		total += row.TotalKg
	}

	stats := make([]RecycleStatDTO, 0, len(rows))
	for _, row := range rows {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(row.TotalKg)/float64(total)*10000) / 100
		}
		stats = append(stats, RecycleStatDTO{
			Category:   row.Category,
			TotalKg:    row.TotalKg,
			Percentage: pct,
		})
	}
	return stats, nil
}
