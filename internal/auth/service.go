package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/minhle2212044/greencycle-backend/internal/users"
	pkgauth "github.com/minhle2212044/greencycle-backend/pkg/auth"
	"github.com/minhle2212044/greencycle-backend/pkg/config"
	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/security"
	"gorm.io/gorm"
)

// Messages returned verbatim to clients. Signin failures share one message
// so the response does not reveal whether the email exists.
const (
	msgCredentialsTaken     = "credentials taken"
	msgCredentialsIncorrect = "credentials incorrect"
	msgSignupSuccess        = "signup success"
	msgSigninSuccess        = "signin success"
)

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	DB       *db.Client
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Now      func() time.Time
}

// Service exposes registration and token lifecycle operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (SignupResultDTO, error)
	Signin(ctx context.Context, input SigninInput) (TokenPairDTO, error)
	RefreshToken(ctx context.Context, userID int64) (RefreshResultDTO, error)
	ReSignAccessToken(ctx context.Context, refreshToken string) (AccessTokenDTO, error)
	VerifyToken(ctx context.Context, token string) (ClaimsDTO, error)
}

type service struct {
	db       *db.Client
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.JWT.Secret == "" || params.JWT.RefreshSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secrets are required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:       params.DB,
		jwt:      params.JWT,
		password: params.Password,
		now:      now,
	}, nil
}

// Signup creates the user and exactly one role extension row in a single
// transaction.
func (s *service) Signup(ctx context.Context, input SignupInput) (SignupResultDTO, error) {
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return SignupResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}
	if role == enums.UserRoleCollector && (input.License == nil || strings.TrimSpace(*input.License) == "") {
		return SignupResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "license is required for collectors")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return SignupResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hashing password")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		user := &models.User{
			Email:        email,
			PasswordHash: hash,
			Name:         input.Name,
			Tel:          input.Tel,
			Address:      input.Address,
			Gender:       input.Gender,
			Role:         role,
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			return err
		}

		switch role {
		case enums.UserRoleCustomer:
			return repo.CreateCustomer(ctx, &models.Customer{UserID: user.ID})
		case enums.UserRoleCollector:
			return repo.CreateCollector(ctx, &models.Collector{UserID: user.ID, License: strings.TrimSpace(*input.License)})
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return SignupResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgCredentialsTaken)
		}
		return SignupResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return SignupResultDTO{Message: msgSignupSuccess}, nil
}

// Signin verifies credentials and issues the access/refresh token pair. The
// refresh token is persisted on the user row so it can be rotated later.
func (s *service) Signin(ctx context.Context, input SigninInput) (TokenPairDTO, error) {
	repo := users.NewRepository(s.db.DB())
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, msgCredentialsIncorrect)
		}
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return TokenPairDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, msgCredentialsIncorrect)
	}

	payload := pkgauth.TokenPayload{UserID: user.ID, Email: user.Email, Role: user.Role}
	now := s.now()

	access, err := pkgauth.MintAccessToken(s.jwt, now, payload)
	if err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refresh, err := pkgauth.MintRefreshToken(s.jwt, now, payload)
	if err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint refresh token")
	}

	if err := repo.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return TokenPairDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return TokenPairDTO{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		Message:      msgSigninSuccess,
	}, nil
}

// RefreshToken rotates the persisted refresh token for an authenticated user.
func (s *service) RefreshToken(ctx context.Context, userID int64) (RefreshResultDTO, error) {
	repo := users.NewRepository(s.db.DB())

	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RefreshResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return RefreshResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	refresh, err := pkgauth.MintRefreshToken(s.jwt, s.now(), pkgauth.TokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return RefreshResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint refresh token")
	}

	if err := repo.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return RefreshResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return RefreshResultDTO{RefreshToken: refresh}, nil
}

// ReSignAccessToken exchanges a valid refresh token for a new access token.
func (s *service) ReSignAccessToken(ctx context.Context, refreshToken string) (AccessTokenDTO, error) {
	claims, err := pkgauth.ParseRefreshToken(s.jwt, refreshToken)
	if err != nil {
		return AccessTokenDTO{}, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid refresh token")
	}

	access, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.TokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	if err != nil {
		return AccessTokenDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return AccessTokenDTO{AccessToken: access}, nil
}

// VerifyToken parses an access token and returns its claims.
func (s *service) VerifyToken(ctx context.Context, token string) (ClaimsDTO, error) {
	claims, err := pkgauth.ParseAccessToken(s.jwt, token)
	if err != nil {
		return ClaimsDTO{}, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid token")
	}
	return ClaimsDTO{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   string(claims.Role),
	}, nil
}
