package auth

// SignupInput is the registration payload. License is required when the
// role is COLLECTOR and ignored otherwise.
type SignupInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required,oneof=CUSTOMER COLLECTOR"`
	License  *string `json:"license,omitempty"`
	Tel      *string `json:"tel,omitempty"`
	Address  *string `json:"address,omitempty"`
	Gender   *string `json:"gender,omitempty"`
}

// SigninInput is the login payload.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupResultDTO acknowledges a successful registration without leaking
// credentials or tokens.
type SignupResultDTO struct {
	Message string `json:"message"`
}

// TokenPairDTO is the signin response.
type TokenPairDTO struct {
	UserID       int64  `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

// RefreshResultDTO carries a newly rotated refresh token.
type RefreshResultDTO struct {
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenDTO carries a re-signed access token.
type AccessTokenDTO struct {
	AccessToken string `json:"accessToken"`
}

// ClaimsDTO is the public projection of verified token claims.
type ClaimsDTO struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
