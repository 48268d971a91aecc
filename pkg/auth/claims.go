package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	UserID int64
	Email  string
	Role   enums.UserRole
	JTI    string
}

// TokenClaims represents the typed JWT issued to clients. The subject carries
// the user id; email and role ride along as custom claims.
type TokenClaims struct {
	UserID int64          `json:"user_id"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}
