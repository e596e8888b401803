package types

import (
	"github.com/google/uuid"
)

// TokenClaims is the identity a verified bearer token asserts.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
}
