package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/witter/internal/common"
)

// Claims is the identity payload the backend embeds in issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Handle   string `json:"handle"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DecodeIdentity extracts the display identity from a backend-issued token.
// The signature is NOT verified: verification is the backend's job, the
// client only needs the embedded display fields.
func DecodeIdentity(tokenString string) (Identity, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.Handle == "" {
		return Identity{}, fmt.Errorf("%w: no handle claim", common.ErrInvalidToken)
	}
	return Identity{
		Handle:   claims.Handle,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
