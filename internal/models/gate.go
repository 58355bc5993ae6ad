package models

import "github.com/golang-jwt/jwt/v5"

// GateClaims is the token payload minted after a successful password entry.
// The token lifetime equals the protected-action grace window, so expiry is
// the whole re-auth mechanism.
type GateClaims struct {
	jwt.RegisteredClaims
}
