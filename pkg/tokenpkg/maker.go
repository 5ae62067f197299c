// Package tokenpkg issues and verifies access tokens that prove a request is
// made on behalf of a specific user.
package tokenpkg

import (
	"fmt"
	"time"
)

// Token kinds supported by NewMaker.
const (
	KindPaseto = "paseto"
	KindJWT    = "jwt"
)

// Maker manages tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username and duration.
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid.
	VerifyToken(token string) (*Payload, error)
}

// NewMaker returns the token maker of the given kind.
func NewMaker(kind, symmetricKey string) (Maker, error) {
	switch kind {
	case "", KindPaseto:
		return NewPasetoMaker(symmetricKey)
	case KindJWT:
		return NewJWTMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token kind %q", kind)
}
