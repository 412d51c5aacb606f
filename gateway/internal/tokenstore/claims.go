package tokenstore

import (
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is what the gateway reads from a session token. The core service
// signs and verifies tokens; the signature is not checked here.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrMalformedToken = errors.New("malformed auth token")

// ParseClaims returns the acting user recorded in token.
func ParseClaims(token string) (model.Actor, error) {
	claims := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.Actor{}, errors.Wrap(ErrMalformedToken, err.Error())
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return model.Actor{}, errors.Wrap(ErrMalformedToken, "no user id")
	}
	role, ok := model.ParseRole(claims.Role)
	if !ok {
		role = model.RoleTenant
	}
	return model.Actor{UserID: id, Role: role}, nil
}
