// Package jwt wraps token verification. Token issuance belongs to the
// external identity service; this backend only validates bearer tokens and
// reads the employee_id/role claims.
package jwt

import (
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidToken = errors.New("Invalid token")

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ParseEmployeeID(tokenString string) (string, error)
}

type jwtService struct {
	auth *jwtauth.JWTAuth
}

func NewJWTService(secret string) Service {
	return &jwtService{
		auth: jwtauth.New("HS256", []byte(secret), nil),
	}
}

func (s *jwtService) JWTAuth() *jwtauth.JWTAuth {
	return s.auth
}

// ParseEmployeeID validates the token and extracts the employee_id claim.
func (s *jwtService) ParseEmployeeID(tokenString string) (string, error) {
	token, err := s.auth.Decode(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	if err := jwt.Validate(token); err != nil {
		return "", ErrInvalidToken
	}

	employeeID, ok := token.PrivateClaims()["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", ErrInvalidToken
	}

	return employeeID, nil
}
