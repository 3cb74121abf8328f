package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for a driver account.
func IssueSession(cfg *cfgpkg.Config, userID, email string) (string, error) {
	return issue(cfg, userID, email, RoleUser, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
}

// IssueAdmin signs a short-lived admin token.
func IssueAdmin(cfg *cfgpkg.Config) (string, error) {
	return issue(cfg, "", "", RoleAdmin, time.Duration(cfg.Auth.AdminTTLHours)*time.Hour)
}

func issue(cfg *cfgpkg.Config, userID, email, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "motoristapro",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Auth.JWTSecret))
}

var ErrInvalidToken = errors.New("invalid token")

func Parse(cfg *cfgpkg.Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
