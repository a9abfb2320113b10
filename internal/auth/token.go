package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
)

const issuer = "order-list"

// Claims is the JWT payload issued to staff users.
type Claims struct {
	UserID int64    `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for viewer valid for ttl.
func IssueToken(secret []byte, ttl time.Duration, viewer domain.Viewer, now time.Time) (string, error) {
	claims := Claims{
		UserID: viewer.UserID,
		Roles:  viewer.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", viewer.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates raw and returns the viewer it was issued for.
func ParseToken(secret []byte, raw string) (domain.Viewer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Viewer{}, domain.UnauthorizedError{Msg: "missing token"}
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "token expired"
		}
		return domain.Viewer{}, domain.UnauthorizedError{Msg: msg, Err: err}
	}
	if claims.UserID <= 0 {
		return domain.Viewer{}, domain.UnauthorizedError{Msg: "invalid token subject"}
	}
	return domain.Viewer{UserID: claims.UserID, Roles: claims.Roles}, nil
}
