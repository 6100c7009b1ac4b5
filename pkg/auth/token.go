package auth

import (
	"fmt"
	"time"

	jtoken "github.com/golang-jwt/jwt/v5"
	"transporter-coordinator/pkg/models"
)

const sessionTTL = 72 * time.Hour

// NewSessionToken issues an HS256 session token for the management surface.
func NewSessionToken(secret []byte, user *models.User) (string, error) {
	claims := jtoken.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	token := jtoken.NewWithClaims(jtoken.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSessionToken validates a session token and returns the user id it
// was issued for.
func ParseSessionToken(secret []byte, tokenString string) (uint, error) {
	token, err := jtoken.Parse(tokenString, func(t *jtoken.Token) (any, error) {
		if _, ok := t.Method.(*jtoken.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jtoken.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid session token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("session token missing user id")
	}
	return uint(id), nil
}
