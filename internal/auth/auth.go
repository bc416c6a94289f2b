// internal/auth/auth.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims ties a signed session token to one seat in one room, letting
// a dropped connection prove who it was on reconnect.
type SessionClaims struct {
	PlayerID uuid.UUID `json:"playerId"`
	RoomCode string    `json:"roomCode"`
	Name     string    `json:"name"`
	jwt.RegisteredClaims
}

// CreateSessionToken signs a session token for a seated player. Tokens expire
// after 24 hours, comfortably longer than any table lives.
func CreateSessionToken(secret []byte, playerID uuid.UUID, roomCode, name string) (string, error) {
	claims := SessionClaims{
		PlayerID: playerID,
		RoomCode: roomCode,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
