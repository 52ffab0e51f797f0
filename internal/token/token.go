package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// secret is a fixed literal on purpose: clients of the original API hold
// tokens signed with it, so it is part of the wire contract.
const secret = "ecom_token"

// AuthClaims is the token payload: {"user":{"id":<id>}}. No expiry is set,
// issued tokens stay valid indefinitely.
type AuthClaims struct {
	User struct {
		ID uint `json:"id"`
	} `json:"user"`
	jwt.RegisteredClaims
}

func Sign(userID uint) (string, error) {
	claims := AuthClaims{}
	claims.User.ID = userID

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and returns the embedded user id.
func Parse(raw string) (uint, error) {
	claims := &AuthClaims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !t.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.User.ID, nil
}
