package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims keeps the {"user":{"id":...}} payload existing clients decode.
type sessionClaims struct {
	User sessionUser `json:"user"`
	jwt.RegisteredClaims
}

type sessionUser struct {
	ID string `json:"id"`
}

func (u *authUsecase) generateSessionToken(userID string) (string, error) {
	now := u.now()
	claims := sessionClaims{
		User: sessionUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.config.JWTExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (u *authUsecase) ParseSessionToken(tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	if claims.User.ID == "" {
		return "", ErrUnauthorized
	}
	return claims.User.ID, nil
}
