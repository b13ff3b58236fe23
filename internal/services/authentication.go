package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"goldium/internal/models"
)

type CustomClaims struct {
	WalletAddress string `json:"wallet_address"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	if secret == "" {
		return nil, errors.New("empty JWT secret")
	}
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(session *models.WalletSession) (string, error) {
	claims := CustomClaims{
		WalletAddress: session.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SESSION_TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.WalletSession, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}
	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok || claims.WalletAddress == "" {
		return nil, errors.New("invalid token claims")
	}

	return &models.WalletSession{WalletAddress: claims.WalletAddress}, nil
}
