// Package authenticating valida os tokens JWT emitidos pelo serviço de usuários e extrai
// deles o recorte de visibilidade do chamador.
package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-ops-api/internal/config"
	"github.com/vfg2006/sales-ops-api/internal/domain"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	GenerateToken(claims domain.Claims) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
}

// GenerateToken assina as claims com HS256. Sem expiração informada vale por 24h.
func (s *Service) GenerateToken(claims domain.Claims) (string, error) {
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(s.now().Add(tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
