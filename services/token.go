package services

import (
	"fmt"
	"time"

	"invoiceapi/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint   `json:"userid"`
	Email  string `json:"email"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và kiểm tra access token HS256
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey string, ttl time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// GenerateToken tạo access token cho user
func (s *TokenService) GenerateToken(userInfo UserInfo) (string, error) {
	now := s.now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ParseToken verifies the signature and expiry and returns the embedded user.
func (s *TokenService) ParseToken(tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.UserInfo.UserId == 0 {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	return claims.UserInfo, nil
}
