package infrastructure

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"task-service/internal/domain/apperrors"
)

const DefaultTokenValidity = 7 * 24 * time.Hour

// JWTService mints and verifies HS256 session tokens carrying the user id.
type JWTService struct {
	secretKey []byte
	validity  time.Duration
}

func NewJWTService(secret string, validity time.Duration) *JWTService {
	if validity == 0 {
		validity = DefaultTokenValidity
	}
	return &JWTService{
		secretKey: []byte(secret),
		validity:  validity,
	}
}

func (j *JWTService) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(j.validity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ParseToken verifies signature and expiry and returns the embedded user id.
// Every failure mode collapses into the same auth error.
func (j *JWTService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Auth("unexpected signing method")
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.Auth("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperrors.Auth("invalid token")
	}
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, apperrors.Auth("invalid token")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, apperrors.Auth("invalid token")
	}
	return userID, nil
}
