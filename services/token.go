package services

import (
	"os"
	"time"

	"restay/errors"

	"github.com/dgrijalva/jwt-go"
)

// UserInfo is the identity payload embedded in access tokens.
type UserInfo struct {
	UserID uint   `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

func accessSecret() []byte {
	return []byte(os.Getenv("SECRET_KEY_ACCESS_TOKEN"))
}

// GenerateToken signs an access token carrying the identity payload.
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(accessSecret())
}

// GetUserFromToken verifies a token and extracts the identity payload.
func GetUserFromToken(tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return accessSecret(), nil
	})
	if err != nil {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if !token.Valid {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	return claims.UserInfo, nil
}
