package services

import (
	"fmt"
	"time"

	"kitchen-inventory-service/models"

	"github.com/golang-jwt/jwt/v4"
)

const sessionTokenTTL = 24 * time.Hour

// SessionClaims is the decoded identity carried by a session token.
type SessionClaims struct {
	UserID   uint
	Username string
	Role     string
}

// JWTService issues and verifies session tokens.
type JWTService interface {
	GenerateToken(user *models.User) (string, error)
	ParseToken(tokenString string) (*SessionClaims, error)
}

type jwtServiceImpl struct {
	secret []byte
}

// NewJWTService creates a JWTService signing with the given secret.
func NewJWTService(secret string) JWTService {
	return &jwtServiceImpl{secret: []byte(secret)}
}

func (s *jwtServiceImpl) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  float64(user.ID),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtServiceImpl) ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &SessionClaims{
		UserID:   uint(userID),
		Username: username,
		Role:     role,
	}, nil
}
