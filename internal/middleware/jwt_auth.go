package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier accepts HS256 tokens carrying a user_id claim.
type JWTVerifier struct {
	secret         []byte
	userRepository repositories.UserRepository
}

// NewJWTVerifier creates a new JWTVerifier
func NewJWTVerifier(secret string, userRepo repositories.UserRepository) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), userRepository: userRepo}
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	user, err := v.userRepository.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// SignToken issues a token for user that JWTVerifier accepts until ttl elapses.
func (v *JWTVerifier) SignToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
