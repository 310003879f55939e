package middleware

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
)

// IDTokenVerifier is the part of *auth.Client used to check Firebase ID tokens.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens and links them to local users,
// creating the user the first time a UID is seen. Tokens without an email
// claim are rejected, since subscribers are notified by email.
type FirebaseVerifier struct {
	firebaseAuth   IDTokenVerifier
	userRepository repositories.UserRepository
}

// NewFirebaseVerifier creates a new FirebaseVerifier
func NewFirebaseVerifier(firebaseAuth IDTokenVerifier, userRepo repositories.UserRepository) *FirebaseVerifier {
	return &FirebaseVerifier{firebaseAuth: firebaseAuth, userRepository: userRepo}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, idToken string) (*models.User, error) {
	token, err := v.firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	// Known UID
	user, err := v.userRepository.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	uid := token.UID

	// Existing user by email, link the UID
	user, err = v.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		user.FirebaseUID = &uid
		if err := v.userRepository.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	// New user
	user = &models.User{Name: name, Email: email, FirebaseUID: &uid}
	if err := v.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
