package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/blogs/backend/internal/models"
	"github.com/anonto42/blogs/backend/internal/repositories"
	"github.com/anonto42/blogs/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, verifier TokenVerifier, header string) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	e := echo.New()
	var seen *models.User
	e.GET("/", func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusNoContent)
	}, Authenticate(verifier))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticateWithJWT(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, "Ann", testutil.Email(1))
	verifier := NewJWTVerifier("secret", repositories.NewPostgresUserRepository(db))

	t.Run("anonymous", func(t *testing.T) {
		rec, seen := serve(t, verifier, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := verifier.SignToken(user, time.Hour)
		require.NoError(t, err)

		rec, seen := serve(t, verifier, "Bearer "+token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, user.ID, seen.ID)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := verifier.SignToken(user, -time.Minute)
		require.NoError(t, err)

		rec, _ := serve(t, verifier, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTVerifier("other", repositories.NewPostgresUserRepository(db))
		token, err := other.SignToken(user, time.Hour)
		require.NoError(t, err)

		rec, _ := serve(t, verifier, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := verifier.SignToken(&models.User{ID: 999}, time.Hour)
		require.NoError(t, err)

		rec, _ := serve(t, verifier, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec, _ := serve(t, verifier, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type fakeFirebase struct {
	tokens map[string]*auth.Token
}

func (f *fakeFirebase) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return token, nil
}

func TestFirebaseVerifier(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	users := repositories.NewPostgresUserRepository(db)
	existing := testutil.CreateUser(t, db, "Bob", testutil.Email(2))

	fb := &fakeFirebase{tokens: map[string]*auth.Token{
		"new":      {UID: "uid-new", Claims: map[string]interface{}{"email": testutil.Email(1), "name": "Ann"}},
		"existing": {UID: "uid-bob", Claims: map[string]interface{}{"email": testutil.Email(2)}},
		"noemail":  {UID: "uid-phone", Claims: map[string]interface{}{}},
	}}
	verifier := NewFirebaseVerifier(fb, users)

	t.Run("provisions a new user", func(t *testing.T) {
		user, err := verifier.VerifyToken(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
		require.NotNil(t, user.FirebaseUID)
		assert.Equal(t, "uid-new", *user.FirebaseUID)

		again, err := verifier.VerifyToken(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
	})

	t.Run("links an existing user by email", func(t *testing.T) {
		user, err := verifier.VerifyToken(ctx, "existing")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)

		linked, err := users.GetUserByFirebaseUID(ctx, "uid-bob")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, linked.ID)
	})

	t.Run("rejects tokens without email", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, "noemail")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects unverifiable tokens", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, "forged")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
