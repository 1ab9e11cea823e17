package auth

import (
	"testing"
	"time"

	"chefotw/globals"
	"chefotw/middleware"
	"chefotw/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abc123", true},
		{"Abcdef1", true},
		{"abc123", false},  // no uppercase
		{"ABC123", false},  // no lowercase
		{"Abcdef", false},  // no digit
		{"Ab1", false},     // too short
		{"", false},
		{"xY9xY9xY9", true},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, validPassword(c.password), "password %q", c.password)
	}
}

func TestValidEmailProvider(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@gmail.com", true},
		{"someone@yahoo.com", true},
		{"someone@outlook.com", true},
		{"someone@zoho.com", true},
		{"someone@example.com", false},
		{"someone@gmail.com@gmail.com", false},
		{"@gmail.com", false},
		{"someone@", false},
		{"plainaddress", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, validEmailProvider(c.email), "email %q", c.email)
	}
}

func TestIssueTokenRoundTrip(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")

	user := models.User{
		ID:      primitive.NewObjectID(),
		Email:   "a@gmail.com",
		Name:    "Alice",
		Address: "1 Main St",
		Picture: "/static/uploads/a.jpg",
	}

	token, err := IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := middleware.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.ID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Address, claims.Address)
	assert.Equal(t, user.Picture, claims.Picture)

	// 6-hour validity window
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 6*time.Hour, ttl)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")

	claims := &middleware.Claims{
		ID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-7 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)

	_, err = middleware.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")

	token, err := IssueToken(models.User{ID: primitive.NewObjectID(), Email: "a@gmail.com"})
	require.NoError(t, err)

	globals.JwtSecret = []byte("another-secret")
	defer func() { globals.JwtSecret = []byte("test-secret") }()

	_, err = middleware.ValidateJWT(token)
	assert.Error(t, err)
}
