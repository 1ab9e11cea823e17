package middleware

import (
	"context"
	"fmt"
	"net/http"

	"chefotw/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims; the payload mirrors what login embeds.
type Claims struct {
	ID      string `json:"_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateJWT(tokenString[7:])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Store the decoded principal in context
		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.ID)
		ctx = context.WithValue(ctx, globals.ClaimsKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// GetClaims returns the principal stored by Authenticate.
func GetClaims(r *http.Request) (*Claims, bool) {
	claims, ok := r.Context().Value(globals.ClaimsKey).(*Claims)
	return claims, ok
}
