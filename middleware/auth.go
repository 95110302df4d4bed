package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/nyumba-ke/backend/controllers"
	"github.com/nyumba-ke/backend/utils"
)

// AuthMiddleware verifies the bearer token and puts the authenticated user
// id on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			log.Printf("Missing Authorization header from request %s %s", r.Method, r.URL)
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Printf("Invalid Authorization header format from request %s %s", r.Method, r.URL)
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(tokenParts[1])
		if err != nil {
			log.Printf("Invalid or expired token: %v", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth resolves a bearer token when present but never rejects the
// request. Public endpoints use it to personalize responses (isFavorite).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader != "" {
			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
				if claims, err := utils.ValidateJWT(tokenParts[1]); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
