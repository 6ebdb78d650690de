package jwt

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc extracts a raw token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// Middleware validates bearer tokens and injects the parsed claims into
// the request context. Requests without a valid token are rejected with
// 401; routes that allow anonymous access are mounted outside of it.
func Middleware(service *Service, extractor TokenExtractorFunc) func(http.Handler) http.Handler {
	if extractor == nil {
		extractor = BearerTokenExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractor(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			var claims Claims
			if err := service.Parse(tokenString, &claims); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// BearerTokenExtractor reads "Authorization: Bearer <token>" per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}
