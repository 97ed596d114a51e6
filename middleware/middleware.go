package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"github.com/tcp_snm/leetlab/internal/service"
)

const (
	KeyJwtSessionCookieName = "jwt"
	bearerPrefix            = "Bearer "
)

// JWTMiddleware admits requests carrying a valid session token, read from
// the session cookie or a bearer header, and stores its claims in the
// request context.
func JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := sessionToken(r)
		if tokenString == "" {
			unauthenticated(w, "Unauthorized!, no session token")
			return
		}

		claims, err := ParseSessionToken(tokenString)
		if err != nil {
			if errors.Is(err, leetlab_errors.ErrInternal) {
				http.Error(w, leetlab_errors.ErrInternal.Error(), http.StatusInternalServerError)
				return
			}
			log.Debugf("rejected session token, %v", err)
			unauthenticated(w, "Unauthorized!, Invalid token")
			return
		}

		next(w, r.WithContext(service.WithClaims(r.Context(), claims)))
	}
}

func ParseSessionToken(tokenString string) (service.UserCredentialClaims, error) {
	secret, err := service.GetJWTSecret()
	if err != nil {
		return service.UserCredentialClaims{}, err
	}

	var claims service.UserCredentialClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		},
	)
	if err != nil {
		return service.UserCredentialClaims{}, fmt.Errorf("%w, %w", leetlab_errors.ErrUnAuthenticated, err)
	}
	if !token.Valid {
		return service.UserCredentialClaims{}, leetlab_errors.ErrUnAuthenticated
	}
	return claims, nil
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	return ""
}

func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"success":false,"reason":"unauthenticated","message":%q}`, message)
}
