package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/leetlab/internal/service"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	os.Exit(m.Run())
}

func signedToken(t *testing.T, secret string, userId uuid.UUID, expiresIn time.Duration) string {
	t.Helper()
	claims := service.UserCredentialClaims{
		UserId: userId,
		Email:  "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedHandler(t *testing.T, want uuid.UUID) http.HandlerFunc {
	return JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		claims, err := service.GetClaimsFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, want, claims.UserId)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")
	userId := uuid.New()
	handler := protectedHandler(t, userId)

	tests := []struct {
		name    string
		setup   func(r *http.Request)
		status  int
		message string
	}{
		{
			name:    "no token",
			setup:   func(r *http.Request) {},
			status:  http.StatusUnauthorized,
			message: "Unauthorized!, no session token",
		},
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: KeyJwtSessionCookieName, Value: signedToken(t, "test-secret", userId, time.Hour)})
			},
			status: http.StatusNoContent,
		},
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", userId, time.Hour))
			},
			status: http.StatusNoContent,
		},
		{
			name: "wrong secret",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: KeyJwtSessionCookieName, Value: signedToken(t, "other", userId, time.Hour)})
			},
			status:  http.StatusUnauthorized,
			message: "Unauthorized!, Invalid token",
		},
		{
			name: "expired",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: KeyJwtSessionCookieName, Value: signedToken(t, "test-secret", userId, -time.Minute)})
			},
			status:  http.StatusUnauthorized,
			message: "Unauthorized!, Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/auth/check", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.JSONEq(t,
					`{"success":false,"reason":"unauthenticated","message":"`+tt.message+`"}`,
					rec.Body.String(),
				)
			}
		})
	}
}
