package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, sub string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})

	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func TestMiddleware(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID bool
	}

	tests := []testCase{
		{
			name:       "ValidToken",
			authHeader: "Bearer " + signToken(t, userID.String()),
			wantStatus: http.StatusOK,
			wantUserID: true,
		},
		{
			name:       "MissingHeader",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MalformedToken",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NonUUIDSubject",
			authHeader: "Bearer " + signToken(t, "someone"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID uuid.UUID

			var gotOK bool

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = auth.UserID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			auth.Middleware(testSecret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantUserID {
				require.True(t, gotOK)
				assert.Equal(t, userID, gotID)
			}
		})
	}
}
