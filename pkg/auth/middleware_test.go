package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := NewMockJWTServiceInterface(ctrl)

	tests := []struct {
		name         string
		header       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Valid token",
			header: "Bearer good",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("good").Return(&Claims{UserID: 5, IsAdmin: true}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing header",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Wrong scheme",
			header:       "Basic abc",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "Rejected token",
			header: "Bearer bad",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("bad").Return(nil, ErrInvalidToken)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			handler := AuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, 5, r.Context().Value(UserIDKey))
				assert.Equal(t, true, r.Context().Value(IsAdminKey))
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := NewMockJWTServiceInterface(ctrl)
	jwtService.EXPECT().ValidateToken("admin").Return(&Claims{UserID: 1, IsAdmin: true}, nil)
	jwtService.EXPECT().ValidateToken("user").Return(&Claims{UserID: 2}, nil)

	handler := AuthMiddleware(jwtService)(AdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	for token, code := range map[string]int{"admin": http.StatusNoContent, "user": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/accrual", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, token)
	}
}
