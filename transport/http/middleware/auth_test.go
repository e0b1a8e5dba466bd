package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/infras/jwt"
	"inn/infras/otel/mocks"
	authMocks "inn/internal/domains/auth/mocks"
	userModel "inn/internal/domains/user/model"
	"inn/permissions"
	"inn/shared/constant"
	"inn/shared/failure"
	"inn/transport/http/middleware"
)

func setupRouter(t *testing.T, mockAuth *authMocks.MockAuth, permissionData *permissions.PermissionData) (*chi.Mux, *bool) {
	t.Helper()

	authMiddleware := middleware.NewAuthMiddleware(mockAuth, mocks.NewOtel(), permissionData)

	reached := false

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Auth)
		r.Get("/v1/rooms", func(w http.ResponseWriter, r *http.Request) {
			reached = true

			assert.Equal(t, "user-id", r.Context().Value(constant.ContextKeyUserID))
			assert.Equal(t, "johndoe", r.Context().Value(constant.ContextKeyUsername))
			assert.Equal(t, "token-id", r.Context().Value(constant.ContextKeyTokenID))

			w.WriteHeader(http.StatusOK)
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			reached = true

			w.WriteHeader(http.StatusOK)
		})
	})

	return router, &reached
}

func TestAuthMiddleware(t *testing.T) {
	activeUser := userModel.User{
		ID:       "user-id",
		Username: "johndoe",
		Active:   true,
	}

	claims := &jwt.Claims{TokenID: "token-id", Type: jwt.AccessToken}
	claims.Subject = "johndoe"

	tests := []struct {
		name        string
		header      string
		setupMock   func(mockAuth *authMocks.MockAuth)
		wantStatus  int
		wantReached bool
	}{
		{
			name:   "valid token passes user context through",
			header: "Bearer valid-token",
			setupMock: func(mockAuth *authMocks.MockAuth) {
				mockAuth.EXPECT().
					ResolveToken(gomock.Any(), "valid-token").
					Return(activeUser, claims, nil)
			},
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:       "missing authorization header",
			setupMock:  func(mockAuth *authMocks.MockAuth) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed authorization header",
			header:     "Token abc",
			setupMock:  func(mockAuth *authMocks.MockAuth) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "rejected token surfaces the service error",
			header: "Bearer expired-token",
			setupMock: func(mockAuth *authMocks.MockAuth) {
				mockAuth.EXPECT().
					ResolveToken(gomock.Any(), "expired-token").
					Return(userModel.User{}, nil, failure.Unauthorized("token has expired"))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuth := authMocks.NewMockAuth(ctrl)
			tt.setupMock(mockAuth)

			router, reached := setupRouter(t, mockAuth, &permissions.PermissionData{})

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantReached, *reached)
		})
	}
}

func TestAuthMiddleware_SkippedEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ResolveToken expectation: a skipped endpoint must never consult the
	// auth service.
	mockAuth := authMocks.NewMockAuth(ctrl)

	permissionData := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/health", Method: http.MethodGet, Skip: true},
		},
	}

	router, reached := setupRouter(t, mockAuth, permissionData)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
}
