package jwt_test

import (
	"testing"
	"time"

	goJWT "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/config"
	"inn/infras/jwt"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "inn-test"
	cfg.JWT.Secret = testSecret
	cfg.JWT.AccessExpireMin = 30

	return cfg
}

func TestJWT_IssueAndValidate(t *testing.T) {
	svc := jwt.New(testConfig())

	token, err := svc.Issue("johndoe")
	require.NoError(t, err)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(30*60), token.ExpiresIn)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "johndoe", claims.Subject)
	assert.Equal(t, jwt.AccessToken, claims.Type)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, claims.TokenID, claims.ID)
}

func TestJWT_Validate(t *testing.T) {
	svc := jwt.New(testConfig())

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				t.Helper()

				return signToken(t, testSecret, "johndoe", jwt.AccessToken, -time.Minute)
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				t.Helper()

				return signToken(t, "other-secret", "johndoe", jwt.AccessToken, time.Minute)
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				t.Helper()

				return signToken(t, testSecret, "johndoe", jwt.TokenType("refresh_token"), time.Minute)
			},
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				t.Helper()

				return signToken(t, testSecret, "", jwt.AccessToken, time.Minute)
			},
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				t.Helper()

				return "not.a.token"
			},
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token(t))

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing bearer prefix", header: "Basic abc", wantErr: true},
		{name: "lowercase bearer", header: "bearer abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func signToken(t *testing.T, secret, subject string, tokenType jwt.TokenType, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.Claims{
		TokenID: "test-token-id",
		Type:    tokenType,
		RegisteredClaims: goJWT.RegisteredClaims{
			ExpiresAt: goJWT.NewNumericDate(now.Add(ttl)),
			IssuedAt:  goJWT.NewNumericDate(now.Add(-time.Hour)),
			NotBefore: goJWT.NewNumericDate(now.Add(-time.Hour)),
			Subject:   subject,
			ID:        "test-token-id",
		},
	}

	signed, err := goJWT.NewWithClaims(goJWT.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}
