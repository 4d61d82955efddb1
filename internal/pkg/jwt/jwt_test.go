package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "8h", "720h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "emp@acme.test", "company-1", user.RoleEmployee, false)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp@acme.test", claims["email"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "access", claims["type"])

	wantExp := time.Now().Add(8 * time.Hour).Unix()
	assert.InDelta(t, wantExp, expiresAt, 5)
}

func TestGenerateAccessTokenRememberMe(t *testing.T) {
	svc := newTestService()

	_, normalExp, err := svc.GenerateAccessToken("user-1", "emp@acme.test", "company-1", user.RoleEmployee, false)
	require.NoError(t, err)

	_, rememberExp, err := svc.GenerateAccessToken("user-1", "emp@acme.test", "company-1", user.RoleEmployee, true)
	require.NoError(t, err)

	wantGap := (720*time.Hour - 8*time.Hour).Seconds()
	assert.InDelta(t, wantGap, float64(rememberExp-normalExp), 5)
}

func TestGenerateAccessTokenInvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", "720h")

	_, _, err := svc.GenerateAccessToken("user-1", "emp@acme.test", "company-1", user.RoleAdmin, false)
	assert.Error(t, err)
}

func TestGenerateResetToken(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateResetToken("user-1")
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "reset", claims["type"])

	wantExp := time.Now().Add(time.Hour).Unix()
	assert.InDelta(t, wantExp, expiresAt, 5)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService("another-secret-entirely", "8h", "720h")

	tokenString, _, err := svc.GenerateAccessToken("user-1", "emp@acme.test", "company-1", user.RoleEmployee, false)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(other.JWTAuth(), tokenString)
	assert.Error(t, err)
}
