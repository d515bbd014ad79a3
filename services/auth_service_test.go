package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/opsvix-api/config"
	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
)

var testAuthConfig = config.AuthConfig{
	AdminEmail:    "admin@opsvix.test",
	AdminPassword: "correct horse",
	JWTSecret:     "test-secret",
	TokenTTL:      7 * 24 * time.Hour,
}

func newTestAuthService() *AuthService {
	return NewAuthService(testAuthConfig, hclog.NewNullLogger())
}

func TestCheckCredentials(t *testing.T) {
	s := newTestAuthService()

	require.NoError(t, s.CheckCredentials("admin@opsvix.test", "correct horse"))

	var verr *ValidationError
	require.ErrorAs(t, s.CheckCredentials("", "correct horse"), &verr)
	require.Equal(t, "Please provide email and password", verr.Message)
	require.ErrorAs(t, s.CheckCredentials("admin@opsvix.test", ""), &verr)

	for _, tc := range []struct{ email, password string }{
		{"admin@opsvix.test", "wrong"},
		{"other@opsvix.test", "correct horse"},
		{"ADMIN@opsvix.test", "correct horse"},
		{" admin@opsvix.test", "correct horse"},
	} {
		err := s.CheckCredentials(tc.email, tc.password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "%s/%s", tc.email, tc.password)
		require.Equal(t, "Invalid credentials", err.Error())
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	s := newTestAuthService()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	resp, err := s.Login(dto.LoginRequest{Email: "admin@opsvix.test", Password: "correct horse"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, models.Admin{Email: "admin@opsvix.test", Role: models.RoleAdmin}, resp.Admin)
	require.Equal(t, fixed.Add(7*24*time.Hour), resp.ExpiresAt)

	claims, err := s.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "admin@opsvix.test", claims.Email)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
}

func TestLoginWrongPassword(t *testing.T) {
	_, err := newTestAuthService().Login(dto.LoginRequest{Email: "admin@opsvix.test", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestAuthService()

	expired, _, err := s.IssueToken("admin@opsvix.test", models.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	foreignCfg := testAuthConfig
	foreignCfg.JWTSecret = "another-secret"
	foreign, _, err := NewAuthService(foreignCfg, hclog.NewNullLogger()).IssueToken("admin@opsvix.test", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	noRole, _, err := s.IssueToken("admin@opsvix.test", "", time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, dto.TokenClaims{
		Email: "admin@opsvix.test",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.TokenClaims{
		Email: "admin@opsvix.test",
		Role:  models.RoleAdmin,
	}).SignedString([]byte(testAuthConfig.JWTSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"foreign":   foreign,
		"no role":   noRole,
		"alg none":  unsigned,
		"no expiry": noExpiry,
		"garbage":   "not.a.token",
		"empty":     "",
	} {
		_, err := s.ValidateToken(token)
		require.True(t, errors.Is(err, ErrInvalidToken), name)
	}
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	cfg := testAuthConfig
	cfg.JWTSecret = ""
	_, _, err := NewAuthService(cfg, hclog.NewNullLogger()).IssueToken("a", models.RoleAdmin, time.Hour)
	require.Error(t, err)
}
