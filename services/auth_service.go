package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/config"
	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
)

// AuthService checks the configured admin credentials and issues session tokens
type AuthService struct {
	cfg    config.AuthConfig
	logger hclog.Logger
	now    func() time.Time
}

// NewAuthService creates a new auth service instance
func NewAuthService(cfg config.AuthConfig, logger hclog.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		logger: logger.Named("auth"),
		now:    time.Now,
	}
}

// CheckCredentials compares the submitted pair against the configured admin
func (s *AuthService) CheckCredentials(email, password string) error {
	if email == "" || password == "" {
		return &ValidationError{Message: "Please provide email and password"}
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}

// Login authenticates the admin and returns a token
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.CheckCredentials(req.Email, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Warn("rejected login attempt")
		}
		return nil, err
	}

	admin := models.Admin{Email: req.Email, Role: models.RoleAdmin}
	token, expiresAt, err := s.IssueToken(admin.Email, admin.Role, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", "email", admin.Email)
	return &dto.AuthResponse{
		Success:   true,
		Token:     token,
		Admin:     admin,
		ExpiresAt: expiresAt,
	}, nil
}

// IssueToken generates a new signed token for the given identity
func (s *AuthService) IssueToken(email string, role models.Role, ttl time.Duration) (string, time.Time, error) {
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	now := s.now()
	expiresAt := now.Add(ttl)

	claims := dto.TokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		s.logger.Debug("token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid || claims.Role == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
