package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/db/models"
)

var (
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNilUser is returned when a token is requested for no user.
	ErrNilUser = errors.New("user is nil")
)

// Claims carried by an issued bearer token.
type Claims struct {
	UserID   string `json:"nameid"`
	UserName string `json:"unique_name"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// BearerToken is a signed token and its expiration. ExpirationDate is nil
// for tokens that never expire.
type BearerToken struct {
	Value          string
	ExpirationDate *time.Time
}

// TokenService issues and verifies bearer tokens.
type TokenService struct {
	cfg    config.JwtBearer
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenService creates a token service. An empty signing method selects HS256.
func NewTokenService(cfg config.JwtBearer) (*TokenService, error) {
	name := cfg.SigningMethod
	if name == "" {
		name = config.DefaultSigningMethod
	}

	method, ok := jwt.GetSigningMethod(name).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedSigningMethod, name)
	}

	if cfg.TokenSecret == "" {
		return nil, config.ErrEmptyTokenSecret
	}

	return &TokenService{cfg: cfg, method: method, now: time.Now}, nil
}

// Issue signs a token for the user.
func (s *TokenService) Issue(user *models.AppUser) (*BearerToken, error) {
	if user == nil {
		return nil, ErrNilUser
	}

	now := s.now()

	claims := Claims{
		UserID:   user.ID,
		UserName: user.UserName,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   s.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}

	var expires *time.Time

	if s.cfg.TokenExpirationMinutes >= 0 {
		t := now.Add(time.Duration(s.cfg.TokenExpirationMinutes) * time.Minute)
		expires = &t
		claims.ExpiresAt = jwt.NewNumericDate(t)
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &BearerToken{Value: signed, ExpirationDate: expires}, nil
}

// Parse verifies the signature, signing method, issuer, audience and expiry of
// a token and returns its claims.
func (s *TokenService) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
	}

	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.TokenSecret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
