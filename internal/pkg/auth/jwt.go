package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenErrorKind classifies why a token was rejected
type TokenErrorKind int

const (
	// TokenExpired means the signature is good but exp has passed
	TokenExpired TokenErrorKind = iota + 1
	// TokenMalformed covers unparsable tokens and bad signatures
	TokenMalformed
	// TokenInvalid covers well-signed tokens with unacceptable claims
	TokenInvalid
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenExpired:
		return "expired"
	case TokenMalformed:
		return "malformed"
	case TokenInvalid:
		return "invalid"
	}
	return "unknown"
}

// TokenError is the only error Verify returns
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + e.Kind.String()
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Is matches the apperrors sentinel for the error's kind
func (e *TokenError) Is(target error) bool {
	switch e.Kind {
	case TokenExpired:
		return target == apperrors.ErrTokenExpired
	case TokenMalformed:
		return target == apperrors.ErrTokenMalformed
	case TokenInvalid:
		return target == apperrors.ErrTokenInvalid
	}
	return false
}

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
	// Now overrides the clock, for tests
	Now func() time.Time
}

// JWTService issues and verifies HS256 session tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &JWTService{
		secret: []byte(config.SecretKey),
		ttl:    config.AccessTokenExp,
		issuer: config.TokenIssuer,
		now:    now,
	}
}

// Claims defines JWT token content
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user, valid for the configured lifetime
func (s *JWTService) Issue(userID int64, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, expiry and required claims. Failures are *TokenError.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}

	// WithIssuedAt only rejects an iat in the future, not a missing one
	if claims.IssuedAt == nil {
		return nil, &TokenError{Kind: TokenInvalid, Err: errors.New("missing iat claim")}
	}

	if claims.UserID <= 0 || claims.Email == "" {
		return nil, &TokenError{Kind: TokenInvalid, Err: errors.New("missing identity claims")}
	}

	return claims, nil
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: TokenExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Kind: TokenMalformed, Err: err}
	default:
		return &TokenError{Kind: TokenInvalid, Err: err}
	}
}
