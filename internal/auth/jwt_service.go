package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"newsroom/internal/model"
)

const (
	// DefaultTokenExpiry applies when no expiry is configured.
	DefaultTokenExpiry = 8 * time.Hour
	// DefaultIssuer tags tokens minted by this deployment.
	DefaultIssuer = "newsroom_app"
)

var (
	// ErrMissingSecret is returned when tokens are requested without a signing secret.
	ErrMissingSecret = errors.New("JWT secret is not configured")
	// ErrInvalidToken is returned for malformed, expired or foreign tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents JWT claims.
type Claims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller of an operation.
func (c *Claims) Actor() model.Actor {
	return model.Actor{ID: c.ID, Username: c.Username, Role: model.Role(c.Role)}
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service. Zero values fall back to the defaults.
func NewJWTService(secret, issuer string, expiry time.Duration) *JWTService {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}
}

// Expiry returns the lifetime of issued tokens.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

// GenerateToken signs an HS256 token carrying the user's id, username and role.
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := s.now()
	claims := &Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
