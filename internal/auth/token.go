package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/festy23/hacksavvy/internal/config"
)

// UserMetadata is the provider profile attached to the access token.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Claims is the access token payload issued by the identity provider.
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens and turns them into identities.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewVerifier creates a verifier from auth configuration.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.SessionTTL,
		now:      time.Now,
	}
}

// Verify parses and validates a token string.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, ErrMissingEmail
	}

	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.UserMetadata.Name
	}

	return &Identity{
		UserID: claims.Subject,
		Email:  strings.TrimSpace(claims.Email),
		Name:   name,
	}, nil
}

// Issue signs a token for id. Used by tests and local development tooling.
func (v *Verifier) Issue(id Identity) (string, error) {
	now := v.now()
	claims := Claims{
		Email:        id.Email,
		UserMetadata: UserMetadata{FullName: id.Name},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
