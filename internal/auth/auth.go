// Package auth authenticates administrators and makers and issues the
// stateless session tokens that guard management routes.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tooldir/internal/domain"
	"tooldir/internal/repository"
)

// Issuer is the iss claim of every token
const Issuer = "tooldir"

// DefaultAdminPassword is used when no admin password hash is configured
const DefaultAdminPassword = "admin"

var (
	// ErrInvalidCredentials is returned when a login does not match
	ErrInvalidCredentials = repository.ErrInvalidCredentials

	// ErrInvalidToken is returned for malformed, forged or expired tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Identity is the authenticated caller carried by a token
type Identity struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the caller is the administrator
func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

// Claims is the JWT payload
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Token is a signed session token and its expiry
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Identity  Identity  `json:"user"`
}

// MakerAuthenticator checks maker credentials
type MakerAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Maker, error)
}

// Config holds the administrator credentials and token settings
type Config struct {
	AdminUsername     string
	AdminPasswordHash string // bcrypt; empty hashes DefaultAdminPassword
	Secret            []byte
	TTL               time.Duration
}

// Authenticator issues and verifies tokens
type Authenticator struct {
	adminUser string
	adminHash []byte
	secret    []byte
	ttl       time.Duration
	makers    MakerAuthenticator
	now       func() time.Time
}

// New creates an Authenticator. makers may be nil, which disables maker login.
func New(cfg Config, makers MakerAuthenticator) (*Authenticator, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if cfg.AdminUsername == "" {
		return nil, errors.New("admin username is required")
	}
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		adminUser: cfg.AdminUsername,
		adminHash: hash,
		secret:    cfg.Secret,
		ttl:       ttl,
		makers:    makers,
		now:       time.Now,
	}, nil
}

// SetClock replaces the time source used to stamp and verify tokens
func (a *Authenticator) SetClock(now func() time.Time) { a.now = now }

// LoginAdmin checks the administrator credentials and issues a token
func (a *Authenticator) LoginAdmin(username, password string) (*Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.adminUser)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.adminHash, []byte(password)) == nil
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}
	return a.Issue(Identity{Subject: domain.RoleAdmin, Username: a.adminUser, Role: domain.RoleAdmin})
}

// LoginMaker checks maker credentials and issues a token. The maker is
// returned without its password hash.
func (a *Authenticator) LoginMaker(ctx context.Context, username, password string) (*Token, *domain.Maker, error) {
	if a.makers == nil {
		return nil, nil, ErrInvalidCredentials
	}
	maker, err := a.makers.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	tok, err := a.Issue(Identity{Subject: maker.ID, Username: maker.Username, Role: domain.RoleMaker})
	if err != nil {
		return nil, nil, err
	}
	public := maker.Public()
	return tok, &public, nil
}

// Issue signs a token for id
func (a *Authenticator) Issue(id Identity) (*Token, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	claims := Claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Token{Value: signed, ExpiresAt: expires, Identity: id}, nil
}

// Parse verifies a token and returns the identity it carries
func (a *Authenticator) Parse(token string) (*Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || (claims.Role != domain.RoleAdmin && claims.Role != domain.RoleMaker) {
		return nil, ErrInvalidToken
	}
	return &Identity{Subject: claims.Subject, Username: claims.Username, Role: claims.Role}, nil
}

// HashPassword returns the bcrypt hash to put in admin_password_hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// RandomSecret returns a fresh 32-byte secret, hex encoded
func RandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

type identityKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
