package providers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sfd/internal/structures"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrNoToken        = errors.New("missing bearer token")
	ErrInvalidToken   = errors.New("invalid or expired session token")
)

// AuthProviderInterface issues and verifies admin session tokens. The
// credential check itself is a plain comparison against the configured
// admin account — there is deliberately no user database behind it.
type AuthProviderInterface interface {
	Login(username, password string) (token string, expiresAt time.Time, err error)
	Authorize(r *http.Request) error
}

type AuthProvider struct {
	conf *structures.Config
}

func NewAuthProvider(conf *structures.Config) AuthProviderInterface {
	return &AuthProvider{conf: conf}
}

func (a *AuthProvider) Login(username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.conf.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.conf.Admin.Password)) == 1
	if !userOK || !passOK {
		return "", time.Time{}, ErrBadCredentials
	}

	expiresAt := time.Now().Add(a.conf.Admin.SessionTTL * time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    a.conf.AppName,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.conf.Admin.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expiresAt, nil
}

func (a *AuthProvider) Authorize(r *http.Request) error {
	raw := bearerToken(r)
	if raw == "" {
		return ErrNoToken
	}

	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.conf.Admin.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return ErrInvalidToken
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
