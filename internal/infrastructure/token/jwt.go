// Package token issues and verifies the HS256 bearer tokens handed out at login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errMissingSubject = errors.New("token has no subject")

// Claims is the signed payload. ID mirrors Subject for clients that read the
// "id" claim directly.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single server-held secret.
// A zero ttl issues tokens without an exp claim.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token whose subject is the given user id.
func (m *Manager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errMissingSubject
	}

	now := m.now().UTC()
	claims := Claims{
		ID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature (and exp, when present) and returns the subject.
func (m *Manager) Verify(raw string) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.ID
	}
	if subject == "" {
		return "", errMissingSubject
	}
	return subject, nil
}
