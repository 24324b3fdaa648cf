// Package auth implements the administrator gate that must succeed before
// any plaintext-revealing operation runs. The gate only verifies; retry
// counting stays with the caller.
package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"passbook/internal/crypto"
)

// ErrBadCredentials is returned when the login name or password does not
// match the configured administrator.
var ErrBadCredentials = errors.New("invalid administrator credentials")

// Gate verifies administrator credentials against a stored fingerprint.
type Gate struct {
	adminUser string
	adminHash string
	log       *zap.Logger
}

// Session is the proof of a successful login. AdminPassword is carried so
// the cipher can be keyed for the session; ID correlates log lines.
type Session struct {
	// ID is a unique identifier for this authenticated session.
	ID string
	// AdminPassword is the plaintext administrator password.
	AdminPassword string
}

// NewGate constructs a Gate. adminHash must be the hex SHA-256 fingerprint
// of the administrator password.
func NewGate(adminUser, adminHash string, log *zap.Logger) *Gate {
	return &Gate{adminUser: adminUser, adminHash: adminHash, log: log}
}

// Login verifies the presented credentials and returns a Session on
// success, ErrBadCredentials otherwise. The fingerprint comparison is
// constant-time.
func (g *Gate) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.adminUser)) == 1
	hashOK := subtle.ConstantTimeCompare([]byte(crypto.Fingerprint(password)), []byte(g.adminHash)) == 1
	if !userOK || !hashOK {
		return nil, ErrBadCredentials
	}

	session := &Session{ID: uuid.NewString(), AdminPassword: password}
	g.log.Info("administrator authenticated", zap.String("session", session.ID))
	return session, nil
}
