// Package models defines the core data structures for stored credentials.
package models

import "time"

// Record represents one stored credential entry. The JSON field names form
// the on-disk format and must stay stable across versions so that load/save
// round-trips exactly.
type Record struct {
	// Site is the site or application the credential belongs to.
	Site string `json:"site"`
	// Username is the login name for the site.
	Username string `json:"username"`
	// PasswordHash is the hex SHA-256 fingerprint of the plaintext password,
	// used to verify a presented password without decrypting anything.
	PasswordHash string `json:"password_hash"`
	// PasswordEncrypted is the reversible-obfuscated encoding of the
	// plaintext password, recoverable only with the admin password that was
	// active when the record was written.
	PasswordEncrypted string `json:"password_encrypted"`
	// CreatedAt is the RFC 3339 UTC timestamp of record creation.
	CreatedAt string `json:"created_at"`
	// UpdatedAt is the RFC 3339 UTC timestamp of the last mutation.
	UpdatedAt string `json:"updated_at"`
}

// NewRecord builds a Record ready to be persisted. hash and encrypted must be
// the paired forms of the same plaintext produced by the cipher; both
// timestamps are set to now.
func NewRecord(site, username, hash, encrypted string) Record {
	now := timestamp()
	return Record{
		Site:              site,
		Username:          username,
		PasswordHash:      hash,
		PasswordEncrypted: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SetPassword replaces both stored forms of the password and refreshes
// UpdatedAt. hash and encrypted must come from the same plaintext.
func (r *Record) SetPassword(hash, encrypted string) {
	r.PasswordHash = hash
	r.PasswordEncrypted = encrypted
	r.UpdatedAt = timestamp()
}

// SetLogin updates the identifying fields and refreshes UpdatedAt. An empty
// argument keeps the current value.
func (r *Record) SetLogin(site, username string) {
	if site != "" {
		r.Site = site
	}
	if username != "" {
		r.Username = username
	}
	r.UpdatedAt = timestamp()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
