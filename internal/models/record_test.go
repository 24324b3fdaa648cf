package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordSetsTimestamps(t *testing.T) {
	rec := NewRecord("github.com", "alice", "hash", "encrypted")

	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	_, err := time.Parse(time.RFC3339, rec.CreatedAt)
	assert.NoError(t, err)
}

func TestSetLoginKeepsEmptyFields(t *testing.T) {
	rec := NewRecord("github.com", "alice", "hash", "encrypted")

	rec.SetLogin("", "bob")
	assert.Equal(t, "github.com", rec.Site)
	assert.Equal(t, "bob", rec.Username)

	rec.SetLogin("gitlab.com", "")
	assert.Equal(t, "gitlab.com", rec.Site)
	assert.Equal(t, "bob", rec.Username)
}

func TestSetPasswordReplacesBothForms(t *testing.T) {
	rec := NewRecord("github.com", "alice", "hash", "encrypted")

	rec.SetPassword("hash2", "encrypted2")
	assert.Equal(t, "hash2", rec.PasswordHash)
	assert.Equal(t, "encrypted2", rec.PasswordEncrypted)
}

func TestOnDiskFieldNamesStable(t *testing.T) {
	rec := NewRecord("github.com", "alice", "h", "e")
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, name := range []string{
		"site", "username", "password_hash", "password_encrypted", "created_at", "updated_at",
	} {
		assert.Contains(t, fields, name)
	}
}
