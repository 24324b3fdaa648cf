package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"passbook/internal/crypto"
)

const legacySample = `site: github.com
username: alice
password: hunter2
----------
site: example.org
username: bob
password: s3cret
----------
site: broken.example
username: carol
----------
`

func writeLegacy(t *testing.T, store *Store, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(store.legacyPath, []byte(content), 0o600))
}

func TestMigrationFromLegacyFile(t *testing.T) {
	store, cipher, _ := newTestStore(t)
	writeLegacy(t, store, legacySample)

	require.NoError(t, store.Load())

	// Two valid blocks migrated, the malformed one skipped.
	records := store.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "github.com", records[0].Site)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "example.org", records[1].Site)

	// Secrets survive the migration in both stored forms.
	plaintext, err := cipher.Reveal(records[0].PasswordEncrypted, records[0].PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)

	// The legacy file was retired to its backup name.
	_, err = os.Stat(store.legacyPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(store.backupPath)
	assert.NoError(t, err)
}

func TestMigrationIdempotent(t *testing.T) {
	store, cipher, path := newTestStore(t)
	writeLegacy(t, store, legacySample)

	require.NoError(t, store.Load())
	first := store.Records()

	// A second load finds the current-format file and never re-migrates.
	again := New(path, cipher, zap.NewNop())
	require.NoError(t, again.Load())
	assert.Equal(t, first, again.Records())
}

func TestMigrationZeroValidBlocks(t *testing.T) {
	store, _, path := newTestStore(t)
	writeLegacy(t, store, "this file\nhas no\nparsable blocks\n")

	err := store.Load()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, store.legacyPath, formatErr.Path)

	// A corrupt legacy file must not be retired or replaced.
	_, err = os.Stat(store.legacyPath)
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCurrentFormatWinsOverLegacy(t *testing.T) {
	store, _, path := newTestStore(t)
	writeLegacy(t, store, legacySample)
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len())

	// Legacy stays untouched when the current format already exists.
	_, err := os.Stat(store.legacyPath)
	assert.NoError(t, err)
}

func TestParseLegacyToleratesBlankLinesAndCRLF(t *testing.T) {
	raw := "site: a\r\nusername: b\r\npassword: c\r\n----------\r\n\r\n\r\nsite: d\nusername: e\npassword: f:with:colons\n"
	entries := parseLegacy([]byte(raw), zap.NewNop())

	require.Len(t, entries, 2)
	assert.Equal(t, legacyEntry{site: "a", username: "b", password: "c"}, entries[0])
	// Only the first colon separates label from value.
	assert.Equal(t, "f:with:colons", entries[1].password)
}

func TestParseLegacyLinesWithoutColonsSkipped(t *testing.T) {
	raw := "just a line\nsite: a\nusername: b\npassword: c\n----------\n"
	entries := parseLegacy([]byte(raw), zap.NewNop())

	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].site)
}

func TestIsDelimiter(t *testing.T) {
	assert.True(t, isDelimiter("----------"))
	assert.True(t, isDelimiter("----"))
	assert.False(t, isDelimiter("---"))
	assert.False(t, isDelimiter("--- -"))
	assert.False(t, isDelimiter("site: x"))
}

func TestBackupPathDerivation(t *testing.T) {
	store := New(filepath.Join("/data", "password_manager.json"), crypto.New("1234"), zap.NewNop())
	assert.Equal(t, filepath.Join("/data", "password_manager.txt"), store.legacyPath)
	assert.Equal(t, filepath.Join("/data", "password_manager.bak"), store.backupPath)
}
