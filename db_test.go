package enpassreaderlib

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costastf/enpassreaderlib/internal/cryptox"
	"github.com/costastf/enpassreaderlib/internal/keyx"
)

// Low iteration count to keep fixture derivation fast. Open is pointed at it
// through WithKDFRounds.
const testKDFRounds = 1000

const fixtureSchema = `
CREATE TABLE item (
  id      INTEGER PRIMARY KEY,
  uuid    TEXT NOT NULL,
  title   TEXT NOT NULL,
  note    TEXT NOT NULL DEFAULT '',
  deleted INTEGER NOT NULL DEFAULT 0,
  key     BLOB NOT NULL
);
CREATE TABLE itemfield (
  item_uuid TEXT NOT NULL,
  type      TEXT NOT NULL,
  value     TEXT NOT NULL DEFAULT '',
  hash      TEXT
);
CREATE TABLE Identity (
  id   INTEGER PRIMARY KEY,
  info BLOB
);
INSERT INTO Identity (info) VALUES (x'00');`

type fixtureItem struct {
	title    string
	password string
	username string
	url      string
	note     string
}

// buildVault creates a SQLCipher-encrypted fixture the way the reader
// expects to find it: first the file is created under a bootstrap raw key
// (SQLCipher writes its random salt into the file head on creation), then it
// is rekeyed to the key derived from master and that very salt.
func buildVault(t *testing.T, path string, master []byte, items ...fixtureItem) {
	t.Helper()
	ctx := context.Background()

	bootstrap := make([]byte, keyx.CipherKeySize)
	for i := range bootstrap {
		bootstrap[i] = 0xAB
	}

	withConn := func(fn func(conn *sql.Conn)) {
		db, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		defer db.Close()
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.ExecContext(ctx, fmt.Sprintf(`PRAGMA key = "x'%s'";`, hex.EncodeToString(bootstrap)))
		require.NoError(t, err)
		_, err = conn.ExecContext(ctx, `PRAGMA cipher_compatibility = 3;`)
		require.NoError(t, err)

		fn(conn)
	}

	withConn(func(conn *sql.Conn) {
		_, err := conn.ExecContext(ctx, fixtureSchema)
		require.NoError(t, err)

		for _, it := range items {
			id := uuid.New()
			keyBlob := make([]byte, cryptox.KeySize+cryptox.NonceSize)
			for i := range keyBlob {
				keyBlob[i] = byte(i * 3)
			}
			sealed, err := cryptox.EncryptField(it.password,
				keyBlob[:cryptox.KeySize], keyBlob[cryptox.KeySize:], id[:])
			require.NoError(t, err)

			_, err = conn.ExecContext(ctx,
				`INSERT INTO item (uuid, title, note, key) VALUES (?, ?, ?, ?)`,
				id.String(), it.title, it.note, keyBlob)
			require.NoError(t, err)
			_, err = conn.ExecContext(ctx,
				`INSERT INTO itemfield (item_uuid, type, value) VALUES (?, 'password', ?)`,
				id.String(), sealed)
			require.NoError(t, err)

			for fieldType, value := range map[string]string{"username": it.username, "url": it.url} {
				if value == "" {
					continue
				}
				_, err = conn.ExecContext(ctx,
					`INSERT INTO itemfield (item_uuid, type, value) VALUES (?, ?, ?)`,
					id.String(), fieldType, value)
				require.NoError(t, err)
			}
		}
	})

	salt, err := keyx.ReadSalt(path)
	require.NoError(t, err)
	derived := keyx.CipherKey(master, salt, testKDFRounds)

	withConn(func(conn *sql.Conn) {
		_, err := conn.ExecContext(ctx, fmt.Sprintf(`PRAGMA rekey = "x'%s'";`, hex.EncodeToString(derived)))
		require.NoError(t, err)
	})
}

func fixturePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vault.enpassdb")
}

func TestOpen_LoadsAllEntries(t *testing.T) {
	path := fixturePath(t)
	buildVault(t, path, []byte("master-pass"),
		fixtureItem{title: "GitHub", password: "gh-pass", username: "octocat", url: "https://github.com"},
		fixtureItem{title: "GitLab", password: "gl-pass"},
		fixtureItem{title: "Gmail", password: "gm-pass", username: "user@gmail.com"},
	)

	db, err := Open(context.Background(), path, "master-pass", WithKDFRounds(testKDFRounds))
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())

	var titles []string
	for e := range db.Entries() {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"GitHub", "GitLab", "Gmail"}, titles)
}

func TestOpen_WrongPassword(t *testing.T) {
	path := fixturePath(t)
	buildVault(t, path, []byte("master-pass"),
		fixtureItem{title: "GitHub", password: "gh-pass"},
	)

	_, err := Open(context.Background(), path, "not-the-password", WithKDFRounds(testKDFRounds))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestOpen_NotAnEnpassDatabase(t *testing.T) {
	path := fixturePath(t)
	require.NoError(t, os.WriteFile(path, []byte("definitely not a sqlcipher file, but long enough"), 0o600))

	_, err := Open(context.Background(), path, "whatever", WithKDFRounds(testKDFRounds))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.enpassdb"), "pw")
	assert.Error(t, err)
}

func TestOpen_WithKeyFile(t *testing.T) {
	path := fixturePath(t)
	keyFile := filepath.Join(t.TempDir(), "vault.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("<key>deadbeefcafe</key>"), 0o600))

	keyBytes, err := hex.DecodeString("deadbeefcafe")
	require.NoError(t, err)
	master := append([]byte("master-pass"), keyBytes...)
	buildVault(t, path, master, fixtureItem{title: "GitHub", password: "gh-pass"})

	// without the key file the password alone must not unlock the vault
	_, err = Open(context.Background(), path, "master-pass", WithKDFRounds(testKDFRounds))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	db, err := Open(context.Background(), path, "master-pass",
		WithKDFRounds(testKDFRounds), WithKeyFile(keyFile))
	require.NoError(t, err)

	e, err := db.GetEntry("GitHub")
	require.NoError(t, err)
	assert.Equal(t, "gh-pass", e.Password)
}

func TestOpen_EndToEndLookupAndSearch(t *testing.T) {
	path := fixturePath(t)
	buildVault(t, path, []byte("master-pass"),
		fixtureItem{title: "GitHub", password: "gh-pass", username: "octocat"},
		fixtureItem{title: "GitLab", password: "gl-pass"},
		fixtureItem{title: "Gmail", password: "gm-pass", username: "user@gmail.com", note: "personal"},
	)

	db, err := Open(context.Background(), path, "master-pass", WithKDFRounds(testKDFRounds))
	require.NoError(t, err)

	e, err := db.GetEntry("Gmail")
	require.NoError(t, err)
	assert.Equal(t, "gm-pass", e.Password)
	require.NotNil(t, e.Username)
	assert.Equal(t, "user@gmail.com", *e.Username)
	require.NotNil(t, e.Notes)
	assert.Equal(t, "personal", *e.Notes)
	assert.Nil(t, e.URL) // absent in the fixture, not empty

	var titles []string
	for m := range db.SearchEntries("git") {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"GitHub", "GitLab"}, titles)

	_, err = db.GetEntry("Bitbucket")
	assert.ErrorIs(t, err, ErrNotFound)
}
