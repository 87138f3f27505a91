// Package store opens an Enpass 6 database through the SQLCipher driver and
// reads the raw credential records out of it. It performs no page-level
// cryptography itself: the raw cipher key is handed to the driver with
// PRAGMA key, and the driver does the rest.
package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/costastf/enpassreaderlib/internal/common"
	"github.com/costastf/enpassreaderlib/internal/cryptox"
	"github.com/costastf/enpassreaderlib/internal/keyx"
	"github.com/costastf/enpassreaderlib/internal/logging"
)

// Config carries everything needed to open one database file.
type Config struct {
	// Path is the location of the .enpassdb file.
	Path string
	// Password is the master password.
	Password []byte
	// KeyFilePath optionally points at an Enpass key file.
	KeyFilePath string
	// KDFRounds overrides the PBKDF2 iteration count. Zero means the
	// Enpass 6 default of 100000.
	KDFRounds int
}

// Store is an open, decrypted database handle. All queries run on a single
// pinned connection, because the key pragmas apply per connection.
type Store struct {
	db   *sql.DB
	conn *sql.Conn
	log  logging.Logger
}

// Open derives the raw cipher key from cfg, opens the file through the
// SQLCipher driver and verifies that the key actually decrypts it. Every
// handle acquired along the way is released again on failure.
func Open(ctx context.Context, cfg Config, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}

	salt, err := keyx.ReadSalt(cfg.Path)
	if err != nil {
		return nil, err
	}

	master, err := keyx.MasterPassword(cfg.Password, cfg.KeyFilePath)
	if err != nil {
		if errors.Is(err, keyx.ErrInvalidKeyFile) {
			return nil, fmt.Errorf("%w: %v", common.ErrAuthenticationFailed, err)
		}
		return nil, err
	}

	key := keyx.CipherKey(master, salt, cfg.KDFRounds)
	cryptox.ClearBytes(master)

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	s := &Store{db: db, conn: conn, log: log}
	if err := s.unlock(ctx, key); err != nil {
		_ = s.Close()
		return nil, err
	}

	log.Debug(ctx, "database unlocked", "path", cfg.Path)
	return s, nil
}

// unlock keys the pinned connection and sanity-checks decryption against the
// Identity table every Enpass 6 vault contains. Any failure at this stage is
// reported as an authentication failure: the driver cannot tell a wrong key
// apart from a file that is not an Enpass database at all.
func (s *Store) unlock(ctx context.Context, key []byte) error {
	pragmas := []string{
		fmt.Sprintf(`PRAGMA key = "x'%s'";`, hex.EncodeToString(key)),
		`PRAGMA cipher_compatibility = 3;`,
	}
	for _, pragma := range pragmas {
		if _, err := s.conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("%w: %v", common.ErrAuthenticationFailed, err)
		}
	}

	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM Identity;`).Scan(&n); err != nil {
		return common.ErrAuthenticationFailed
	}
	return nil
}

// Records runs the fixed entry query on the pinned connection.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	records, err := queryRecords(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "records read", "count", len(records))
	return records, nil
}

// Close releases the pinned connection and the underlying pool.
func (s *Store) Close() error {
	var errs []error
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
		s.conn = nil
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
		s.db = nil
	}
	return errors.Join(errs...)
}
