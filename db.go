package enpassreaderlib

import (
	"context"
	"iter"

	"github.com/costastf/enpassreaderlib/internal/store"
)

// DB is an opened Enpass database: an immutable in-memory snapshot of its
// credential entries. Safe for concurrent readers.
type DB struct {
	entries *collection
}

// Open unlocks the database at path with the master password, loads and
// decrypts every credential entry, and closes the file again. All work
// happens before Open returns; the snapshot never touches the file after
// that.
//
// Open fails with ErrAuthenticationFailed when the password/key-file
// combination does not decrypt the file, and with ErrStoreRead when the file
// decrypts but does not look like an Enpass 6 vault. The store handle is
// released on every exit path.
func Open(ctx context.Context, path, masterPassword string, opts ...Option) (*DB, error) {
	o := buildOptions(opts)

	st, err := store.Open(ctx, store.Config{
		Path:        path,
		Password:    []byte(masterPassword),
		KeyFilePath: o.keyFilePath,
		KDFRounds:   o.kdfRounds,
	}, o.logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	entries, err := loadEntries(ctx, st, o.logger)
	if err != nil {
		return nil, err
	}

	o.logger.Info(ctx, "database loaded", "path", path, "entries", len(entries))
	return &DB{entries: newCollection(entries)}, nil
}

// GetEntry returns the entry whose title equals title exactly. When several
// entries share the title, the first one in load order wins. A miss returns
// ErrNotFound.
func (d *DB) GetEntry(title string) (Entry, error) {
	return d.entries.get(title)
}

// SearchEntries yields the entries whose title fuzzily matches fragment,
// best match first, load order breaking ties. The sequence is restartable
// and yields the same entries on every iteration. An empty or unmatched
// fragment yields nothing.
func (d *DB) SearchEntries(fragment string) iter.Seq[Entry] {
	return d.entries.search(fragment)
}

// Entries yields every entry in load order.
func (d *DB) Entries() iter.Seq[Entry] {
	return d.entries.all()
}

// Len returns the number of loaded entries.
func (d *DB) Len() int {
	return d.entries.len()
}
