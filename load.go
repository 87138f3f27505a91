package enpassreaderlib

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/costastf/enpassreaderlib/internal/cryptox"
	"github.com/costastf/enpassreaderlib/internal/logging"
	"github.com/costastf/enpassreaderlib/internal/store"
)

// loadEntries runs the fixed query once and maps every raw record into an
// Entry, decrypting its password field along the way. The whole pass is
// eager; nothing is fetched lazily later.
func loadEntries(ctx context.Context, s *store.Store, log logging.Logger) ([]Entry, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		e, err := entryFromRecord(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	log.Debug(ctx, "entries loaded", "count", len(entries))
	return entries, nil
}

func entryFromRecord(r store.Record) (Entry, error) {
	id, err := uuid.Parse(r.UUID)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: item %q has malformed uuid %q", ErrStoreRead, r.Title, r.UUID)
	}

	if len(r.Key) != cryptox.KeySize+cryptox.NonceSize {
		return Entry{}, fmt.Errorf("%w: item %q has a %d-byte key blob", ErrStoreRead, r.Title, len(r.Key))
	}
	key, nonce := r.Key[:cryptox.KeySize], r.Key[cryptox.KeySize:]

	// The raw UUID bytes are the additional authenticated data binding the
	// password field to its item.
	password, err := cryptox.DecryptField(r.Password, key, nonce, id[:])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: item %q: %v", ErrStoreRead, r.Title, err)
	}

	return Entry{
		UUID:     id,
		Title:    r.Title,
		Password: password,
		Username: optional(r.Username),
		URL:      optional(r.URL),
		Notes:    optional(r.Note),
	}, nil
}

// optional maps a nullable column to an explicit present/absent pointer.
func optional(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
