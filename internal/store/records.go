package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/costastf/enpassreaderlib/internal/common"
	"github.com/costastf/enpassreaderlib/internal/cryptox"
	"github.com/costastf/enpassreaderlib/internal/dbx"
)

// retrieveAllQuery is the one query this library runs. It joins every live
// item to its password field, pulls username and url as optional scalar
// lookups, and folds empty notes to NULL so absent and empty never mix.
// Load order is the item rowid, which makes iteration deterministic.
const retrieveAllQuery = `
SELECT i.uuid,
       i.title,
       i.key,
       NULLIF(i.note, '') AS note,
       f.value AS password,
       (SELECT value FROM itemfield WHERE item_uuid = i.uuid AND type = 'username' AND value != '' LIMIT 1) AS username,
       (SELECT value FROM itemfield WHERE item_uuid = i.uuid AND type = 'url' AND value != '' LIMIT 1) AS url
FROM item i
JOIN itemfield f ON f.item_uuid = i.uuid AND f.type = 'password'
WHERE i.deleted = 0
ORDER BY i.id;`

// Record is one raw credential row, still encrypted.
type Record struct {
	UUID  string
	Title string
	// Key holds the per-item AES-256 key followed by the GCM nonce. Items
	// deleted from Enpass keep their row but lose the nonce, so a short key
	// blob marks a tombstone.
	Key []byte
	// Password is the hex-encoded ciphertext plus tag of the password field.
	Password string
	Note     sql.NullString
	Username sql.NullString
	URL      sql.NullString
}

// Tombstone reports whether the record belongs to a deleted item.
func (r Record) Tombstone() bool {
	return len(r.Key) <= cryptox.KeySize
}

func queryRecords(ctx context.Context, db dbx.DBTX) ([]Record, error) {
	rows, err := db.QueryContext(ctx, retrieveAllQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreRead, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.UUID, &r.Title, &r.Key, &r.Note, &r.Password, &r.Username, &r.URL); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStoreRead, err)
		}
		if r.Tombstone() {
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreRead, err)
	}
	return records, nil
}
