package enpassreaderlib

import "github.com/google/uuid"

// Entry is one decrypted credential record. Entries are immutable: they
// reflect the database at the moment it was opened and are never written
// back.
type Entry struct {
	// UUID is the stable identifier the entry carries in the database.
	UUID uuid.UUID

	// Title is the display name. Titles are not guaranteed unique.
	Title string

	// Password is the decrypted plaintext password.
	Password string

	// Username, URL and Notes are optional. A nil pointer means the field is
	// absent in the database, which is distinct from an empty string.
	Username *string
	URL      *string
	Notes    *string
}
