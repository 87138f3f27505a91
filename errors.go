package enpassreaderlib

import "github.com/costastf/enpassreaderlib/internal/common"

// Sentinel errors returned by this package. Match them with errors.Is.
var (
	// ErrAuthenticationFailed means the master password or key file cannot
	// decrypt the database, or the file is not a valid Enpass 6 database.
	ErrAuthenticationFailed = common.ErrAuthenticationFailed

	// ErrStoreRead means the database decrypted but its schema or content is
	// not what an Enpass 6 vault contains.
	ErrStoreRead = common.ErrStoreRead

	// ErrNotFound means no entry carries the exact title that was looked up.
	ErrNotFound = common.ErrNotFound
)
