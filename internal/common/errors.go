// Package common defines sentinel errors shared across the library's layers.
// The root package re-exports them; callers match them with errors.Is.
package common

import "errors"

var (
	// ErrAuthenticationFailed reports that the master password or key file
	// cannot decrypt the database, or that the file is not a valid Enpass 6
	// encrypted database. The underlying driver does not distinguish the two.
	ErrAuthenticationFailed = errors.New("master password or key file cannot decrypt the database, or it is not a valid enpass 6 database")

	// ErrStoreRead reports that the database decrypted fine but its schema or
	// content is not what an Enpass 6 vault contains.
	ErrStoreRead = errors.New("unexpected enpass database schema or content")

	// ErrNotFound reports an exact-title lookup miss.
	ErrNotFound = errors.New("entry not found")
)
