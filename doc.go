// Package enpassreaderlib reads Enpass 6 password databases.
//
// # Overview
//
// An Enpass database is a SQLCipher-encrypted SQLite file. Open unlocks it
// with the master password (and optional key file), loads every credential
// entry into memory in one eager pass, decrypts the per-entry password
// fields, and closes the file again before returning. The resulting DB is an
// immutable snapshot offering exact lookup, fuzzy search and ordered
// iteration. Nothing is ever written back.
//
// Decryption of the database pages is delegated to the SQLCipher driver
// (github.com/mutecomm/go-sqlcipher); this package only derives the raw key
// and maps decrypted rows to entries.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrAuthenticationFailed (wrong password/key file, or not an Enpass 6
// database), ErrStoreRead (decrypted fine but unexpected schema or content)
// and ErrNotFound (exact lookup miss). Open either loads the full entry set
// or fails; there are no partial loads. Search never fails, it just yields
// nothing.
//
// # Concurrency
//
// A DB is safe for concurrent readers once Open returns: all state is an
// immutable in-memory snapshot and no database handle survives Open.
//
// Typical Usage
//
//	db, err := enpassreaderlib.Open(ctx, "vault.enpassdb", password,
//	    enpassreaderlib.WithKeyFile("vault.key"))
//	if err != nil {
//	    // errors.Is(err, enpassreaderlib.ErrAuthenticationFailed) ...
//	}
//	entry, err := db.GetEntry("Gmail")
//	for e := range db.SearchEntries("git") {
//	    fmt.Println(e.Title)
//	}
package enpassreaderlib
