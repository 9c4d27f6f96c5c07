// Package sqlite opens corpus databases through either the pure Go
// (modernc.org/sqlite) or the CGO (mattn/go-sqlite3) driver.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): Uses mattn/go-sqlite3 via contrib/sqlite-external
//
// Corpus databases are only ever read, so OpenReadOnly is the normal entry
// point. OpenCompressed accepts an xz-compressed database file and
// VerifyDigest checks a file against a pinned BLAKE3 digest before use.
package sqlite

import (
	"database/sql"
)

// Driver describes the SQLite implementation selected at build time.
type Driver struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Package string `json:"package"`
}

// CurrentDriver returns the compiled-in driver.
func CurrentDriver() Driver {
	return Driver{Name: driverName, Type: driverType, Package: driverPackage}
}

// CGO reports whether d is the mattn/go-sqlite3 implementation.
func (d Driver) CGO() bool {
	return d.Type == "cgo"
}

func (d Driver) String() string {
	return d.Type + " (" + d.Package + ")"
}

// Open opens a SQLite database with the compiled-in driver. Use it instead
// of sql.Open so the driver name matches the build.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens a corpus database in read-only mode. Writes through the
// returned handle fail.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}
