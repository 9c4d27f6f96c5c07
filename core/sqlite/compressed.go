package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// IsCompressed reports whether path names an xz-compressed database.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".xz")
}

// OpenCompressed inflates an xz-compressed SQLite file into tempDir and opens
// the copy read-only. The returned cleanup closes the database and removes the
// inflated copy; it is safe to call more than once.
func OpenCompressed(path, tempDir string) (*sql.DB, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening compressed database: %w", err)
	}
	defer src.Close()

	xzr, err := xz.NewReader(src)
	if err != nil {
		return nil, nil, fmt.Errorf("reading xz header: %w", err)
	}

	tmp, err := os.CreateTemp(tempDir, "corpus-*.db")
	if err != nil {
		return nil, nil, fmt.Errorf("creating inflated copy: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, xzr); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, nil, fmt.Errorf("inflating database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, nil, fmt.Errorf("closing inflated copy: %w", err)
	}

	db, err := OpenReadOnly(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, nil, err
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		db.Close()
		os.Remove(tmpPath)
	}
	return db, cleanup, nil
}
