package store

import (
	"context"
	"fmt"

	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/sqlite"
)

// Options selects and configures a backend.
type Options struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string

	// Path is the SQLite database file. A ".xz" file is inflated to TempDir
	// first when Compressed is set or the suffix says so.
	Path       string
	Compressed bool
	TempDir    string

	// Digest is the expected BLAKE3 hex digest of Path. Empty skips the
	// check.
	Digest string

	// DSN is the Postgres connection URL.
	DSN string
}

// Open opens the backend described by opts. SQLite files are always opened
// read-only.
func Open(ctx context.Context, opts Options) (*SQLStore, error) {
	switch opts.Driver {
	case "", string(DialectSQLite):
		return openSQLite(ctx, opts)
	case string(DialectPostgres):
		if opts.DSN == "" {
			return nil, errors.NewValidation("database.dsn", "required for the postgres driver")
		}
		return OpenPostgres(ctx, opts.DSN)
	default:
		return nil, errors.NewUnsupported("database driver "+opts.Driver, "use sqlite or postgres")
	}
}

func openSQLite(ctx context.Context, opts Options) (*SQLStore, error) {
	if opts.Path == "" {
		return nil, errors.NewValidation("database.path", "required for the sqlite driver")
	}
	if err := sqlite.VerifyDigest(opts.Path, opts.Digest); err != nil {
		return nil, err
	}

	s := &SQLStore{dialect: DialectSQLite}
	if opts.Compressed || sqlite.IsCompressed(opts.Path) {
		db, cleanup, err := sqlite.OpenCompressed(opts.Path, opts.TempDir)
		if err != nil {
			return nil, err
		}
		s.db, s.cleanup = db, cleanup
	} else {
		db, err := sqlite.OpenReadOnly(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.db = db
	}

	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
