// Command canonbridge converts scripture references between the LDS and RLDS
// canons and serves the comparison API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CanonBridge/core/compare"
	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/sqlite"
	"github.com/FocuswithJustin/CanonBridge/core/store"
	"github.com/FocuswithJustin/CanonBridge/internal/config"
	"github.com/FocuswithJustin/CanonBridge/internal/logging"
	"github.com/FocuswithJustin/CanonBridge/internal/metrics"
)

const version = "0.1.0"

// Globals are flags shared by every command. Flags override the loaded
// configuration.
type Globals struct {
	Config    string `help:"Config file (TOML). Defaults to canonbridge.toml searched upward, then ~/.canonbridge/config.toml" type:"path"`
	DB        string `name:"db" help:"SQLite database path (overrides database.path)" type:"path"`
	JSON      bool   `name:"json" help:"Print results as JSON"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat string `name:"log-format" help:"Log format: json or text"`
}

// CLI defines the command-line interface for canonbridge.
type CLI struct {
	Globals

	Verse    VerseCmd    `cmd:"" help:"Convert a single verse reference"`
	Chapter  ChapterCmd  `cmd:"" help:"Map a whole chapter onto the other canon"`
	Book     BookCmd     `cmd:"" help:"Compare an entire book side by side"`
	Volumes  VolumesCmd  `cmd:"" help:"List the volumes of a corpus"`
	Books    BooksCmd    `cmd:"" help:"List books by corpus or volume"`
	Chapters ChaptersCmd `cmd:"" help:"List the chapters of a book"`
	Read     ReadCmd     `cmd:"" help:"Read a chapter beside its counterpart"`
	Digest   DigestCmd   `cmd:"" help:"Print or verify the BLAKE3 digest of a database file"`
	Serve    ServeCmd    `cmd:"" help:"Start the REST API server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// load reads the configuration and applies the global flag overrides, then
// configures logging. Logs go to stderr so stdout stays parseable.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	if g.DB != "" {
		cfg.Database.Driver = string(store.DialectSQLite)
		cfg.Database.Path = g.DB
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.InitLoggerTo(os.Stderr, logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))
	return cfg, nil
}

// session is an opened store with its decorators and comparer.
type session struct {
	cfg      *config.Config
	db       *store.SQLStore
	store    *store.Cached
	metrics  *metrics.Metrics
	comparer *compare.Comparer
}

// open loads configuration and opens the store. The store is instrumented
// first and cached outside that, so metrics count real queries only.
func (g *Globals) open(ctx context.Context) (*session, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, err
	}
	if db.Dialect() == store.DialectPostgres {
		logging.DatabaseOpened(string(db.Dialect()), "dsn")
	} else {
		logging.DatabaseOpened(string(db.Dialect()), cfg.Database.Path, "impl", sqlite.CurrentDriver().Type)
	}

	m := metrics.New()
	cached := store.NewCached(m.InstrumentStore(db), cfg.Cache.Size)
	m.RegisterCacheStats("store", cached.Stats)

	return &session{
		cfg:      cfg,
		db:       db,
		store:    cached,
		metrics:  m,
		comparer: compare.New(cached, cfg.Corpora.Primary, cfg.Corpora.Secondary),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// context bounds a single command by the configured query timeout.
func (s *session) context() (context.Context, context.CancelFunc) {
	if timeout := s.cfg.QueryTimeout(); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// from defaults an empty corpus code to the primary corpus.
func (s *session) from(code string) string {
	if code != "" {
		return code
	}
	primary, _ := s.comparer.Codes()
	return primary
}

// describe rewords store and integrity faults for the terminal. Other errors
// pass through unchanged.
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrIntegrity):
		return fmt.Errorf("the scripture database is inconsistent: %w", err)
	case errors.Is(err, errors.ErrStore):
		return fmt.Errorf("the scripture database is unavailable: %w", err)
	default:
		return err
	}
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("canonbridge"),
		kong.Description("CanonBridge - LDS/RLDS scripture reference converter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Bind(&cli.Globals),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return describe(ctx.Run())
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "canonbridge: error: %v\n", err)
		os.Exit(1)
	}
}
