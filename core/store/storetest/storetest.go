// Package storetest builds small SQLite corpus databases for tests.
//
// The fixture holds two canons laid out so that every resolution path is
// reachable:
//
//	LDS (corpus 1)                RLDS (corpus 2)
//	1 Nephi 1:1-3  ids 1-3    ->  1 Nephi 1:1-3  ids 101-103
//	1 Nephi 2:1-2  ids 4-5    ->  1 Nephi 1:4-5  ids 104-105
//	Alma 1:1       id 6       ->  Alma 1:1       id 106
//	Alma 1:2       id 7           (no edge)
//	Moroni 1:1     id 8       ->  Moroni 1:1     id 108
//	Moroni 1:2     id 9       ->  Moroni 2:1     id 109
//
// Every edge has a reverse edge. RLDS Alma 1:2 (id 107) has none.
package storetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/CanonBridge/core/sqlite"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// Corpus ids in the fixture.
const (
	LDS  store.CorpusID = 1
	RLDS store.CorpusID = 2
)

const seed = `
INSERT INTO corpus (id, short_name) VALUES (1, 'LDS'), (2, 'RLDS');

INSERT INTO volume (id, corpus_id, title) VALUES
	(1, 1, 'Book of Mormon'),
	(2, 2, 'Book of Mormon');

INSERT INTO book (id, volume_id, title, short_title) VALUES
	(1, 1, '1 Nephi', '1 Ne.'),
	(2, 1, 'Alma', NULL),
	(3, 1, 'Moroni', 'Moro.'),
	(4, 2, '1 Nephi', '1 Ne.'),
	(5, 2, 'Alma', NULL),
	(6, 2, 'Moroni', 'Moro.');

INSERT INTO chapter (id, book_id, chapter_number) VALUES
	(1, 1, 1), (2, 1, 2), (3, 2, 1), (4, 3, 1),
	(11, 4, 1), (12, 5, 1), (13, 6, 1), (14, 6, 2);

INSERT INTO verse (id, chapter_id, verse_number, text) VALUES
	(1, 1, 1, 'I, Nephi, having been born of goodly parents'),
	(2, 1, 2, 'Yea, I make a record in the language of my father'),
	(3, 1, 3, 'And I know that the record which I make is true'),
	(4, 2, 1, 'For behold, it came to pass that the Lord spake'),
	(5, 2, 2, 'And it came to pass that he departed into the wilderness'),
	(6, 3, 1, 'Now it came to pass that in the first year'),
	(7, 3, 2, 'And it came to pass that there was a man brought before him'),
	(8, 4, 1, 'Now I, Moroni, after having made an end'),
	(9, 4, 2, 'For behold, their wars are exceedingly fierce'),
	(101, 11, 1, 'I, Nephi, having been born of goodly parents'),
	(102, 11, 2, 'Yea, I make a record in the language of my father'),
	(103, 11, 3, 'And I know that the record which I make is true'),
	(104, 11, 4, 'For behold, it came to pass that the Lord spake'),
	(105, 11, 5, 'And it came to pass that he departed into the wilderness'),
	(106, 12, 1, 'Now it came to pass that in the first year'),
	(107, 12, 2, 'And it came to pass that there was a man brought before him'),
	(108, 13, 1, 'Now I, Moroni, after having made an end'),
	(109, 14, 1, 'For behold, their wars are exceedingly fierce');

INSERT INTO cross_reference (verse_id, cross_ref_verse_id) VALUES
	(1, 101), (2, 102), (3, 103), (4, 104), (5, 105), (6, 106), (8, 108), (9, 109),
	(101, 1), (102, 2), (103, 3), (104, 4), (105, 5), (106, 6), (108, 8), (109, 9);
`

// Path writes the fixture database into a temp dir and returns its path.
// Extra statements run after the seed data, which is how tests introduce
// corrupt rows.
func Path(t testing.TB, extra ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scriptures.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()

	for _, stmt := range append([]string{store.Schema, seed}, extra...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("build fixture: %v\n%s", err, stmt)
		}
	}
	return path
}

// Open builds the fixture and opens it read-only through store.Open. The
// store is closed when the test ends.
func Open(t testing.TB, extra ...string) *store.SQLStore {
	t.Helper()

	s, err := store.Open(context.Background(), store.Options{Path: Path(t, extra...)})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// DB opens the fixture read-write for tests that need the raw pool.
func DB(t testing.TB, extra ...string) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(Path(t, extra...))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
