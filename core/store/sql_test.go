package store_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/ref"
	"github.com/FocuswithJustin/CanonBridge/core/store"
	"github.com/FocuswithJustin/CanonBridge/core/store/storetest"
)

func TestCorpora(t *testing.T) {
	s := storetest.Open(t)

	got, err := s.Corpora(context.Background())
	if err != nil {
		t.Fatalf("Corpora() error = %v", err)
	}
	want := []store.Corpus{{ID: 1, Code: "LDS"}, {ID: 2, Code: "RLDS"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Corpora() = %+v, want %+v", got, want)
	}
}

func TestResolveVerse(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		book    string
		chapter int
		verse   int
		corpus  store.CorpusID
		wantID  store.VerseID
		wantOK  bool
	}{
		{"full title", "1 Nephi", 1, 2, storetest.LDS, 2, true},
		{"title ignores case", "1 NEPHI", 1, 2, storetest.LDS, 2, true},
		{"short title", "1 ne.", 2, 1, storetest.LDS, 4, true},
		{"book without short title", "Alma", 1, 1, storetest.LDS, 6, true},
		{"other corpus", "1 Nephi", 1, 4, storetest.RLDS, 104, true},
		{"verse only in other corpus", "1 Nephi", 1, 4, storetest.LDS, 0, false},
		{"missing chapter", "Alma", 9, 1, storetest.LDS, 0, false},
		{"unknown book", "Hezekiah", 1, 1, storetest.LDS, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := s.ResolveVerse(ctx, tt.book, tt.chapter, tt.verse, tt.corpus)
			if err != nil {
				t.Fatalf("ResolveVerse() error = %v", err)
			}
			if ok != tt.wantOK || v.ID != tt.wantID {
				t.Errorf("ResolveVerse() = %d, %v; want %d, %v", v.ID, ok, tt.wantID, tt.wantOK)
			}
			if ok && v.Text == "" {
				t.Error("ResolveVerse() returned no text")
			}
		})
	}
}

func TestResolveVerseDuplicateIsIntegrityFault(t *testing.T) {
	// A second LDS book whose short title collides with "Alma".
	s := storetest.Open(t,
		`INSERT INTO book (id, volume_id, title, short_title) VALUES (90, 1, 'Alma the Younger', 'Alma')`,
		`INSERT INTO chapter (id, book_id, chapter_number) VALUES (90, 90, 1)`,
		`INSERT INTO verse (id, chapter_id, verse_number, text) VALUES (90, 90, 1, 'duplicate')`,
	)

	_, ok, err := s.ResolveVerse(context.Background(), "Alma", 1, 1, storetest.LDS)
	if ok || !errors.Is(err, errors.ErrIntegrity) {
		t.Fatalf("ResolveVerse() = %v, %v; want integrity fault", ok, err)
	}
}

func TestResolveChapterBounds(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	b, ok, err := s.ResolveChapterBounds(ctx, "1 Ne.", 1, storetest.RLDS)
	if err != nil || !ok {
		t.Fatalf("ResolveChapterBounds() = %v, %v", ok, err)
	}
	if want := (store.ChapterBounds{Chapter: 11, First: 101, Last: 105}); b != want {
		t.Errorf("ResolveChapterBounds() = %+v, want %+v", b, want)
	}

	if _, ok, err := s.ResolveChapterBounds(ctx, "1 Nephi", 2, storetest.RLDS); ok || err != nil {
		t.Errorf("missing chapter = %v, %v; want absent", ok, err)
	}
}

func TestResolveChapterBoundsEmptyChapterIsAbsent(t *testing.T) {
	s := storetest.Open(t, `INSERT INTO chapter (id, book_id, chapter_number) VALUES (50, 2, 7)`)

	if _, ok, err := s.ResolveChapterBounds(context.Background(), "Alma", 7, storetest.LDS); ok || err != nil {
		t.Errorf("empty chapter = %v, %v; want absent", ok, err)
	}
}

func TestFetchContiguous(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	forward, err := s.FetchContiguous(ctx, 3, 6)
	if err != nil {
		t.Fatalf("FetchContiguous() error = %v", err)
	}
	if len(forward) != 4 {
		t.Fatalf("FetchContiguous(3, 6) returned %d rows, want 4", len(forward))
	}
	for i, r := range forward {
		if r.ID != store.VerseID(3+i) {
			t.Errorf("row %d id = %d, want %d", i, r.ID, 3+i)
		}
	}
	if got := forward[1].Components(); got != (ref.Components{Book: "1 Nephi", Chapter: 2, Verse: 1}) {
		t.Errorf("row 1 components = %v", got)
	}

	backward, err := s.FetchContiguous(ctx, 6, 3)
	if err != nil {
		t.Fatalf("FetchContiguous() error = %v", err)
	}
	if len(backward) != len(forward) || backward[0].ID != 3 {
		t.Errorf("swapped bounds returned %d rows starting at %d", len(backward), backward[0].ID)
	}

	single, err := s.FetchContiguous(ctx, 102, 102)
	if err != nil || len(single) != 1 {
		t.Errorf("FetchContiguous(102, 102) = %d rows, %v", len(single), err)
	}
}

func TestFetchComponents(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	c, ok, err := s.FetchComponents(ctx, 109, storetest.RLDS)
	if err != nil || !ok {
		t.Fatalf("FetchComponents() = %v, %v", ok, err)
	}
	if want := (ref.Components{Book: "Moroni", Chapter: 2, Verse: 1}); c != want {
		t.Errorf("FetchComponents() = %v, want %v", c, want)
	}

	// The verse exists but belongs to the other corpus.
	if _, ok, err := s.FetchComponents(ctx, 109, storetest.LDS); ok || err != nil {
		t.Errorf("wrong corpus = %v, %v; want absent", ok, err)
	}
}

func TestCrossReference(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	target, ok, err := s.CrossReference(ctx, 4)
	if err != nil || !ok || target != 104 {
		t.Errorf("CrossReference(4) = %d, %v, %v; want 104", target, ok, err)
	}

	if _, ok, err := s.CrossReference(ctx, 7); ok || err != nil {
		t.Errorf("CrossReference(7) = %v, %v; want absent", ok, err)
	}
}

func TestCrossReferenceSecondEdgeIsIntegrityFault(t *testing.T) {
	s := storetest.Open(t, `INSERT INTO cross_reference (verse_id, cross_ref_verse_id) VALUES (4, 105)`)

	_, ok, err := s.CrossReference(context.Background(), 4)
	if ok || !errors.Is(err, errors.ErrIntegrity) {
		t.Fatalf("CrossReference() = %v, %v; want integrity fault", ok, err)
	}
	var ie *errors.IntegrityError
	if !errors.As(err, &ie) || ie.Entity != "cross_reference" {
		t.Errorf("error = %#v, want IntegrityError on cross_reference", err)
	}
}

func TestNavigation(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	vols, err := s.ListVolumes(ctx, storetest.RLDS)
	if err != nil || len(vols) != 1 || vols[0].Title != "Book of Mormon" {
		t.Fatalf("ListVolumes() = %+v, %v", vols, err)
	}

	books, err := s.ListVolumeBooks(ctx, vols[0].ID)
	if err != nil {
		t.Fatalf("ListVolumeBooks() error = %v", err)
	}
	var titles []string
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	// Canonical order, not alphabetical.
	if len(titles) != 3 || titles[0] != "1 Nephi" || titles[1] != "Alma" || titles[2] != "Moroni" {
		t.Errorf("ListVolumeBooks() titles = %v", titles)
	}
	if books[0].ShortTitle != "1 Ne." || books[1].ShortTitle != "" {
		t.Errorf("short titles = %q, %q", books[0].ShortTitle, books[1].ShortTitle)
	}

	all, err := s.ListBooks(ctx, storetest.LDS)
	if err != nil || len(all) != 3 || all[0].ID != 1 {
		t.Errorf("ListBooks() = %+v, %v", all, err)
	}

	chapters, err := s.ListChapters(ctx, books[2].ID)
	if err != nil || len(chapters) != 2 || chapters[0].Number != 1 || chapters[1].Number != 2 {
		t.Errorf("ListChapters() = %+v, %v", chapters, err)
	}

	b, c, ok, err := s.ChapterInfo(ctx, chapters[1].ID, storetest.RLDS)
	if err != nil || !ok || b.Title != "Moroni" || c.Number != 2 {
		t.Errorf("ChapterInfo() = %+v, %+v, %v, %v", b, c, ok, err)
	}
}

func TestChapterInfoScope(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		chapter store.ChapterID
		corpus  store.CorpusID
		want    string
		wantOK  bool
	}{
		{"own corpus", 11, storetest.RLDS, "1 Nephi", true},
		{"other corpus", 11, storetest.LDS, "", false},
		{"primary chapter from secondary", 3, storetest.RLDS, "", false},
		{"missing", 999, storetest.LDS, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, ok, err := s.ChapterInfo(ctx, tt.chapter, tt.corpus)
			if err != nil {
				t.Fatalf("ChapterInfo() error = %v", err)
			}
			if ok != tt.wantOK || b.Title != tt.want {
				t.Errorf("ChapterInfo(%d, %d) = %q, %v; want %q, %v", tt.chapter, tt.corpus, b.Title, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFindBook(t *testing.T) {
	s := storetest.Open(t,
		`INSERT INTO book (id, volume_id, title, short_title) VALUES (7, 1, 'Words of Mormon', 'Wrds.')`,
	)
	ctx := context.Background()

	tests := []struct {
		name   string
		title  string
		corpus store.CorpusID
		wantID store.BookID
	}{
		{"full title", "Alma", storetest.RLDS, 5},
		{"lower case", "alma", storetest.RLDS, 5},
		{"upper case", "MORONI", storetest.LDS, 3},
		{"short title", "Moro.", storetest.RLDS, 6},
		{"short title any case", "1 NE.", storetest.LDS, 1},
		{"short title only in database", "wrds.", storetest.LDS, 7},
		{"other corpus", "Words of Mormon", storetest.RLDS, 0},
		{"unknown", "Helaman", storetest.RLDS, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok, err := s.FindBook(ctx, tt.title, tt.corpus)
			if err != nil {
				t.Fatalf("FindBook(%q) error = %v", tt.title, err)
			}
			if ok != (tt.wantID != 0) || b.ID != tt.wantID {
				t.Errorf("FindBook(%q) = %+v, %v; want id %d", tt.title, b, ok, tt.wantID)
			}
		})
	}
}

func TestBookPairs(t *testing.T) {
	s := storetest.Open(t)

	pairs, err := s.BookPairs(context.Background(), 2) // LDS Alma
	if err != nil {
		t.Fatalf("BookPairs() error = %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("BookPairs() returned %d rows, want 2", len(pairs))
	}

	mapped := pairs[0]
	if mapped.SourceVerse != 1 || mapped.Target == nil || mapped.Target.ID != 106 {
		t.Errorf("row 0 = %+v", mapped)
	}
	if mapped.Target != nil && mapped.Target.BookTitle != "Alma" {
		t.Errorf("row 0 target book = %q", mapped.Target.BookTitle)
	}

	// Unmapped verses are still listed.
	if pairs[1].SourceVerse != 2 || pairs[1].Target != nil {
		t.Errorf("row 1 = %+v, want unmapped verse 2", pairs[1])
	}
}

func TestChapterPairs(t *testing.T) {
	s := storetest.Open(t)

	pairs, err := s.ChapterPairs(context.Background(), 11) // RLDS 1 Nephi 1
	if err != nil {
		t.Fatalf("ChapterPairs() error = %v", err)
	}
	if len(pairs) != 5 {
		t.Fatalf("ChapterPairs() returned %d rows, want 5", len(pairs))
	}
	if last := pairs[4].Target; last == nil || last.ChapterNumber != 2 || last.Number != 2 {
		t.Errorf("row 4 target = %+v, want LDS 1 Nephi 2:2", last)
	}
}

func TestPairsSecondEdgeIsIntegrityFault(t *testing.T) {
	s := storetest.Open(t, `INSERT INTO cross_reference (verse_id, cross_ref_verse_id) VALUES (6, 107)`)

	if _, err := s.BookPairs(context.Background(), 2); !errors.Is(err, errors.ErrIntegrity) {
		t.Errorf("BookPairs() error = %v, want integrity fault", err)
	}
}

func TestOpenMissingFileIsStoreFault(t *testing.T) {
	_, err := store.Open(context.Background(), store.Options{Path: t.TempDir() + "/missing.db"})
	if err == nil {
		t.Fatal("Open() on a missing file succeeded")
	}
}

func TestOpenRejectsBadOptions(t *testing.T) {
	ctx := context.Background()

	if _, err := store.Open(ctx, store.Options{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("empty path error = %v", err)
	}
	if _, err := store.Open(ctx, store.Options{Driver: "postgres"}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("empty dsn error = %v", err)
	}
	if _, err := store.Open(ctx, store.Options{Driver: "oracle"}); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("unknown driver error = %v", err)
	}
}

func TestOpenVerifiesDigest(t *testing.T) {
	path := storetest.Path(t)
	_, err := store.Open(context.Background(), store.Options{Path: path, Digest: "00"})
	if !errors.Is(err, errors.ErrIntegrity) {
		t.Errorf("Open() with wrong digest error = %v, want integrity fault", err)
	}
}

// Fault injection: driver failures must surface as store faults, never as
// "not found".

func TestDriverErrorIsStoreFault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	driverErr := stderrors.New("connection reset by peer")
	mock.ExpectQuery("SELECT cross_ref_verse_id FROM cross_reference").
		WithArgs(int64(4)).
		WillReturnError(driverErr)

	s := store.NewSQLStore(db, store.DialectSQLite)
	_, ok, err := s.CrossReference(context.Background(), 4)
	if ok {
		t.Error("CrossReference() reported found on a driver error")
	}
	if !errors.Is(err, errors.ErrStore) || !errors.Is(err, driverErr) {
		t.Errorf("error = %v, want store fault wrapping the driver error", err)
	}
	var se *errors.StoreError
	if !errors.As(err, &se) || se.Operation != "cross_reference" {
		t.Errorf("error = %#v, want StoreError for cross_reference", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRowIterationErrorIsStoreFault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "corpus_id", "title"}).
		AddRow(1, 1, "Book of Mormon").
		AddRow(2, 1, "Old Testament").
		RowError(1, stderrors.New("disk I/O error"))
	mock.ExpectQuery("FROM volume").WithArgs(int64(1)).WillReturnRows(rows)

	s := store.NewSQLStore(db, store.DialectSQLite)
	if _, err := s.ListVolumes(context.Background(), 1); !errors.Is(err, errors.ErrStore) {
		t.Errorf("ListVolumes() error = %v, want store fault", err)
	}
}

func TestMultipleEdgeRowsFromDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT cross_ref_verse_id").
		WillReturnRows(sqlmock.NewRows([]string{"cross_ref_verse_id"}).AddRow(101).AddRow(102))

	s := store.NewSQLStore(db, store.DialectSQLite)
	if _, _, err := s.CrossReference(context.Background(), 1); !errors.Is(err, errors.ErrIntegrity) {
		t.Errorf("CrossReference() error = %v, want integrity fault", err)
	}
}

func TestPostgresDialectRebindsPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE v\.id = \$1 AND vol\.corpus_id = \$2`).
		WithArgs(int64(109), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"title", "chapter_number", "verse_number"}).AddRow("Moroni", 2, 1))

	s := store.NewSQLStore(db, store.DialectPostgres)
	c, ok, err := s.FetchComponents(context.Background(), 109, 2)
	if err != nil || !ok || c.String() != "Moroni 2:1" {
		t.Errorf("FetchComponents() = %v, %v, %v", c, ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCanceledContextIsStoreFault(t *testing.T) {
	s := storetest.Open(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := s.ResolveVerse(ctx, "Alma", 1, 1, storetest.LDS); !errors.Is(err, errors.ErrStore) {
		t.Errorf("ResolveVerse() on canceled context error = %v, want store fault", err)
	}
}
