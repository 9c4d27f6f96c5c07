package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CanonBridge/core/errors"
	"github.com/FocuswithJustin/CanonBridge/core/ref"
)

// Dialect selects the bind-parameter syntax of the backend.
type Dialect string

const (
	// DialectSQLite uses "?" placeholders.
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres uses "$1", "$2", ... placeholders.
	DialectPostgres Dialect = "postgres"
)

// SQLStore implements Store over database/sql. The queries are written with
// "?" placeholders and rebound for the dialect at call time.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	cleanup func()
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open database. The store does not own db unless it
// was created by Open.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// DB returns the underlying pool.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect returns the store's dialect.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Close closes the pool and removes any temporary files Open created.
func (s *SQLStore) Close() error {
	err := s.db.Close()
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return err
}

// Ping checks that the backend is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return errors.NewStore("ping", s.db.PingContext(ctx))
}

const (
	queryCorpora = `SELECT id, short_name FROM corpus ORDER BY id`

	queryResolveVerse = `
SELECT v.id, v.chapter_id, v.verse_number, v.text
FROM verse v
JOIN chapter c ON v.chapter_id = c.id
JOIN book b ON c.book_id = b.id
JOIN volume vol ON b.volume_id = vol.id
WHERE (UPPER(b.title) = UPPER(?) OR UPPER(b.short_title) = UPPER(?))
  AND c.chapter_number = ?
  AND v.verse_number = ?
  AND vol.corpus_id = ?`

	queryChapterBounds = `
SELECT c.id, MIN(v.id), MAX(v.id)
FROM verse v
JOIN chapter c ON v.chapter_id = c.id
JOIN book b ON c.book_id = b.id
JOIN volume vol ON b.volume_id = vol.id
WHERE (UPPER(b.title) = UPPER(?) OR UPPER(b.short_title) = UPPER(?))
  AND c.chapter_number = ?
  AND vol.corpus_id = ?
GROUP BY c.id`

	queryContiguous = `
SELECT v.id, v.chapter_id, v.verse_number, v.text, b.title, c.chapter_number
FROM verse v
JOIN chapter c ON v.chapter_id = c.id
JOIN book b ON c.book_id = b.id
WHERE v.id BETWEEN ? AND ?
ORDER BY v.id`

	queryComponents = `
SELECT b.title, c.chapter_number, v.verse_number
FROM verse v
JOIN chapter c ON v.chapter_id = c.id
JOIN book b ON c.book_id = b.id
JOIN volume vol ON b.volume_id = vol.id
WHERE v.id = ? AND vol.corpus_id = ?`

	queryCrossReference = `SELECT cross_ref_verse_id FROM cross_reference WHERE verse_id = ?`

	queryVolumes = `SELECT id, corpus_id, title FROM volume WHERE corpus_id = ? ORDER BY id`

	queryCorpusBooks = `
SELECT b.id, b.volume_id, b.title, b.short_title
FROM book b
JOIN volume vol ON b.volume_id = vol.id
WHERE vol.corpus_id = ?
ORDER BY b.id`

	queryVolumeBooks = `SELECT id, volume_id, title, short_title FROM book WHERE volume_id = ? ORDER BY id`

	queryChapters = `SELECT id, book_id, chapter_number FROM chapter WHERE book_id = ? ORDER BY chapter_number`

	queryFindBook = `
SELECT b.id, b.volume_id, b.title, b.short_title
FROM book b
JOIN volume vol ON b.volume_id = vol.id
WHERE vol.corpus_id = ?
  AND (UPPER(b.title) = UPPER(?) OR UPPER(b.short_title) = UPPER(?))`

	queryChapterInfo = `
SELECT b.id, b.volume_id, b.title, b.short_title, c.id, c.book_id, c.chapter_number
FROM chapter c
JOIN book b ON c.book_id = b.id
JOIN volume vol ON b.volume_id = vol.id
WHERE c.id = ? AND vol.corpus_id = ?`

	// Source rows with no edge survive the LEFT JOINs with NULL targets.
	queryPairs = `
SELECT v_source.id, c_source.chapter_number, v_source.verse_number, v_source.text,
       v_target.id, v_target.chapter_id, v_target.verse_number, v_target.text,
       b_target.title, c_target.chapter_number
FROM verse AS v_source
JOIN chapter AS c_source ON v_source.chapter_id = c_source.id
LEFT JOIN cross_reference AS cr ON v_source.id = cr.verse_id
LEFT JOIN verse AS v_target ON cr.cross_ref_verse_id = v_target.id
LEFT JOIN chapter AS c_target ON v_target.chapter_id = c_target.id
LEFT JOIN book AS b_target ON c_target.book_id = b_target.id
WHERE %s = ?
ORDER BY v_source.id`
)

// Corpora lists every corpus in id order.
func (s *SQLStore) Corpora(ctx context.Context) ([]Corpus, error) {
	rows, err := s.query(ctx, queryCorpora)
	if err != nil {
		return nil, errors.NewStore("corpora", err)
	}
	defer rows.Close()

	var out []Corpus
	for rows.Next() {
		var c Corpus
		if err := rows.Scan(&c.ID, &c.Code); err != nil {
			return nil, errors.NewStore("corpora", err)
		}
		out = append(out, c)
	}
	return out, errors.NewStore("corpora", rows.Err())
}

// ResolveVerse finds a verse by book name, chapter and verse number.
func (s *SQLStore) ResolveVerse(ctx context.Context, book string, chapter, verse int, corpus CorpusID) (Verse, bool, error) {
	var v Verse
	key := fmt.Sprintf("%s %d:%d in corpus %d", book, chapter, verse, corpus)
	found, err := s.queryOne(ctx, "resolve_verse", "verse", key, func(rows *sql.Rows) error {
		return rows.Scan(&v.ID, &v.Chapter, &v.Number, &v.Text)
	}, queryResolveVerse, book, book, chapter, verse, int64(corpus))
	if err != nil || !found {
		return Verse{}, false, err
	}
	return v, true, nil
}

// ResolveChapterBounds finds a chapter's id and its verse id range.
func (s *SQLStore) ResolveChapterBounds(ctx context.Context, book string, chapter int, corpus CorpusID) (ChapterBounds, bool, error) {
	var (
		b           ChapterBounds
		first, last sql.NullInt64
	)
	key := fmt.Sprintf("%s %d in corpus %d", book, chapter, corpus)
	found, err := s.queryOne(ctx, "resolve_chapter_bounds", "chapter", key, func(rows *sql.Rows) error {
		return rows.Scan(&b.Chapter, &first, &last)
	}, queryChapterBounds, book, book, chapter, int64(corpus))
	if err != nil || !found {
		return ChapterBounds{}, false, err
	}
	if !first.Valid || !last.Valid {
		return ChapterBounds{}, false, nil
	}
	b.First, b.Last = VerseID(first.Int64), VerseID(last.Int64)
	return b, true, nil
}

// FetchContiguous returns the verses between first and last inclusive.
func (s *SQLStore) FetchContiguous(ctx context.Context, first, last VerseID) ([]VerseRecord, error) {
	if first > last {
		first, last = last, first
	}

	rows, err := s.query(ctx, queryContiguous, int64(first), int64(last))
	if err != nil {
		return nil, errors.NewStore("fetch_contiguous", err)
	}
	defer rows.Close()

	var out []VerseRecord
	for rows.Next() {
		var r VerseRecord
		if err := rows.Scan(&r.ID, &r.Chapter, &r.Number, &r.Text, &r.BookTitle, &r.ChapterNumber); err != nil {
			return nil, errors.NewStore("fetch_contiguous", err)
		}
		out = append(out, r)
	}
	return out, errors.NewStore("fetch_contiguous", rows.Err())
}

// FetchComponents returns the location of a verse within corpus.
func (s *SQLStore) FetchComponents(ctx context.Context, id VerseID, corpus CorpusID) (ref.Components, bool, error) {
	var c ref.Components
	key := fmt.Sprintf("verse %d in corpus %d", id, corpus)
	found, err := s.queryOne(ctx, "fetch_components", "verse", key, func(rows *sql.Rows) error {
		return rows.Scan(&c.Book, &c.Chapter, &c.Verse)
	}, queryComponents, int64(id), int64(corpus))
	if err != nil || !found {
		return ref.Components{}, false, err
	}
	return c, true, nil
}

// CrossReference returns the target of the edge leaving source. A second edge
// is an integrity fault; the mapping is single-valued.
func (s *SQLStore) CrossReference(ctx context.Context, source VerseID) (VerseID, bool, error) {
	var target VerseID
	key := "verse " + strconv.FormatInt(int64(source), 10)
	found, err := s.queryOne(ctx, "cross_reference", "cross_reference", key, func(rows *sql.Rows) error {
		return rows.Scan(&target)
	}, queryCrossReference, int64(source))
	if err != nil || !found {
		return 0, false, err
	}
	return target, true, nil
}

// ListVolumes lists the volumes of a corpus in id order.
func (s *SQLStore) ListVolumes(ctx context.Context, corpus CorpusID) ([]Volume, error) {
	rows, err := s.query(ctx, queryVolumes, int64(corpus))
	if err != nil {
		return nil, errors.NewStore("list_volumes", err)
	}
	defer rows.Close()

	var out []Volume
	for rows.Next() {
		var v Volume
		if err := rows.Scan(&v.ID, &v.Corpus, &v.Title); err != nil {
			return nil, errors.NewStore("list_volumes", err)
		}
		out = append(out, v)
	}
	return out, errors.NewStore("list_volumes", rows.Err())
}

// ListBooks lists every book of a corpus in id order.
func (s *SQLStore) ListBooks(ctx context.Context, corpus CorpusID) ([]Book, error) {
	return s.listBooks(ctx, "list_books", queryCorpusBooks, int64(corpus))
}

// ListVolumeBooks lists the books of a volume in id order.
func (s *SQLStore) ListVolumeBooks(ctx context.Context, volume VolumeID) ([]Book, error) {
	return s.listBooks(ctx, "list_volume_books", queryVolumeBooks, int64(volume))
}

func (s *SQLStore) listBooks(ctx context.Context, op, query string, arg int64) ([]Book, error) {
	rows, err := s.query(ctx, query, arg)
	if err != nil {
		return nil, errors.NewStore(op, err)
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, errors.NewStore(op, err)
		}
		out = append(out, b)
	}
	return out, errors.NewStore(op, rows.Err())
}

// ListChapters lists the chapters of a book by chapter number.
func (s *SQLStore) ListChapters(ctx context.Context, book BookID) ([]Chapter, error) {
	rows, err := s.query(ctx, queryChapters, int64(book))
	if err != nil {
		return nil, errors.NewStore("list_chapters", err)
	}
	defer rows.Close()

	var out []Chapter
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.Book, &c.Number); err != nil {
			return nil, errors.NewStore("list_chapters", err)
		}
		out = append(out, c)
	}
	return out, errors.NewStore("list_chapters", rows.Err())
}

// FindBook finds a book within corpus by full or short title, ignoring case.
// Verse lookups match books the same way.
func (s *SQLStore) FindBook(ctx context.Context, title string, corpus CorpusID) (Book, bool, error) {
	var b Book
	key := fmt.Sprintf("%s in corpus %d", title, corpus)
	found, err := s.queryOne(ctx, "find_book", "book", key, func(rows *sql.Rows) error {
		var scanErr error
		b, scanErr = scanBook(rows)
		return scanErr
	}, queryFindBook, int64(corpus), title, title)
	if err != nil || !found {
		return Book{}, false, err
	}
	return b, true, nil
}

// ChapterInfo returns a chapter and the book it belongs to. A chapter of
// another corpus is reported absent.
func (s *SQLStore) ChapterInfo(ctx context.Context, chapter ChapterID, corpus CorpusID) (Book, Chapter, bool, error) {
	var (
		b     Book
		c     Chapter
		short sql.NullString
	)
	key := fmt.Sprintf("chapter %d in corpus %d", chapter, corpus)
	found, err := s.queryOne(ctx, "chapter_info", "chapter", key, func(rows *sql.Rows) error {
		return rows.Scan(&b.ID, &b.Volume, &b.Title, &short, &c.ID, &c.Book, &c.Number)
	}, queryChapterInfo, int64(chapter), int64(corpus))
	if err != nil || !found {
		return Book{}, Chapter{}, false, err
	}
	b.ShortTitle = short.String
	return b, c, true, nil
}

// BookPairs returns every verse of a book with its cross-reference target.
func (s *SQLStore) BookPairs(ctx context.Context, book BookID) ([]VersePair, error) {
	return s.pairs(ctx, "book_pairs", "c_source.book_id", int64(book))
}

// ChapterPairs returns every verse of a chapter with its cross-reference
// target.
func (s *SQLStore) ChapterPairs(ctx context.Context, chapter ChapterID) ([]VersePair, error) {
	return s.pairs(ctx, "chapter_pairs", "v_source.chapter_id", int64(chapter))
}

func (s *SQLStore) pairs(ctx context.Context, op, column string, arg int64) ([]VersePair, error) {
	rows, err := s.query(ctx, fmt.Sprintf(queryPairs, column), arg)
	if err != nil {
		return nil, errors.NewStore(op, err)
	}
	defer rows.Close()

	var out []VersePair
	for rows.Next() {
		var (
			p         VersePair
			targetID  sql.NullInt64
			targetCh  sql.NullInt64
			targetNum sql.NullInt64
			text      sql.NullString
			title     sql.NullString
			chapter   sql.NullInt64
		)
		if err := rows.Scan(&p.SourceID, &p.SourceChapter, &p.SourceVerse, &p.SourceText,
			&targetID, &targetCh, &targetNum, &text, &title, &chapter); err != nil {
			return nil, errors.NewStore(op, err)
		}

		// A repeated source id means the LEFT JOIN fanned out over a second
		// edge.
		if n := len(out); n > 0 && out[n-1].SourceID == p.SourceID {
			return nil, errors.NewIntegrity("cross_reference",
				"verse "+strconv.FormatInt(int64(p.SourceID), 10), "more than one cross-reference edge")
		}

		if targetID.Valid {
			p.Target = &VerseRecord{
				Verse: Verse{
					ID:      VerseID(targetID.Int64),
					Chapter: ChapterID(targetCh.Int64),
					Number:  int(targetNum.Int64),
					Text:    text.String,
				},
				BookTitle:     title.String,
				ChapterNumber: int(chapter.Int64),
			}
		}
		out = append(out, p)
	}
	return out, errors.NewStore(op, rows.Err())
}

// queryOne runs a query expected to match at most one row. No row reports
// false; a second row is an integrity fault on entity.
func (s *SQLStore) queryOne(ctx context.Context, op, entity, key string, scan func(*sql.Rows) error, query string, args ...any) (bool, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return false, errors.NewStore(op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return false, errors.NewStore(op, rows.Err())
	}
	if err := scan(rows); err != nil {
		return false, errors.NewStore(op, err)
	}
	if rows.Next() {
		return false, errors.NewIntegrity(entity, key, "more than one row matched")
	}
	if err := rows.Err(); err != nil {
		return false, errors.NewStore(op, err)
	}
	return true, nil
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

// rebind rewrites "?" placeholders for the store's dialect.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var (
		b     Book
		short sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Volume, &b.Title, &short); err != nil {
		return Book{}, err
	}
	b.ShortTitle = short.String
	return b, nil
}
