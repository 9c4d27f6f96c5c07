package store

// Schema is the table layout the store reads. It is valid for both SQLite
// and Postgres and is used to build test fixtures; the store never runs it
// against a production database.
//
// cross_reference deliberately has no unique constraint on verse_id so that
// a malformed load is detectable as an integrity fault instead of being
// rejected at insert time.
const Schema = `
CREATE TABLE corpus (
	id         INTEGER PRIMARY KEY,
	short_name TEXT NOT NULL UNIQUE
);
CREATE TABLE volume (
	id        INTEGER PRIMARY KEY,
	corpus_id INTEGER NOT NULL REFERENCES corpus(id),
	title     TEXT NOT NULL
);
CREATE TABLE book (
	id          INTEGER PRIMARY KEY,
	volume_id   INTEGER NOT NULL REFERENCES volume(id),
	title       TEXT NOT NULL,
	short_title TEXT
);
CREATE TABLE chapter (
	id             INTEGER PRIMARY KEY,
	book_id        INTEGER NOT NULL REFERENCES book(id),
	chapter_number INTEGER NOT NULL
);
CREATE TABLE verse (
	id           INTEGER PRIMARY KEY,
	chapter_id   INTEGER NOT NULL REFERENCES chapter(id),
	verse_number INTEGER NOT NULL,
	text         TEXT NOT NULL
);
CREATE TABLE cross_reference (
	verse_id           INTEGER NOT NULL REFERENCES verse(id),
	cross_ref_verse_id INTEGER NOT NULL REFERENCES verse(id)
);
CREATE INDEX idx_cross_reference_verse ON cross_reference(verse_id);
`
