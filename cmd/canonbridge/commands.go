package main

import (
	"context"
	"fmt"
	"io"

	"github.com/FocuswithJustin/CanonBridge/core/compare"
	"github.com/FocuswithJustin/CanonBridge/core/sqlite"
	"github.com/FocuswithJustin/CanonBridge/core/store"
)

// VerseCmd converts a single verse reference.
type VerseCmd struct {
	Ref  string `arg:"" help:"Reference such as \"1 Nephi 3:7\""`
	From string `help:"Source corpus code (default: the primary corpus)"`
}

func (c *VerseCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	res, err := sess.comparer.Verse(ctx, c.Ref, sess.from(c.From))
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, res)
	}
	return renderVerse(out, res)
}

// ChapterCmd maps a chapter onto the other canon.
type ChapterCmd struct {
	Ref  string `arg:"" help:"Chapter reference such as \"Alma 5\""`
	From string `help:"Source corpus code (default: the primary corpus)"`
}

func (c *ChapterCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	res, err := sess.comparer.Chapter(ctx, c.Ref, sess.from(c.From))
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, res)
	}
	return renderChapter(out, res)
}

// BookCmd compares a whole book.
type BookCmd struct {
	Title string `arg:"" help:"Book title or abbreviation"`
	From  string `help:"Source corpus code (default: the primary corpus)"`
}

func (c *BookCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	res, err := sess.comparer.Book(ctx, c.Title, sess.from(c.From))
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, res)
	}
	return renderBook(out, res)
}

// VolumesCmd lists the volumes of a corpus.
type VolumesCmd struct {
	Corpus string `help:"Corpus code (default: the primary corpus)"`
}

func (c *VolumesCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	dir, err := sess.comparer.Direction(ctx, sess.from(c.Corpus))
	if err != nil {
		return err
	}
	list, err := sess.store.ListVolumes(ctx, dir.Source.ID)
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "No volumes found for the %s corpus.\n", dir.Source.Code)
		return nil
	}
	for _, v := range list {
		fmt.Fprintf(out, "%6d  %s\n", v.ID, v.Title)
	}
	return nil
}

// BooksCmd lists books of a corpus or of one volume.
type BooksCmd struct {
	Corpus string `help:"Corpus code (default: the primary corpus)" xor:"scope"`
	Volume int64  `help:"Volume id" xor:"scope"`
}

func (c *BooksCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	var list []store.Book
	if c.Volume > 0 {
		list, err = sess.store.ListVolumeBooks(ctx, store.VolumeID(c.Volume))
	} else {
		var dir compare.Direction
		dir, err = sess.comparer.Direction(ctx, sess.from(c.Corpus))
		if err == nil {
			list, err = sess.store.ListBooks(ctx, dir.Source.ID)
		}
	}
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No books found.")
		return nil
	}
	for _, b := range list {
		if b.ShortTitle != "" {
			fmt.Fprintf(out, "%6d  %s (%s)\n", b.ID, b.Title, b.ShortTitle)
		} else {
			fmt.Fprintf(out, "%6d  %s\n", b.ID, b.Title)
		}
	}
	return nil
}

// ChaptersCmd lists the chapters of a book.
type ChaptersCmd struct {
	Book int64 `help:"Book id" required:""`
}

func (c *ChaptersCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	list, err := sess.store.ListChapters(ctx, store.BookID(c.Book))
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No chapters found for this book.")
		return nil
	}
	for _, ch := range list {
		fmt.Fprintf(out, "%6d  chapter %d\n", ch.ID, ch.Number)
	}
	return nil
}

// ReadCmd shows a chapter, selected by id, beside its counterpart.
type ReadCmd struct {
	ChapterID int64  `name:"chapter-id" help:"Chapter id (see the chapters command)" required:""`
	From      string `help:"Corpus the chapter belongs to (default: the primary corpus)"`
}

func (c *ReadCmd) Run(g *Globals, out io.Writer) error {
	sess, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := sess.context()
	defer cancel()

	res, err := sess.comparer.ChapterByID(ctx, store.ChapterID(c.ChapterID), sess.from(c.From))
	if err != nil {
		return err
	}
	if g.JSON {
		return writeJSON(out, res)
	}
	return renderView(out, res)
}

// DigestCmd prints a database file's BLAKE3 digest, the value expected by
// database.digest.
type DigestCmd struct {
	Path   string `arg:"" help:"Database file" type:"existingfile"`
	Verify string `help:"Expected digest; exit non-zero on mismatch"`
}

func (c *DigestCmd) Run(out io.Writer) error {
	if c.Verify != "" {
		if err := sqlite.VerifyDigest(c.Path, c.Verify); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: OK\n", c.Path)
		return nil
	}

	sum, err := sqlite.FileDigest(c.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  %s\n", sum, c.Path)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	fmt.Fprintf(out, "canonbridge version %s (sqlite %s)\n", version, sqlite.CurrentDriver())
	return nil
}
