// Package blocklist maintains the set of disallowed (artist, title) pairs.
// The list is loaded once per run from an xlsx source and is read-only
// afterwards.
package blocklist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/rdg-stuttgart/songwish-processor/internal/normalize"
)

type entry struct {
	artist string
	title  string
}

// List is an in-memory membership set over normalized (artist, title) pairs.
type List struct {
	entries map[entry]struct{}
}

// New returns an empty list.
func New() *List {
	return &List{entries: make(map[entry]struct{})}
}

// Add inserts a pair after normalization. Pairs where either field
// normalizes to the empty string are ignored.
func (l *List) Add(artist, title string) {
	a := normalize.Text(artist)
	t := normalize.Text(title)
	if a == "" || t == "" {
		return
	}
	l.entries[entry{artist: a, title: t}] = struct{}{}
}

// Contains checks membership. Both arguments are normalized first, so the
// lookup is case-, accent- and punctuation-insensitive.
func (l *List) Contains(artist, title string) bool {
	_, ok := l.entries[entry{artist: normalize.Text(artist), title: normalize.Text(title)}]
	return ok
}

// Len returns the number of blocked pairs.
func (l *List) Len() int {
	return len(l.entries)
}

// LoadFile reads the blocklist from a 2-column xlsx source with Artist and
// Title headers. Rows missing either field are skipped. A missing file is
// not an error and yields an empty list.
func LoadFile(path string) (*List, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to open blocklist file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist rows: %w", err)
	}

	list := New()
	artistCol, titleCol := 0, 1
	for i, row := range rows {
		if i == 0 {
			// Header row names the columns; fall back to positional
			// Artist, Title when the headers are absent.
			for j, h := range row {
				switch h {
				case "Artist":
					artistCol = j
				case "Title":
					titleCol = j
				}
			}
			continue
		}
		list.Add(cellAt(row, artistCol), cellAt(row, titleCol))
	}
	return list, nil
}

// EnsureTemplate writes an empty 2-column blocklist template to path if no
// file exists there yet. Returns true when a template was created.
func EnsureTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to probe blocklist file: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]any{"Artist", "Title"}); err != nil {
		return false, fmt.Errorf("failed to write blocklist template header: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return false, fmt.Errorf("failed to save blocklist template: %w", err)
	}
	return true, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
