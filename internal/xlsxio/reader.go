// Package xlsxio contains the spreadsheet adapters: the form-export reader
// and the styled workbook writer. No decision logic lives here.
package xlsxio

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rdg-stuttgart/songwish-processor/internal/models"
	"github.com/rdg-stuttgart/songwish-processor/internal/normalize"
)

// Form export column names. The form duplicates the song columns for the
// second slot; duplicates are disambiguated with a ".1" suffix when the
// header row is indexed.
const (
	colURL     = "YT URL"
	colArtist  = "Künstler"
	colTitle   = "Songname"
	colStart   = "Start Timestamp"
	colEnd     = "End Timestamp"
	colNote    = "Anmerkung"
	colEmail   = "Email Address"
	colLang    = "Sprache der Regeln"
	colContact = "Bevorzugte Kommunikation"
	colInsta   = "Instagram @Name"
	colWA      = "WhatsApp Number"
	colOther   = "Weitere Kontaktmöglichkeit"

	secondSlotSuffix = ".1"

	// translationMarker identifies the optional first data row that holds
	// column translations instead of a submission.
	translationMarker = "Language"
)

// ReadSubmissions reads the form export and returns one Submission per data
// row. The optional translation header row is detected and skipped. Song
// URLs are canonicalized on the way in; the secondary song is nil when its
// URL column is empty.
func ReadSubmissions(path string) ([]models.Submission, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read input rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input file %s has no header row", path)
	}

	cols := indexHeader(rows[0])
	data := rows[1:]

	// A first data row carrying column translations is marked by the
	// Language token in the language column.
	if len(data) > 0 && strings.Contains(cellBy(data[0], cols, colLang), translationMarker) {
		data = data[1:]
	}

	subs := make([]models.Submission, 0, len(data))
	for i, row := range data {
		sub := models.Submission{
			ID:           uuid.New(),
			RowIndex:     i,
			Email:        cellBy(row, cols, colEmail),
			Language:     cellBy(row, cols, colLang),
			ContactPref:  models.ContactPreference(cellBy(row, cols, colContact)),
			Instagram:    cellBy(row, cols, colInsta),
			WhatsApp:     cellBy(row, cols, colWA),
			OtherContact: cellBy(row, cols, colOther),
			Primary:      songAt(row, cols, ""),
		}

		if second := songAt(row, cols, secondSlotSuffix); second.Present() {
			sub.Secondary = &second
		}

		subs = append(subs, sub)
	}
	return subs, nil
}

// indexHeader maps column names to indices, suffixing repeated names with
// ".1" so both song slots stay addressable.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, seen := cols[name]; seen {
			name += secondSlotSuffix
		}
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func songAt(row []string, cols map[string]int, suffix string) models.SongRequest {
	raw := cellBy(row, cols, colURL+suffix)
	return models.SongRequest{
		RawURL:   raw,
		CleanURL: normalize.CleanURL(raw),
		Artist:   cellBy(row, cols, colArtist+suffix),
		Title:    cellBy(row, cols, colTitle+suffix),
		StartRaw: cellBy(row, cols, colStart+suffix),
		EndRaw:   cellBy(row, cols, colEnd+suffix),
		Note:     cellBy(row, cols, colNote+suffix),
	}
}

func cellBy(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
