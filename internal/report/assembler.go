// Package report assembles the per-submission verdicts into the two output
// table structures. Styling directives (fills, widths) are carried as data;
// rendering them into a workbook is the xlsxio adapter's job.
package report

import (
	"github.com/rdg-stuttgart/songwish-processor/internal/models"
	"github.com/rdg-stuttgart/songwish-processor/internal/normalize"
)

// Fill identifies a background color for a row or header, as an RGB hex
// string understood by the spreadsheet writer.
type Fill string

// Fill values used across both sheets.
const (
	FillNone    Fill = ""
	FillHeader  Fill = "CCCCCC"
	FillSuccess Fill = "CCFFCC"
	FillError   Fill = "FFCCCC"
)

// Row is one data row plus its presentational fill tag.
type Row struct {
	Cells []any
	Fill  Fill
}

// Table is a fully assembled sheet: header, column widths keyed by column
// letter, and rows in output order.
type Table struct {
	Name    string
	Headers []string
	Widths  map[string]float64
	Rows    []Row
}

// StatusOK and StatusError are the binary status labels on the message sheet.
const (
	StatusOK    = "OK"
	StatusError = "Fehler / Error"
)

// Assembler builds the reviewer-facing message table and the playback-facing
// songlist table. The guarantee count and correction-form URL are injected
// at construction.
type Assembler struct {
	guaranteedCount int
	formURL         string
}

// NewAssembler creates an assembler with the given message-sheet guarantee
// count and correction-form URL.
func NewAssembler(guaranteedCount int, formURL string) *Assembler {
	return &Assembler{
		guaranteedCount: guaranteedCount,
		formURL:         formURL,
	}
}

// MessageTable builds the reviewer sheet: one row per submission for the
// first guaranteedCount submissions, covering the primary song only. Rows
// are tagged with a success or error fill for scanning.
func (a *Assembler) MessageTable(results []models.ProcessedSubmission) Table {
	t := Table{
		Name:    "Messages",
		Headers: []string{"#", "Contact URL", "Message", "Status", "Artist", "Title", "Errors"},
		Widths: map[string]float64{
			"A": 5, "B": 40, "C": 80, "D": 15, "E": 20, "F": 30, "G": 50,
		},
	}

	limit := len(results)
	if limit > a.guaranteedCount {
		limit = a.guaranteedCount
	}

	for i, res := range results[:limit] {
		verdict := res.PrimaryVerdict
		status := StatusOK
		fill := FillSuccess
		if !verdict.Accepted() {
			status = StatusError
			fill = FillError
		}

		t.Rows = append(t.Rows, Row{
			Cells: []any{
				i + 1,
				ContactURL(res.Submission),
				Message(res.Submission, verdict, a.formURL),
				status,
				res.Primary.Artist,
				res.Primary.Title,
				verdict.Joined(),
			},
			Fill: fill,
		})
	}
	return t
}

// SonglistTable builds the playback sheet: every primary song with a
// non-empty canonical URL across all submissions in input order, followed by
// every present secondary song. Rejected songs are included and flagged, not
// dropped, so operators can locate them downstream. The sequence counter is
// 1-based and runs across both groups.
func (a *Assembler) SonglistTable(results []models.ProcessedSubmission) Table {
	t := Table{
		Name: "Songlist",
		Headers: []string{
			"YouTube-URL", "Artist", "Title", "Description", "Requester/Dancer",
			"Start: Minute", "Start: Second", "End: Minute", "End: Seconds",
			"Start in Seconds", "End in Seconds",
			"#", "Anmerkung", "Errors",
		},
		Widths: map[string]float64{
			"A": 50, "B": 20, "C": 30, "D": 15, "E": 30, "L": 5, "M": 40, "N": 50,
		},
	}

	counter := 1
	for _, res := range results {
		if res.Primary.CleanURL == "" {
			continue
		}
		t.Rows = append(t.Rows, songRow(res.Primary, res.Email, res.PrimaryVerdict, counter))
		counter++
	}
	for _, res := range results {
		if res.Secondary == nil || res.Secondary.CleanURL == "" {
			continue
		}
		t.Rows = append(t.Rows, songRow(*res.Secondary, res.Email, res.SecondaryVerdict, counter))
		counter++
	}
	return t
}

func songRow(song models.SongRequest, requester string, verdict models.Verdict, counter int) Row {
	start := normalize.ParseTimestamp(song.StartRaw)
	end := normalize.ParseTimestamp(song.EndRaw)

	fill := FillNone
	if !verdict.Accepted() {
		fill = FillError
	}

	return Row{
		Cells: []any{
			song.CleanURL,
			song.Artist,
			song.Title,
			"",
			requester,
			start / 60,
			start % 60,
			end / 60,
			end % 60,
			start,
			end,
			counter,
			song.Note,
			verdict.Joined(),
		},
		Fill: fill,
	}
}
