package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rdg-stuttgart/songwish-processor/internal/blocklist"
	"github.com/rdg-stuttgart/songwish-processor/internal/models"
	"github.com/rdg-stuttgart/songwish-processor/internal/report"
	"github.com/rdg-stuttgart/songwish-processor/internal/rules"
	"github.com/rdg-stuttgart/songwish-processor/pkg/logger"
)

func init() {
	// Initialize logger to prevent nil pointer errors
	_ = logger.Init("error", "")
}

// fakeProvider serves canned metadata keyed by canonical URL and records
// the order of lookups.
type fakeProvider struct {
	byURL  map[string]models.FetchResult
	called []string
}

func (f *fakeProvider) Fetch(_ context.Context, cleanURL string) models.FetchResult {
	f.called = append(f.called, cleanURL)
	if res, ok := f.byURL[cleanURL]; ok {
		return res
	}
	return models.FetchFailed("unknown video")
}

func metadataFor(artist, title string) models.FetchResult {
	return models.FetchOK(&models.VideoMetadata{
		Title:    fmt.Sprintf("%s - %s (Lyrics)", artist, title),
		Duration: 240,
	})
}

func song(url, artist, title, start, end string) models.SongRequest {
	return models.SongRequest{
		RawURL:   url,
		CleanURL: url,
		Artist:   artist,
		Title:    title,
		StartRaw: start,
		EndRaw:   end,
	}
}

func newProcessor(provider *fakeProvider, blocked *blocklist.List) *Processor {
	if blocked == nil {
		blocked = blocklist.New()
	}
	return NewProcessor(
		provider,
		rules.NewEngine(90, blocked),
		report.NewAssembler(50, "https://forms.example/correct"),
	)
}

func TestProcessor_Process_ValidSubmission(t *testing.T) {
	url := "https://youtu.be/abcdefghijk"
	provider := &fakeProvider{byURL: map[string]models.FetchResult{
		url: metadataFor("Queen", "Bohemian Rhapsody"),
	}}
	p := newProcessor(provider, nil)

	subs := []models.Submission{{
		Email:   "anna@example.com",
		Primary: song(url, "Queen", "Bohemian Rhapsody", "0:30", "1:30"),
	}}

	results := p.Process(context.Background(), subs)

	require.Len(t, results, 1)
	assert.True(t, results[0].PrimaryVerdict.Accepted())
	assert.Equal(t, []string{url}, provider.called)
}

func TestProcessor_Process_TooLongSectionGetsExactlyOneReason(t *testing.T) {
	url := "https://youtu.be/abcdefghijk"
	provider := &fakeProvider{byURL: map[string]models.FetchResult{
		url: metadataFor("Queen", "Bohemian Rhapsody"),
	}}
	p := newProcessor(provider, nil)

	subs := []models.Submission{{
		Primary: song(url, "Queen", "Bohemian Rhapsody", "0:00", "2:00"),
	}}

	results := p.Process(context.Background(), subs)

	require.Len(t, results, 1)
	verdict := results[0].PrimaryVerdict
	require.Len(t, verdict, 1)
	assert.Contains(t, verdict[0].English, "Song section too long (120s > 90s)")
}

func TestProcessor_Process_SecondaryValidatedOnlyWhenPresent(t *testing.T) {
	url1 := "https://youtu.be/abcdefghijk"
	url2 := "https://youtu.be/lmnopqrstuv"
	provider := &fakeProvider{byURL: map[string]models.FetchResult{
		url1: metadataFor("Queen", "Bohemian Rhapsody"),
		url2: metadataFor("Daft Punk", "One More Time"),
	}}
	p := newProcessor(provider, nil)

	second := song(url2, "Daft Punk", "One More Time", "0:00", "1:00")
	subs := []models.Submission{
		{Primary: song(url1, "Queen", "Bohemian Rhapsody", "0:30", "1:30"), Secondary: &second},
		{Primary: song(url1, "Queen", "Bohemian Rhapsody", "0:30", "1:30")},
	}

	results := p.Process(context.Background(), subs)

	require.Len(t, results, 2)
	assert.True(t, results[0].SecondaryVerdict.Accepted())
	assert.Empty(t, results[1].SecondaryVerdict)
	// One fetch per present song, none for the absent secondary.
	assert.Equal(t, []string{url1, url2, url1}, provider.called)
}

func TestProcessor_Process_MissingURLSkipsFetch(t *testing.T) {
	provider := &fakeProvider{}
	p := newProcessor(provider, nil)

	subs := []models.Submission{{
		Primary: models.SongRequest{Artist: "Queen", Title: "Bohemian Rhapsody"},
	}}

	results := p.Process(context.Background(), subs)

	require.Len(t, results, 1)
	verdict := results[0].PrimaryVerdict
	require.Len(t, verdict, 1)
	assert.Equal(t, "Keine URL angegeben / No URL provided", verdict[0].Joined())
	assert.Empty(t, provider.called)
}

func TestProcessor_Process_FetchFailureDoesNotAbortBatch(t *testing.T) {
	good := "https://youtu.be/abcdefghijk"
	bad := "https://youtu.be/zzzzzzzzzzz"
	provider := &fakeProvider{byURL: map[string]models.FetchResult{
		good: metadataFor("Queen", "Bohemian Rhapsody"),
	}}
	p := newProcessor(provider, nil)

	subs := []models.Submission{
		{Primary: song(bad, "X", "Y", "0:00", "1:00")},
		{Primary: song(good, "Queen", "Bohemian Rhapsody", "0:30", "1:30")},
	}

	results := p.Process(context.Background(), subs)

	require.Len(t, results, 2)
	assert.False(t, results[0].PrimaryVerdict.Accepted())
	assert.True(t, results[1].PrimaryVerdict.Accepted())
}

func TestProcessor_Run_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "songwish.xlsx")
	outputPath := filepath.Join(dir, "output.xlsx")

	writeInputFile(t, inputPath)

	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	provider := &fakeProvider{byURL: map[string]models.FetchResult{
		url: metadataFor("Rick Astley", "Never Gonna Give You Up"),
	}}
	p := newProcessor(provider, nil)

	summary, err := p.Run(context.Background(), inputPath, outputPath, 50)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 0, summary.PrimaryFailures)
	assert.Equal(t, 1, summary.Guaranteed)

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Messages", "Songlist"}, f.GetSheetList())

	status, err := f.GetCellValue("Messages", "D2")
	require.NoError(t, err)
	assert.Equal(t, report.StatusOK, status)

	gotURL, err := f.GetCellValue("Songlist", "A2")
	require.NoError(t, err)
	assert.Equal(t, url, gotURL)
}

func TestProcessor_Run_MissingInputIsFatal(t *testing.T) {
	p := newProcessor(&fakeProvider{}, nil)

	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), filepath.Join(t.TempDir(), "out.xlsx"), 50)
	require.Error(t, err)
}

func writeInputFile(t *testing.T, path string) {
	t.Helper()

	header := []any{
		"Email Address", "Sprache der Regeln", "Bevorzugte Kommunikation",
		"Instagram @Name", "WhatsApp Number", "Weitere Kontaktmöglichkeit",
		"YT URL", "Künstler", "Songname", "Start Timestamp", "End Timestamp", "Anmerkung",
	}
	row := []any{
		"anna@example.com", "🇩🇪 Deutsch", "Instagram",
		"@anna", "", "",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1", "Rick Astley", "Never Gonna Give You Up", "0:30", "1:30", "",
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}
