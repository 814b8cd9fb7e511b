// Package rules implements the validation rule engine applied to each
// requested song.
package rules

import (
	"fmt"
	"strings"

	"github.com/rdg-stuttgart/songwish-processor/internal/blocklist"
	"github.com/rdg-stuttgart/songwish-processor/internal/models"
	"github.com/rdg-stuttgart/songwish-processor/internal/normalize"
)

// lyricIndicators mark a video as a lyric video. Their presence is accepted
// but not required.
var lyricIndicators = []string{
	"lyric", "lyrics", "lyric video", "lyrics video",
	"letra", "text", "sing-along", "singalong",
}

// negativeIndicators mark a video as an official MV, dance practice or
// performance cut. Any of these in the video title rejects the request.
var negativeIndicators = []string{
	"official mv", "official music video", "dance practice",
	"dance practice video", "choreography video", "performance video",
	"m/v", "(mv)", "[mv]",
}

var (
	reasonNoURL = models.Reason{
		German:  "Keine URL angegeben",
		English: "No URL provided",
	}
	reasonFetchFailed = models.Reason{
		German:  "Video konnte nicht abgerufen werden",
		English: "Could not fetch video",
	}
	reasonAgeRestricted = models.Reason{
		German:  "18+ Video nicht erlaubt",
		English: "18+ video not allowed",
	}
	reasonBlocked = models.Reason{
		German:  "Song ist auf der Blockliste",
		English: "Song is on the blocked list",
	}
)

// Engine runs the fixed check sequence against one song request. The
// section limit and the blocklist are injected at construction so tests can
// vary them per case.
type Engine struct {
	maxSectionSeconds int
	blocked           *blocklist.List
}

// NewEngine creates a rule engine with the given maximum section length and
// blocklist.
func NewEngine(maxSectionSeconds int, blocked *blocklist.List) *Engine {
	return &Engine{
		maxSectionSeconds: maxSectionSeconds,
		blocked:           blocked,
	}
}

// Validate runs all five checks against the song and accumulates their
// failure reasons in check order. Every check is evaluated even after an
// earlier failure, so a verdict may carry several reasons at once. A song
// without a URL is rejected with a single reason and no checks run.
func (e *Engine) Validate(song models.SongRequest, fetch models.FetchResult) models.Verdict {
	if song.CleanURL == "" {
		return models.Verdict{reasonNoURL}
	}

	var verdict models.Verdict
	verdict = append(verdict, e.checkArtistTitle(song, fetch)...)
	verdict = append(verdict, e.checkLyricVideo(fetch)...)
	verdict = append(verdict, e.checkDuration(song)...)
	verdict = append(verdict, e.checkAgeRestriction(fetch)...)
	verdict = append(verdict, e.checkBlocklist(song)...)
	return verdict
}

// checkArtistTitle verifies that the submitted artist and song title both
// occur in the video title under normalization. Fails closed when metadata
// could not be fetched. Artist and title failures are independent and may
// both fire.
func (e *Engine) checkArtistTitle(song models.SongRequest, fetch models.FetchResult) []models.Reason {
	if fetch.Failed() {
		return []models.Reason{reasonFetchFailed}
	}

	videoTitle := normalize.Text(fetch.Metadata.Title)

	var reasons []models.Reason
	if artist := normalize.Text(song.Artist); artist != "" && !strings.Contains(videoTitle, artist) {
		reasons = append(reasons, models.Reason{
			German:  fmt.Sprintf("Künstler '%s' nicht im YouTube-Titel gefunden", song.Artist),
			English: fmt.Sprintf("Artist '%s' not found in YouTube title", song.Artist),
		})
	}
	if title := normalize.Text(song.Title); title != "" && !strings.Contains(videoTitle, title) {
		reasons = append(reasons, models.Reason{
			German:  fmt.Sprintf("Songtitel '%s' nicht im YouTube-Titel gefunden", song.Title),
			English: fmt.Sprintf("Song title '%s' not found in YouTube title", song.Title),
		})
	}
	return reasons
}

// checkLyricVideo rejects videos whose title carries an official-MV or
// performance marker. Videos without any indicator are accepted. Fails
// closed when metadata could not be fetched.
func (e *Engine) checkLyricVideo(fetch models.FetchResult) []models.Reason {
	if fetch.Failed() {
		return []models.Reason{reasonFetchFailed}
	}

	title := strings.ToLower(fetch.Metadata.Title)
	for _, neg := range negativeIndicators {
		if strings.Contains(title, neg) {
			return []models.Reason{{
				German:  fmt.Sprintf("Kein Lyric Video ('%s' im Titel gefunden)", neg),
				English: fmt.Sprintf("Not a lyric video ('%s' found in title)", neg),
			}}
		}
	}
	return nil
}

// checkDuration verifies that the requested section is a positive range no
// longer than the configured maximum. The raw timestamp strings are echoed
// in the failure message for operator diagnosis.
func (e *Engine) checkDuration(song models.SongRequest) []models.Reason {
	start := normalize.ParseTimestamp(song.StartRaw)
	end := normalize.ParseTimestamp(song.EndRaw)
	duration := end - start

	if duration <= 0 {
		return []models.Reason{{
			German:  fmt.Sprintf("Ungültige Timestamps (Start: %s, Ende: %s)", song.StartRaw, song.EndRaw),
			English: fmt.Sprintf("Invalid timestamps (Start: %s, End: %s)", song.StartRaw, song.EndRaw),
		}}
	}
	if duration > e.maxSectionSeconds {
		return []models.Reason{{
			German:  fmt.Sprintf("Songabschnitt zu lang (%ds > %ds)", duration, e.maxSectionSeconds),
			English: fmt.Sprintf("Song section too long (%ds > %ds)", duration, e.maxSectionSeconds),
		}}
	}
	return nil
}

// checkAgeRestriction rejects videos rated 18+. Unlike the metadata-backed
// checks above it fails open: when metadata could not be fetched the rating
// cannot be verified and the request passes.
func (e *Engine) checkAgeRestriction(fetch models.FetchResult) []models.Reason {
	if fetch.Failed() {
		return nil
	}
	if fetch.Metadata.AgeLimit >= 18 {
		return []models.Reason{reasonAgeRestricted}
	}
	return nil
}

// checkBlocklist rejects songs whose normalized (artist, title) pair is on
// the blocklist.
func (e *Engine) checkBlocklist(song models.SongRequest) []models.Reason {
	if e.blocked != nil && e.blocked.Contains(song.Artist, song.Title) {
		return []models.Reason{reasonBlocked}
	}
	return nil
}

// HasLyricIndicator reports whether any positive lyric-video marker occurs
// in the video title, description or tags. Used only for diagnostics:
// absence of an indicator does not reject a request.
func HasLyricIndicator(md *models.VideoMetadata) bool {
	if md == nil {
		return false
	}
	title := strings.ToLower(md.Title)
	description := strings.ToLower(md.Description)
	for _, pos := range lyricIndicators {
		if strings.Contains(title, pos) || strings.Contains(description, pos) {
			return true
		}
		for _, tag := range md.Tags {
			if strings.Contains(strings.ToLower(tag), pos) {
				return true
			}
		}
	}
	return false
}
