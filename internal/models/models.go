// Package models contains the data models for the songwish processing pipeline.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// ContactPreference is the submitter's preferred contact channel as entered
// in the form.
type ContactPreference string

// ContactPreference values match the form's answer options verbatim.
const (
	ContactInstagram ContactPreference = "Instagram"
	ContactWhatsApp  ContactPreference = "WhatsApp"
)

// SongRequest is one requested song section within a submission.
type SongRequest struct {
	RawURL   string
	CleanURL string
	Artist   string
	Title    string
	StartRaw string
	EndRaw   string
	Note     string
}

// Present reports whether the request slot was filled in at all.
func (s SongRequest) Present() bool {
	return strings.TrimSpace(s.RawURL) != ""
}

// Submission represents one form response: submitter identity plus one or
// two requested song sections. Secondary is nil when the second slot's URL
// column was empty.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Submission struct {
	ID           uuid.UUID
	RowIndex     int
	Email        string
	Language     string
	ContactPref  ContactPreference
	Instagram    string
	WhatsApp     string
	OtherContact string
	Primary      SongRequest
	Secondary    *SongRequest
}

// VideoMetadata holds the descriptive attributes the metadata provider
// returns for a video.
type VideoMetadata struct {
	Title       string
	Description string
	Duration    int
	AgeLimit    int
	Categories  []string
	Tags        []string
	Channel     string
	Uploader    string
}

// FetchResult is the two-variant outcome of a metadata lookup: either
// Metadata is set, or ErrorMessage carries the provider failure. Rule
// checks branch on Failed() rather than on a nil metadata pointer.
type FetchResult struct {
	Metadata     *VideoMetadata
	ErrorMessage string
}

// FetchOK wraps successfully fetched metadata.
func FetchOK(md *VideoMetadata) FetchResult {
	return FetchResult{Metadata: md}
}

// FetchFailed records a provider failure.
func FetchFailed(msg string) FetchResult {
	return FetchResult{ErrorMessage: msg}
}

// Failed reports whether the lookup produced no usable metadata.
func (r FetchResult) Failed() bool {
	return r.Metadata == nil
}

// Reason is one human-readable failure produced by a rule check, carried in
// both languages so the renderer can pick the right variant without string
// parsing.
type Reason struct {
	German  string
	English string
}

// Joined renders the reason in the combined "de / en" form used in the
// spreadsheet error columns.
func (r Reason) Joined() string {
	return r.German + " / " + r.English
}

// Verdict is the ordered list of failure reasons for one song request.
// An empty verdict means the request was accepted.
type Verdict []Reason

// Accepted reports whether the verdict carries no failure reasons.
func (v Verdict) Accepted() bool {
	return len(v) == 0
}

// Joined renders all reasons semicolon-separated for the error columns.
func (v Verdict) Joined() string {
	if len(v) == 0 {
		return ""
	}
	parts := make([]string, len(v))
	for i, r := range v {
		parts[i] = r.Joined()
	}
	return strings.Join(parts, "; ")
}

// ProcessedSubmission is a submission together with the verdicts for its
// song requests. SecondaryVerdict is empty when Secondary is absent.
type ProcessedSubmission struct {
	Submission
	PrimaryVerdict   Verdict
	SecondaryVerdict Verdict
}
