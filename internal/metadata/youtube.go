package metadata

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/rdg-stuttgart/songwish-processor/internal/models"
)

var videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// YouTubeClient wraps the YouTube Data API v3 client.
type YouTubeClient struct {
	service *youtube.Service
}

// NewYouTubeClient creates a new YouTube API client.
func NewYouTubeClient(ctx context.Context, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeClient{service: service}, nil
}

// Fetch retrieves title, description, duration, tags, age rating and channel
// identity for the video behind cleanURL. Every failure is returned as the
// error variant of the FetchResult.
func (c *YouTubeClient) Fetch(ctx context.Context, cleanURL string) models.FetchResult {
	id, err := VideoID(cleanURL)
	if err != nil {
		return models.FetchFailed(err.Error())
	}

	call := c.service.Videos.List([]string{"snippet", "contentDetails"}).Id(id).Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return models.FetchFailed(fmt.Sprintf("videos.list failed: %v", err))
	}
	if len(resp.Items) == 0 {
		return models.FetchFailed(fmt.Sprintf("video %s not found", id))
	}

	return models.FetchOK(mapVideo(resp.Items[0]))
}

// mapVideo converts a YouTube API video response to our metadata model.
func mapVideo(v *youtube.Video) *models.VideoMetadata {
	md := &models.VideoMetadata{}

	if v.Snippet != nil {
		md.Title = v.Snippet.Title
		md.Description = v.Snippet.Description
		md.Channel = v.Snippet.ChannelTitle
		md.Uploader = v.Snippet.ChannelTitle
		if v.Snippet.Tags != nil {
			md.Tags = v.Snippet.Tags
		} else {
			md.Tags = []string{}
		}
		if v.Snippet.CategoryId != "" {
			md.Categories = []string{v.Snippet.CategoryId}
		}
	}

	if v.ContentDetails != nil {
		if secs, err := ParseDuration(v.ContentDetails.Duration); err == nil {
			md.Duration = secs
		}
		// The API reports age restriction as a single rating token rather
		// than a numeric limit.
		if v.ContentDetails.ContentRating != nil && v.ContentDetails.ContentRating.YtRating == "ytAgeRestricted" {
			md.AgeLimit = 18
		}
	}

	return md
}

// VideoID extracts the 11-character video ID from a canonical YouTube URL.
// Supported shapes: watch?v=ID, youtu.be/ID, shorts/ID and embed/ID.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("unparseable video URL %q", rawURL)
	}

	var id string
	switch {
	case strings.HasSuffix(u.Host, "youtu.be"):
		id = strings.Trim(u.Path, "/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		id = strings.TrimPrefix(u.Path, "/shorts/")
	case strings.HasPrefix(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
	default:
		id = u.Query().Get("v")
	}
	id = strings.Trim(id, "/")

	if !videoIDRegex.MatchString(id) {
		return "", fmt.Errorf("no video ID in URL %q", rawURL)
	}
	return id, nil
}

// ParseDuration converts an ISO 8601 duration to seconds.
// Example: "PT4M13S" -> 253 seconds.
func ParseDuration(duration string) (int, error) {
	if !strings.HasPrefix(duration, "PT") {
		return 0, fmt.Errorf("invalid duration format: %s", duration)
	}
	duration = strings.TrimPrefix(duration, "PT")

	var hours, minutes, seconds int

	if hIdx := strings.Index(duration, "H"); hIdx != -1 {
		h, err := strconv.Atoi(duration[:hIdx])
		if err != nil {
			return 0, err
		}
		hours = h
		duration = duration[hIdx+1:]
	}

	if mIdx := strings.Index(duration, "M"); mIdx != -1 {
		m, err := strconv.Atoi(duration[:mIdx])
		if err != nil {
			return 0, err
		}
		minutes = m
		duration = duration[mIdx+1:]
	}

	if sIdx := strings.Index(duration, "S"); sIdx != -1 {
		s, err := strconv.Atoi(duration[:sIdx])
		if err != nil {
			return 0, err
		}
		seconds = s
	}

	return hours*3600 + minutes*60 + seconds, nil
}
