package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
)

const (
	maxYouTubeContentChars = 5000
	minYouTubeContentChars = 50
)

// YouTubeService extracts study content from a video: the caption transcript
// when one exists, otherwise the video's own title and description.
type YouTubeService struct {
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

func NewYouTubeService() *YouTubeService {
	return &YouTubeService{
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
	}
}

// ExtractContent resolves the URL to a video and returns transcript text,
// falling back to video metadata when captions are unavailable.
func (s *YouTubeService) ExtractContent(rawURL string) (string, error) {
	normalized := NormalizeYouTubeURL(rawURL)

	videoID := ExtractVideoID(normalized)
	if videoID == "" {
		return "", fmt.Errorf("invalid YouTube URL: could not extract video ID")
	}

	content, err := s.getTranscript(videoID)
	if err != nil {
		log.Printf("YouTube transcript extraction failed for %s: %v", videoID, err)

		fallback, fbErr := s.getMetadataContent(videoID)
		if fbErr != nil {
			return "", fmt.Errorf("this YouTube video does not have captions/subtitles available and no usable metadata was found: %v", err)
		}
		log.Printf("Using metadata fallback content for %s (%d chars)", videoID, len(fallback))
		return fallback, nil
	}

	return content, nil
}

func (s *YouTubeService) getTranscript(videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		// Any available language is better than nothing.
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
		if err != nil {
			return "", fmt.Errorf("no transcript available: %w", err)
		}
	}

	if len(transcript.Entries) == 0 {
		return "", fmt.Errorf("no transcript available for this video")
	}

	var b strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString(" ")
	}
	content := strings.TrimSpace(b.String())

	if looksLikeGenericYouTubeContent(content) || len(content) < 100 {
		return "", fmt.Errorf("generic YouTube content detected")
	}

	if len(content) > maxYouTubeContentChars {
		content = content[:maxYouTubeContentChars] + "..."
		log.Printf("YouTube content truncated to %d characters", maxYouTubeContentChars)
	}

	if len(content) < minYouTubeContentChars {
		return "", fmt.Errorf("extracted transcript is too short")
	}

	return content, nil
}

// getMetadataContent builds fallback study material from the video's title
// and description.
func (s *YouTubeService) getMetadataContent(videoID string) (string, error) {
	video, err := s.ytClient.GetVideo(videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	var b strings.Builder
	if title := strings.TrimSpace(video.Title); title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", title)
	}
	if desc := strings.TrimSpace(video.Description); desc != "" {
		fmt.Fprintf(&b, "Description: %s", desc)
	}

	content := b.String()
	if len(content) < minYouTubeContentChars || looksLikeGenericYouTubeContent(content) {
		return "", fmt.Errorf("could not extract meaningful content from video metadata")
	}

	return content, nil
}

func looksLikeGenericYouTubeContent(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "youtube is a global platform") ||
		strings.Contains(lower, "youtube company") ||
		strings.Contains(lower, "about youtube") ||
		strings.Contains(lower, "enjoy the videos and music you love")
}

// IsYouTubeURL reports whether the URL points at a YouTube video.
func IsYouTubeURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}

// NormalizeYouTubeURL rewrites the share and embed URL variants into the
// canonical watch form.
func NormalizeYouTubeURL(rawURL string) string {
	if strings.Contains(rawURL, "youtu.be/") {
		id := strings.SplitN(rawURL, "youtu.be/", 2)[1]
		id = strings.SplitN(id, "?", 2)[0]
		id = strings.SplitN(id, "&", 2)[0]
		return "https://www.youtube.com/watch?v=" + id
	}

	if strings.Contains(rawURL, "youtube.com/embed/") {
		id := strings.SplitN(rawURL, "/embed/", 2)[1]
		id = strings.SplitN(id, "?", 2)[0]
		return "https://www.youtube.com/watch?v=" + id
	}

	if strings.Contains(rawURL, "youtube.com/watch") {
		if u, err := url.Parse(rawURL); err == nil {
			if id := u.Query().Get("v"); id != "" {
				return "https://www.youtube.com/watch?v=" + id
			}
		}
	}

	return rawURL
}

// ExtractVideoID pulls the video identifier out of a YouTube URL.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if strings.Contains(u.Hostname(), "youtube.com") {
		return u.Query().Get("v")
	}
	if strings.Contains(u.Hostname(), "youtu.be") {
		return strings.TrimPrefix(u.Path, "/")
	}
	return ""
}
