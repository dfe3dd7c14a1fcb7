package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	webExtractTimeout  = 10 * time.Second
	maxWebContentChars = 10000
	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Selectors tried in priority order when isolating the main article text.
var contentSelectors = []string{
	"main article", "article", "main",
	".content", "#content", ".post-content",
	".entry-content", ".article-content", "p",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// WebExtractService pulls readable article text out of a web page.
type WebExtractService struct {
	httpClient *http.Client
}

func NewWebExtractService() *WebExtractService {
	return &WebExtractService{
		httpClient: &http.Client{Timeout: webExtractTimeout},
	}
}

// ExtractURL fetches the page and returns its main text content, collapsed
// to single-space whitespace and truncated to a processing-friendly length.
func (s *WebExtractService) ExtractURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, nav, header, footer, aside, .advertisement, .ads").Remove()

	var content string
	for _, selector := range contentSelectors {
		text := strings.TrimSpace(doc.Find(selector).Text())
		if len(text) > 200 {
			content = text
			break
		}
	}
	if content == "" {
		content = strings.TrimSpace(doc.Find("body").Text())
	}

	content = CollapseWhitespace(content)
	if len(content) > maxWebContentChars {
		content = content[:maxWebContentChars] + "..."
	}

	return content, nil
}

// CollapseWhitespace squashes all runs of whitespace to single spaces.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
