package services

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://example.com/article", false},
		{"https://vimeo.com/12345", false},
	}

	for _, tc := range tests {
		if got := IsYouTubeURL(tc.url); got != tc.expected {
			t.Errorf("IsYouTubeURL(%q) = %v, expected %v", tc.url, got, tc.expected)
		}
	}
}

func TestNormalizeYouTubeURL(t *testing.T) {
	canonical := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", canonical},
		{"short link with params", "https://youtu.be/dQw4w9WgXcQ?t=42", canonical},
		{"embed link", "https://www.youtube.com/embed/dQw4w9WgXcQ", canonical},
		{"embed link with params", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", canonical},
		{"watch link with extras", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=2", canonical},
		{"already canonical", canonical, canonical},
		{"non-youtube passthrough", "https://example.com/video", "https://example.com/video"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeYouTubeURL(tc.url); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no video param", "https://www.youtube.com/feed/subscriptions", ""},
		{"unrelated host", "https://example.com/watch?v=abc", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractVideoID(tc.url); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestLooksLikeGenericYouTubeContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{"about page boilerplate", "About YouTube and our mission", true},
		{"platform blurb", "Enjoy the videos and music you love, upload original content", true},
		{"real transcript", "In this lecture we cover the basics of thermodynamics.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := looksLikeGenericYouTubeContent(tc.content); got != tc.expected {
				t.Errorf("expected %v for %q", tc.expected, tc.content)
			}
		})
	}
}
