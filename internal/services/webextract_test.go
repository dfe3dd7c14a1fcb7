package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single spaces kept", "one two three", "one two three"},
		{"runs collapsed", "one   two\t\tthree", "one two three"},
		{"newlines collapsed", "one\n\ntwo\nthree", "one two three"},
		{"leading and trailing trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CollapseWhitespace(tc.input); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractURL_PrefersArticleContent(t *testing.T) {
	article := strings.Repeat("Meaningful article text about the topic. ", 10)
	page := `<html><head><script>var x = 1;</script></head><body>
		<nav>Home About Contact</nav>
		<article>` + article + `</article>
		<footer>Copyright</footer>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWebExtractService()
	content, err := s.ExtractURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content, "Meaningful article text") {
		t.Errorf("expected article text, got %q", content)
	}
	if strings.Contains(content, "Home About Contact") {
		t.Error("expected nav content stripped")
	}
	if strings.Contains(content, "var x = 1") {
		t.Error("expected script content stripped")
	}
}

func TestExtractURL_FallsBackToBody(t *testing.T) {
	// No selector accumulates 200 chars, so the whole body is used.
	page := `<html><body><div>Short body text only.</div></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWebExtractService()
	content, err := s.ExtractURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Short body text only." {
		t.Errorf("expected body fallback, got %q", content)
	}
}

func TestExtractURL_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("word ", 5000)
	page := `<html><body><article>` + long + `</article></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWebExtractService()
	content, err := s.ExtractURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content) != maxWebContentChars+3 {
		t.Errorf("expected truncation to %d chars plus ellipsis, got %d", maxWebContentChars, len(content))
	}
	if !strings.HasSuffix(content, "...") {
		t.Error("expected truncated content to end with ellipsis")
	}
}

func TestExtractURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewWebExtractService()
	if _, err := s.ExtractURL(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestExtractURL_SetsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	s := NewWebExtractService()
	if _, err := s.ExtractURL(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("expected browser user agent, got %q", gotUA)
	}
}
