package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxFileContentChars = 10000

// FileExtractService pulls plain text out of uploaded study documents.
// Supported formats: PDF, DOCX, and plain text.
type FileExtractService struct{}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{}
}

// SupportedFileType reports whether the file name carries an extractable
// extension.
func (s *FileExtractService) SupportedFileType(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractText extracts text from an uploaded file held in memory, collapses
// its whitespace, and truncates it to a processing-friendly length.
func (s *FileExtractService) ExtractText(name string, data []byte) (string, error) {
	var content string
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		content, err = extractPDF(data)
	case ".docx":
		content, err = extractDOCX(data)
	case ".txt":
		content = string(data)
	default:
		return "", fmt.Errorf("unsupported file type for text extraction: %s", filepath.Ext(name))
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract content from file: %w", err)
	}

	content = CollapseWhitespace(content)
	if content == "" {
		return "", fmt.Errorf("file appears to be empty or contains insufficient text")
	}
	if len(content) > maxFileContentChars {
		content = content[:maxFileContentChars] + "..."
	}

	return content, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var documentXML []byte
	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		documentXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(documentXML) == 0 {
		return "", fmt.Errorf("docx document.xml not found")
	}

	text := stripDOCXML(documentXML)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable text found in docx")
	}
	return text, nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func stripDOCXML(src []byte) string {
	s := string(src)

	// Paragraphs and explicit breaks become newlines before tags go away.
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:br/>", "\n")
	s = strings.ReplaceAll(s, "<w:br />", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")

	s = xmlTagPattern.ReplaceAllString(s, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
	return replacer.Replace(s)
}
