package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"quizlyst-backend/internal/middleware"
	"quizlyst-backend/internal/models"
	"quizlyst-backend/internal/services"
	"quizlyst-backend/internal/session"
)

// Extractions shorter than this cannot produce useful notes.
const minExtractedChars = 50

// ContentHandler covers ingestion: URLs, YouTube links, uploaded documents,
// and regeneration of notes for the session's current content.
type ContentHandler struct {
	store          *session.Store
	notes          *services.NotesService
	web            *services.WebExtractService
	youtube        *services.YouTubeService
	files          *services.FileExtractService
	maxUploadBytes int64
}

func NewContentHandler(store *session.Store, notes *services.NotesService, web *services.WebExtractService, yt *services.YouTubeService, files *services.FileExtractService, maxUploadBytes int64) *ContentHandler {
	return &ContentHandler{
		store:          store,
		notes:          notes,
		web:            web,
		youtube:        yt,
		files:          files,
		maxUploadBytes: maxUploadBytes,
	}
}

// Process ingests a URL (web page or YouTube video), generates notes and a
// summary, and installs them as the session's active content.
func (h *ContentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "URL is required", r))
		return
	}

	sourceType := req.Type
	if sourceType == "" {
		if services.IsYouTubeURL(req.URL) {
			sourceType = "youtube"
		} else {
			sourceType = "link"
		}
	}

	var extracted string
	var err error
	switch sourceType {
	case "youtube":
		log.Printf("Processing YouTube URL: %s", req.URL)
		extracted, err = h.youtube.ExtractContent(req.URL)
	case "link":
		log.Printf("Processing web URL: %s", req.URL)
		extracted, err = h.web.ExtractURL(r.Context(), req.URL)
	default:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", fmt.Sprintf("Unsupported content type: %s", sourceType), r))
		return
	}
	if err != nil {
		log.Printf("✗ Content extraction failed: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", err.Error(), r))
		return
	}
	if len(extracted) < minExtractedChars {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", "Could not extract sufficient content from the provided URL", r))
		return
	}

	notes, summary, err := h.notes.GenerateNotes(r.Context(), extracted, req.Mode, req.CustomPrompt)
	if err != nil {
		writeAIError(w, r, err)
		return
	}

	sess := h.store.GetOrCreate(middleware.GetSessionID(r.Context()))
	sess.Replace(session.Content{
		SourceType: sourceType,
		SourceRef:  req.URL,
		Notes:      notes,
		Summary:    summary,
	})

	log.Printf("✓ Content processed: %d note lines, %d chars extracted", len(notes), len(extracted))
	writeJSON(w, http.StatusOK, models.ContentResponse{
		Notes:         notes,
		Summary:       summary,
		ContentLength: len(extracted),
	})
}

// Upload ingests a document from a multipart form. Supported types are
// .pdf, .docx and .txt; anything else is rejected before extraction.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "File too large or invalid multipart form", r))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	if !h.files.SupportedFileType(header.Filename) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unsupported file type. Please upload a PDF, DOCX, or TXT file.", r))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read uploaded file", r))
		return
	}

	log.Printf("Processing uploaded file: %s (%d bytes)", header.Filename, len(data))
	extracted, err := h.files.ExtractText(header.Filename, data)
	if err != nil {
		log.Printf("✗ File extraction failed: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("EXTRACTION_FAILED", err.Error(), r))
		return
	}

	mode := r.FormValue("mode")
	customPrompt := r.FormValue("customPrompt")

	notes, summary, err := h.notes.GenerateNotes(r.Context(), extracted, mode, customPrompt)
	if err != nil {
		writeAIError(w, r, err)
		return
	}

	sess := h.store.GetOrCreate(middleware.GetSessionID(r.Context()))
	sess.Replace(session.Content{
		SourceType: "file",
		SourceRef:  header.Filename,
		Notes:      notes,
		Summary:    summary,
	})

	log.Printf("✓ File processed: %s, %d note lines", header.Filename, len(notes))
	writeJSON(w, http.StatusOK, models.ContentResponse{
		Notes:         notes,
		Summary:       summary,
		FileName:      header.Filename,
		ContentLength: len(extracted),
	})
}

// RegenerateNotes rebuilds the session's notes with new instructions. The
// summary from the original pass is kept as-is.
func (h *ContentHandler) RegenerateNotes(w http.ResponseWriter, r *http.Request) {
	var req models.RegenerateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Instructions) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Instructions are required", r))
		return
	}

	sess, ok := h.store.Get(middleware.GetSessionID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to regenerate notes for", r))
		return
	}
	content, err := sess.Content()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to regenerate notes for", r))
		return
	}

	notes, err := h.notes.RegenerateNotes(r.Context(), content.SourceRef, req.Instructions)
	if err != nil {
		writeAIError(w, r, err)
		return
	}
	if err := sess.SetNotes(notes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to regenerate notes for", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ContentResponse{
		Notes:         notes,
		Summary:       content.Summary,
		ContentLength: len(content.SourceRef),
	})
}
