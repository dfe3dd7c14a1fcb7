package models

type ProcessContentRequest struct {
	URL          string `json:"url"`
	Type         string `json:"type"` // "youtube" | "link"
	Mode         string `json:"mode"` // "simple" | "custom"
	CustomPrompt string `json:"customPrompt"`
}

type RegenerateNotesRequest struct {
	Instructions string `json:"instructions"`
}

type ContentResponse struct {
	Notes         []string `json:"notes"`
	Summary       string   `json:"summary"`
	FileName      string   `json:"fileName,omitempty"`
	ContentLength int      `json:"contentLength"`
}
