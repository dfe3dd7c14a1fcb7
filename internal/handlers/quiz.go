package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizlyst-backend/internal/middleware"
	"quizlyst-backend/internal/models"
	"quizlyst-backend/internal/quiz"
	"quizlyst-backend/internal/session"
)

const (
	defaultDifficulty    = "medium"
	defaultQuestionCount = 5
	largeCountThreshold  = 100
)

// QuizHandler generates quizzes from the session's notes and grades
// submitted answers against the most recent batch.
type QuizHandler struct {
	store     *session.Store
	generator *quiz.Generator
}

func NewQuizHandler(store *session.Store, generator *quiz.Generator) *QuizHandler {
	return &QuizHandler{store: store, generator: generator}
}

// Generate builds a new quiz from the session's current notes and appends it
// to the session's quiz history.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Difficulty must be easy, medium, or hard", r))
		return
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = defaultQuestionCount
	}
	if req.QuestionCount < 1 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question count must be at least 1", r))
		return
	}
	if req.QuestionCount > largeCountThreshold {
		log.Printf("⚠ Large quiz requested: %d questions", req.QuestionCount)
	}

	h.generate(w, r, req.Difficulty, req.QuestionCount)
}

// ChangeDifficulty regenerates the quiz at a new difficulty with the default
// question count.
func (h *QuizHandler) ChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeDifficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Difficulty must be easy, medium, or hard", r))
		return
	}

	h.generate(w, r, req.Difficulty, defaultQuestionCount)
}

func (h *QuizHandler) generate(w http.ResponseWriter, r *http.Request, difficulty string, questionCount int) {
	sess, ok := h.store.Get(middleware.GetSessionID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to generate quiz", r))
		return
	}
	content, err := sess.Content()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to generate quiz", r))
		return
	}

	log.Printf("Generating %s quiz with %d questions...", difficulty, questionCount)
	batch, err := h.generator.Generate(r.Context(), content.Notes, difficulty, questionCount)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			writeJSON(w, http.StatusBadGateway, errorResp("GENERATION_EXHAUSTED", "Could not generate any quiz questions. Please try again.", r))
			return
		}
		writeAIError(w, r, err)
		return
	}

	if err := sess.AppendQuiz(batch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_CONTENT", "No content found to generate quiz", r))
		return
	}

	log.Printf("✓ Quiz generated: %d/%d questions (%s)", batch.AchievedCount, batch.RequestedCount, batch.Difficulty)
	writeJSON(w, http.StatusOK, batch)
}

// Submit grades answers against the session's most recent quiz.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Answers == nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Answers are required", r))
		return
	}

	sess, ok := h.store.Get(middleware.GetSessionID(r.Context()))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("NO_QUIZ", "No quiz found", r))
		return
	}

	results, score, err := sess.GradeCurrent(req.Answers)
	if err != nil {
		if errors.Is(err, session.ErrNoQuiz) {
			writeJSON(w, http.StatusBadRequest, errorResp("NO_QUIZ", "No quiz found", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return
	}

	log.Printf("✓ Quiz graded: score %d", score)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":   score,
		"results": results,
	})
}
