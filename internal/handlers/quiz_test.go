package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"quizlyst-backend/internal/middleware"
	"quizlyst-backend/internal/models"
	"quizlyst-backend/internal/quiz"
	"quizlyst-backend/internal/session"
)

// scriptedCompleter plays back responses for the generator under test.
type scriptedCompleter struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt, instructions string) (string, error) {
	idx := s.calls
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("unscripted call")
}

func quizResponseText(count int) string {
	var b strings.Builder
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, "Question %d: Sample question %d?\nA) Alpha\nB) Beta\nC) Gamma\nD) Delta\nCorrect Answer: A\n\n", i, i)
	}
	return b.String()
}

func newQuizHandler(completer quiz.TextCompleter) (*QuizHandler, *session.Store) {
	store := session.NewStore()
	generator := quiz.NewGenerator(completer, time.Millisecond)
	return NewQuizHandler(store, generator), store
}

func requestWithSession(method, path string, body []byte, sessionID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), middleware.SessionIDKey, sessionID)
	return req.WithContext(ctx)
}

func seedContent(store *session.Store, id uuid.UUID) {
	store.GetOrCreate(id).Replace(session.Content{
		SourceType: "link",
		SourceRef:  "https://example.com",
		Notes:      []string{"## Topic", "* A fact"},
		Summary:    "Summary.",
	})
}

func TestGenerateQuiz_Success(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{quizResponseText(5)}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	body, _ := json.Marshal(models.GenerateQuizRequest{Difficulty: "easy", QuestionCount: 5})
	req := requestWithSession(http.MethodPost, "/api/quiz/generate", body, sessionID)
	rr := httptest.NewRecorder()

	handler.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var batch models.QuizBatch
	if err := json.NewDecoder(rr.Body).Decode(&batch); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if batch.AchievedCount != 5 {
		t.Errorf("expected 5 questions, got %d", batch.AchievedCount)
	}
	if batch.Difficulty != "easy" {
		t.Errorf("expected difficulty easy, got %q", batch.Difficulty)
	}

	sess, _ := store.Get(sessionID)
	if sess.QuizCount() != 1 {
		t.Errorf("expected quiz appended to session, got %d", sess.QuizCount())
	}
}

func TestGenerateQuiz_DefaultsApplied(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{quizResponseText(5)}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	req := requestWithSession(http.MethodPost, "/api/quiz/generate", []byte(`{}`), sessionID)
	rr := httptest.NewRecorder()

	handler.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var batch models.QuizBatch
	json.NewDecoder(rr.Body).Decode(&batch)
	if batch.Difficulty != "medium" {
		t.Errorf("expected default difficulty medium, got %q", batch.Difficulty)
	}
	if batch.RequestedCount != 5 {
		t.Errorf("expected default count 5, got %d", batch.RequestedCount)
	}
}

func TestGenerateQuiz_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid difficulty", `{"difficulty":"impossible","questionCount":5}`},
		{"negative count", `{"difficulty":"easy","questionCount":-2}`},
		{"malformed json", `{"difficulty":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, store := newQuizHandler(&scriptedCompleter{})
			sessionID := uuid.New()
			seedContent(store, sessionID)

			req := requestWithSession(http.MethodPost, "/api/quiz/generate", []byte(tc.body), sessionID)
			rr := httptest.NewRecorder()

			handler.Generate(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("expected VALIDATION_ERROR, got %q", resp.Error.Code)
			}
		})
	}
}

func TestGenerateQuiz_NoContent(t *testing.T) {
	handler, _ := newQuizHandler(&scriptedCompleter{})

	body, _ := json.Marshal(models.GenerateQuizRequest{Difficulty: "easy", QuestionCount: 5})
	req := requestWithSession(http.MethodPost, "/api/quiz/generate", body, uuid.New())
	rr := httptest.NewRecorder()

	handler.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "NO_CONTENT" {
		t.Errorf("expected NO_CONTENT, got %q", resp.Error.Code)
	}
}

func TestGenerateQuiz_ExhaustedGeneration(t *testing.T) {
	// Three attempts, none parseable.
	completer := &scriptedCompleter{responses: []string{"no quiz", "still no", "nope"}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	body, _ := json.Marshal(models.GenerateQuizRequest{Difficulty: "easy", QuestionCount: 5})
	req := requestWithSession(http.MethodPost, "/api/quiz/generate", body, sessionID)
	rr := httptest.NewRecorder()

	handler.Generate(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "GENERATION_EXHAUSTED" {
		t.Errorf("expected GENERATION_EXHAUSTED, got %q", resp.Error.Code)
	}
}

func TestChangeDifficulty(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{quizResponseText(5)}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	body, _ := json.Marshal(models.ChangeDifficultyRequest{Difficulty: "hard"})
	req := requestWithSession(http.MethodPost, "/api/quiz/change-difficulty", body, sessionID)
	rr := httptest.NewRecorder()

	handler.ChangeDifficulty(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var batch models.QuizBatch
	json.NewDecoder(rr.Body).Decode(&batch)
	if batch.Difficulty != "hard" {
		t.Errorf("expected difficulty hard, got %q", batch.Difficulty)
	}
	if batch.RequestedCount != 5 {
		t.Errorf("expected fixed count 5, got %d", batch.RequestedCount)
	}
}

func TestChangeDifficulty_RequiresDifficulty(t *testing.T) {
	handler, store := newQuizHandler(&scriptedCompleter{})
	sessionID := uuid.New()
	seedContent(store, sessionID)

	req := requestWithSession(http.MethodPost, "/api/quiz/change-difficulty", []byte(`{}`), sessionID)
	rr := httptest.NewRecorder()

	handler.ChangeDifficulty(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestSubmitQuiz(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{quizResponseText(2)}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	genBody, _ := json.Marshal(models.GenerateQuizRequest{Difficulty: "easy", QuestionCount: 2})
	genReq := requestWithSession(http.MethodPost, "/api/quiz/generate", genBody, sessionID)
	genRR := httptest.NewRecorder()
	handler.Generate(genRR, genReq)
	if genRR.Code != http.StatusOK {
		t.Fatalf("quiz generation failed: %d", genRR.Code)
	}

	right := "Alpha"
	wrong := "Beta"
	subBody, _ := json.Marshal(models.SubmitQuizRequest{Answers: []models.AnswerSubmission{
		{QuestionIndex: 0, Kind: models.QuestionKindMCQ, Value: &right},
		{QuestionIndex: 1, Kind: models.QuestionKindMCQ, Value: &wrong},
	}})
	subReq := requestWithSession(http.MethodPost, "/api/quiz/submit", subBody, sessionID)
	subRR := httptest.NewRecorder()

	handler.Submit(subRR, subReq)

	if subRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", subRR.Code, subRR.Body.String())
	}

	var resp struct {
		Score   int                  `json:"score"`
		Results []models.GradeResult `json:"results"`
	}
	if err := json.NewDecoder(subRR.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Score != 50 {
		t.Errorf("expected score 50, got %d", resp.Score)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if !resp.Results[0].IsCorrect || resp.Results[1].IsCorrect {
		t.Errorf("unexpected grading: %+v", resp.Results)
	}
}

func TestSubmitQuiz_NoQuiz(t *testing.T) {
	handler, store := newQuizHandler(&scriptedCompleter{})
	sessionID := uuid.New()
	seedContent(store, sessionID)

	body, _ := json.Marshal(models.SubmitQuizRequest{Answers: []models.AnswerSubmission{}})
	req := requestWithSession(http.MethodPost, "/api/quiz/submit", body, sessionID)
	rr := httptest.NewRecorder()

	handler.Submit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "NO_QUIZ" {
		t.Errorf("expected NO_QUIZ, got %q", resp.Error.Code)
	}
}

func TestSubmitQuiz_AnswerCountMismatch(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{quizResponseText(2)}}
	handler, store := newQuizHandler(completer)

	sessionID := uuid.New()
	seedContent(store, sessionID)

	genBody, _ := json.Marshal(models.GenerateQuizRequest{Difficulty: "easy", QuestionCount: 2})
	genRR := httptest.NewRecorder()
	handler.Generate(genRR, requestWithSession(http.MethodPost, "/api/quiz/generate", genBody, sessionID))

	one := "Alpha"
	subBody, _ := json.Marshal(models.SubmitQuizRequest{Answers: []models.AnswerSubmission{
		{QuestionIndex: 0, Value: &one},
	}})
	rr := httptest.NewRecorder()
	handler.Submit(rr, requestWithSession(http.MethodPost, "/api/quiz/submit", subBody, sessionID))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "expected 2 answers") {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}
