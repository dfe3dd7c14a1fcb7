// Package session holds per-caller study state in process memory. Each
// session is keyed by a caller-supplied identifier and independently locked,
// so concurrent ingestion and quiz calls from different callers never
// clobber each other.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizlyst-backend/internal/models"
	"quizlyst-backend/internal/quiz"
)

var (
	ErrNoContent = errors.New("no content found")
	ErrNoQuiz    = errors.New("no quiz found")
)

// Content is the most recently ingested material for one session.
type Content struct {
	SourceType  string
	SourceRef   string // URL, or file name for uploads
	Notes       []string
	Summary     string
	ProcessedAt time.Time
}

// Session is the state for one caller: the active content plus an
// append-only quiz history. Grading always targets the most recently
// appended batch.
type Session struct {
	id uuid.UUID

	mu      sync.Mutex
	content *Content
	quizzes []*models.QuizBatch
}

func (s *Session) ID() uuid.UUID { return s.id }

// Replace installs new content wholesale and clears the quiz history, the
// same lifecycle a fresh ingestion implies.
func (s *Session) Replace(c Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ProcessedAt = time.Now()
	s.content = &c
	s.quizzes = nil
}

// Content returns a copy of the active content.
func (s *Session) Content() (Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return Content{}, ErrNoContent
	}
	return *s.content, nil
}

// SetNotes swaps the note lines of the active content, used when notes are
// regenerated with new instructions.
func (s *Session) SetNotes(notes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return ErrNoContent
	}
	s.content.Notes = notes
	return nil
}

// AppendQuiz adds a batch to the history, making it the grading target.
func (s *Session) AppendQuiz(batch *models.QuizBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return ErrNoContent
	}
	s.quizzes = append(s.quizzes, batch)
	return nil
}

// CurrentQuiz returns the most recently appended batch.
func (s *Session) CurrentQuiz() (*models.QuizBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.quizzes) == 0 {
		return nil, ErrNoQuiz
	}
	return s.quizzes[len(s.quizzes)-1], nil
}

// GradeCurrent grades the most recent batch under the session lock, so the
// batch graded is exactly the one generated for this session.
func (s *Session) GradeCurrent(answers []models.AnswerSubmission) ([]models.GradeResult, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.quizzes) == 0 {
		return nil, 0, ErrNoQuiz
	}
	return quiz.Grade(s.quizzes[len(s.quizzes)-1], answers)
}

// QuizCount reports how many batches this session has generated.
func (s *Session) QuizCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quizzes)
}
