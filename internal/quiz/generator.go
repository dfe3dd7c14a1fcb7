package quiz

import (
	"context"
	"errors"
	"log"
	"time"

	"quizlyst-backend/internal/ai"
	"quizlyst-backend/internal/models"
)

const (
	maxAttempts = 3

	// Requests above batchThreshold are split into sequential calls of at
	// most batchSize questions each, to keep any single completion small
	// enough for the model to format consistently.
	batchThreshold = 20
	batchSize      = 15

	// The retry loop stops as soon as it has this many valid questions
	// (or the full requested count, when smaller).
	acceptFloor = 5
)

// ErrNoQuestions is returned when all retries and batches together produced
// zero valid questions.
var ErrNoQuestions = errors.New("failed to parse quiz questions from AI response")

// TextCompleter is the slice of the AI chain the generator needs.
type TextCompleter interface {
	Complete(ctx context.Context, prompt, instructions string) (string, error)
}

// Generator assembles a quiz batch from one or more completion calls.
type Generator struct {
	ai         TextCompleter
	batchDelay time.Duration
}

func NewGenerator(ai TextCompleter, batchDelay time.Duration) *Generator {
	return &Generator{ai: ai, batchDelay: batchDelay}
}

// Generate obtains up to questionCount valid questions from the completion
// chain. A shortfall above zero is a success with reduced scope; zero valid
// questions after the full budget is ErrNoQuestions, and exhausting the
// retry budget on provider errors alone surfaces the last of those errors.
func (g *Generator) Generate(ctx context.Context, notes []string, difficulty string, questionCount int) (*models.QuizBatch, error) {
	log.Printf("Generating %s quiz with %d questions", difficulty, questionCount)

	var questions []models.Question
	if questionCount > batchThreshold {
		questions = g.generateBatched(ctx, notes, difficulty, questionCount)
	} else {
		var err error
		questions, err = g.generateWithRetries(ctx, notes, difficulty, questionCount)
		if err != nil {
			return nil, err
		}
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if len(questions) > questionCount {
		questions = questions[:questionCount]
		log.Printf("Trimmed to exactly %d questions", questionCount)
	}
	if len(questions) < questionCount {
		log.Printf("Got %d questions instead of %d requested", len(questions), questionCount)
	}

	return &models.QuizBatch{
		Difficulty:     difficulty,
		Questions:      questions,
		RequestedCount: questionCount,
		AchievedCount:  len(questions),
		CreatedAt:      time.Now(),
	}, nil
}

// isFatal reports whether the completion failure was an authentication
// error. The chain has already tried every backend by the time its error
// reaches here, so another attempt cannot succeed.
func isFatal(err error) bool {
	var provErr *ai.ProviderError
	return errors.As(err, &provErr) && provErr.Fatal()
}

// generateWithRetries is the single-track path for small counts: up to
// maxAttempts calls, keeping the largest parsed set seen, stopping early
// once the acceptance threshold is met. Authentication failures end the
// loop at once.
func (g *Generator) generateWithRetries(ctx context.Context, notes []string, difficulty string, questionCount int) ([]models.Question, error) {
	prompt := buildQuizPrompt(notes, difficulty, questionCount)

	target := questionCount
	if target > acceptFloor {
		target = acceptFloor
	}

	var best []models.Question
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.Printf("Attempt %d/%d to generate questions", attempt, maxAttempts)

		response, err := g.ai.Complete(ctx, prompt, quizSystemInstruction)
		if err != nil {
			lastErr = err
			log.Printf("Attempt %d failed: %v", attempt, err)
			if isFatal(err) {
				// An auth failure will not heal between attempts.
				break
			}
			continue
		}

		parsed := ParseQuizResponse(response, questionCount)
		if len(parsed) > len(best) {
			best = parsed
			log.Printf("Parsed %d questions out of %d requested", len(best), questionCount)
		}
		if len(best) >= target {
			break
		}
	}

	if len(best) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return best, nil
}

// generateBatched is the sequential path for large counts. Batches run one
// at a time with a fixed delay in between, deliberately avoiding parallel
// calls so upstream rate limits hold. A failed batch contributes zero
// questions and the run continues, except for authentication failures,
// which end the run with whatever was already collected.
func (g *Generator) generateBatched(ctx context.Context, notes []string, difficulty string, questionCount int) []models.Question {
	log.Printf("Large question count (%d), generating in batches...", questionCount)

	var questions []models.Question
	batches := (questionCount + batchSize - 1) / batchSize

	for batch := 0; batch < batches && len(questions) < questionCount; batch++ {
		remaining := questionCount - len(questions)
		size := batchSize
		if remaining < size {
			size = remaining
		}

		log.Printf("Generating batch %d/%d (%d questions)", batch+1, batches, size)
		prompt := buildQuizPrompt(notes, difficulty, size)

		response, err := g.ai.Complete(ctx, prompt, quizSystemInstruction)
		if err != nil {
			log.Printf("Batch %d failed: %v", batch+1, err)
			if isFatal(err) {
				return questions
			}
		} else if parsed := ParseQuizResponse(response, size); len(parsed) > 0 {
			questions = append(questions, parsed...)
			log.Printf("Added %d questions from batch %d. Total: %d", len(parsed), batch+1, len(questions))
		}

		if batch < batches-1 && len(questions) < questionCount {
			select {
			case <-ctx.Done():
				return questions
			case <-time.After(g.batchDelay):
			}
		}
	}

	return questions
}
