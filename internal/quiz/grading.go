package quiz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"quizlyst-backend/internal/models"
)

// Free-text answers longer than this (after trimming) count as correct.
// This is a documented placeholder, not semantic grading.
const minTextAnswerLength = 10

// Grade scores a full answer set against a batch, positionally: submission i
// is compared with question i. Every submitted slot counts in the
// denominator, so unanswered questions score as wrong. The batch is mutated
// in place with the score and grading time; grading again overwrites both.
func Grade(batch *models.QuizBatch, answers []models.AnswerSubmission) ([]models.GradeResult, int, error) {
	if batch == nil {
		return nil, 0, fmt.Errorf("no quiz batch to grade")
	}
	if len(batch.Questions) == 0 {
		return nil, 0, fmt.Errorf("quiz batch has no questions")
	}
	if len(answers) != len(batch.Questions) {
		return nil, 0, fmt.Errorf("expected %d answers, got %d", len(batch.Questions), len(answers))
	}

	results := make([]models.GradeResult, 0, len(answers))
	correctCount := 0

	for i, question := range batch.Questions {
		value := ""
		if answers[i].Value != nil {
			value = *answers[i].Value
		}

		var isCorrect bool
		var feedback string

		switch question.Kind {
		case models.QuestionKindText:
			isCorrect = len(strings.TrimSpace(value)) > minTextAnswerLength
			if isCorrect {
				feedback = "Good answer! You've demonstrated understanding."
			} else {
				feedback = "Your answer seems too brief. Try to elaborate more."
			}
		default:
			isCorrect = value == question.CorrectAnswer
			if isCorrect {
				feedback = "Correct! Well done."
			} else {
				feedback = fmt.Sprintf("Incorrect. The right answer is: %s", question.CorrectAnswer)
			}
		}

		if isCorrect {
			correctCount++
		}
		results = append(results, models.GradeResult{
			QuestionID: i,
			IsCorrect:  isCorrect,
			Feedback:   feedback,
		})
	}

	score := int(math.Round(float64(correctCount) / float64(len(answers)) * 100))
	now := time.Now()
	batch.Score = &score
	batch.TakenAt = &now

	return results, score, nil
}
