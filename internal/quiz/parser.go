package quiz

import (
	"encoding/json"
	"log"
	"strings"

	"quizlyst-backend/internal/models"
)

// ParseQuizResponse recovers structured questions from one raw AI response.
// It first tries a JSON array fast path, then falls back to a tolerant
// line-oriented parse. Malformed input never fails loudly: the result is
// simply shorter than expectedCount (possibly empty), and the caller decides
// whether to retry.
func ParseQuizResponse(response string, expectedCount int) []models.Question {
	if expectedCount <= 0 {
		return nil
	}

	if questions := parseStructured(response, expectedCount); len(questions) > 0 {
		log.Printf("Parsed %d questions from JSON format", len(questions))
		return questions
	}

	questions := parseLines(response, expectedCount)
	log.Printf("Parsed %d valid questions from text format", len(questions))
	return questions
}

// structuredQuestion is the JSON shape the prompts ask for when models
// choose to answer structurally. The correct answer may arrive as an option
// letter, a 0-based index, or the option text itself.
type structuredQuestion struct {
	Question string          `json:"question"`
	Type     string          `json:"type"`
	Options  []string        `json:"options"`
	Answer   json.RawMessage `json:"correctAnswer"`
}

// parseStructured scans for the widest bracket-delimited span and attempts
// to decode it as a question array. Any decode failure falls through to the
// line parser.
func parseStructured(response string, expectedCount int) []models.Question {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return nil
	}

	var raw []structuredQuestion
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil
	}

	var questions []models.Question
	for _, q := range raw {
		if len(questions) == expectedCount {
			break
		}
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
			continue
		}
		answer, ok := resolveStructuredAnswer(q.Answer, q.Options)
		if !ok {
			continue
		}

		kind := q.Type
		if kind == "" {
			kind = models.QuestionKindMCQ
		}
		questions = append(questions, models.Question{
			Text:          strings.TrimSpace(q.Question),
			Kind:          kind,
			Options:       q.Options,
			CorrectAnswer: answer,
		})
	}
	return questions
}

// resolveStructuredAnswer maps a raw correctAnswer value onto one of the
// listed options. Unresolvable answers discard the question.
func resolveStructuredAnswer(raw json.RawMessage, options []string) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		for _, opt := range options {
			if opt == text {
				return opt, true
			}
		}
		if len(text) == 1 {
			idx := int(upperLetter(text[0]) - 'A')
			if idx >= 0 && idx < len(options) {
				return options[idx], true
			}
		}
		return "", false
	}

	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil && idx >= 0 && idx < len(options) {
		return options[idx], true
	}

	return "", false
}

// parseLines is the tolerant text path. It walks trimmed non-blank lines,
// classifying each via the matcher cascade, and emits a question whenever a
// new one starts (or at the end) provided the previous one accumulated at
// least two options and a resolved correct answer. Incomplete questions are
// silently dropped.
func parseLines(response string, expectedCount int) []models.Question {
	var (
		questions    []models.Question
		current      string
		haveQuestion bool
		options      []string
		answer       string
	)

	emit := func() {
		if haveQuestion && len(options) >= 2 && answer != "" {
			questions = append(questions, models.Question{
				Text:          current,
				Kind:          models.QuestionKindMCQ,
				Options:       options,
				CorrectAnswer: answer,
			})
		}
	}

	for _, rawLine := range strings.Split(response, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch m := classifyLine(line); m.Kind {
		case lineQuestionStart:
			emit()
			current = m.Text
			haveQuestion = true
			options = nil
			answer = ""

		case lineOption:
			if m.Text != "" {
				options = append(options, m.Text)
			}

		case lineAnswerMarker:
			if m.HasLetter {
				idx := int(m.Letter - 'A')
				if idx >= 0 && idx < len(options) {
					answer = options[idx]
				}
			} else if m.Text != "" {
				for _, opt := range options {
					if opt == m.Text {
						answer = opt
						break
					}
				}
			}
		}

		// Enough questions emitted; trailing lines are not processed. A
		// dangling in-progress question at this point is dropped.
		if len(questions) >= expectedCount {
			break
		}
	}

	if len(questions) < expectedCount {
		emit()
	}

	if len(questions) > expectedCount {
		questions = questions[:expectedCount]
	}
	return questions
}
