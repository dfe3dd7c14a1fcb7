package quiz

import (
	"regexp"
	"strings"
)

// lineKind classifies one trimmed response line.
type lineKind int

const (
	lineOther lineKind = iota
	lineQuestionStart
	lineOption
	lineAnswerMarker
)

// lineMatch is the result of classifying a line. Text holds the payload with
// the matched prefix stripped. For options, Letter is the option letter; for
// answer markers, Letter is the answer letter when one was found in the
// remainder (HasLetter distinguishes "no letter" from letter 'A').
type lineMatch struct {
	Kind      lineKind
	Text      string
	Letter    byte
	HasLetter bool
}

// The accepted question-start shapes: "Question 3:", "3.", "Q3:", "3)".
var questionStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^question\s+\d+:\s*`),
	regexp.MustCompile(`^\d+\.\s*`),
	regexp.MustCompile(`(?i)^q\d+:\s*`),
	regexp.MustCompile(`^\d+\)\s*`),
}

// Option lines: an uppercase letter A-D followed by ")", ".", or ":".
var optionPattern = regexp.MustCompile(`^([A-D])[\).:]\s*`)

// Answer markers: "Correct Answer:", "Answer:", or "Correct:", keyword
// case-insensitive. The remainder holds either an answer letter or the full
// answer text.
var (
	answerMarkerPattern = regexp.MustCompile(`(?i)^(correct answer|answer|correct):\s*`)
	answerLetterPattern = regexp.MustCompile(`(?i)\b([A-D])\b`)
)

// classifyLine runs the matchers in order and returns the first hit.
func classifyLine(line string) lineMatch {
	for _, p := range questionStartPatterns {
		if loc := p.FindStringIndex(line); loc != nil {
			return lineMatch{Kind: lineQuestionStart, Text: strings.TrimSpace(line[loc[1]:])}
		}
	}

	if m := optionPattern.FindStringSubmatch(line); m != nil {
		return lineMatch{
			Kind:      lineOption,
			Text:      strings.TrimSpace(line[len(m[0]):]),
			Letter:    m[1][0],
			HasLetter: true,
		}
	}

	if loc := answerMarkerPattern.FindStringIndex(line); loc != nil {
		rest := strings.TrimSpace(line[loc[1]:])
		if lm := answerLetterPattern.FindStringSubmatch(rest); lm != nil {
			return lineMatch{
				Kind:      lineAnswerMarker,
				Text:      rest,
				Letter:    upperLetter(lm[1][0]),
				HasLetter: true,
			}
		}
		return lineMatch{Kind: lineAnswerMarker, Text: rest}
	}

	return lineMatch{Kind: lineOther, Text: line}
}

func upperLetter(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
