package models

import "time"

// Question kinds. The parser only ever emits multiple choice; free-text
// questions exist for the grading path.
const (
	QuestionKindMCQ  = "mcq"
	QuestionKindText = "text"
)

// ValidDifficulties are the difficulty levels accepted by quiz generation.
var ValidDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

type Question struct {
	Text          string   `json:"question"`
	Kind          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuizBatch is one generated quiz. Score and TakenAt are set by grading and
// overwritten on regrade.
type QuizBatch struct {
	Difficulty     string     `json:"difficulty"`
	Questions      []Question `json:"questions"`
	RequestedCount int        `json:"requestedCount"`
	AchievedCount  int        `json:"questionCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	Score          *int       `json:"score"`
	TakenAt        *time.Time `json:"takenAt"`
}

type GenerateQuizRequest struct {
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

type ChangeDifficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

// AnswerSubmission is one submitted answer. Grading is positional: the
// submission at index i is graded against question i of the current batch.
// A nil Value means the question was left unanswered.
type AnswerSubmission struct {
	QuestionIndex int     `json:"index"`
	Kind          string  `json:"type"`
	Value         *string `json:"answer"`
}

type SubmitQuizRequest struct {
	Answers []AnswerSubmission `json:"answers"`
}

type GradeResult struct {
	QuestionID int    `json:"questionId"`
	IsCorrect  bool   `json:"isCorrect"`
	Feedback   string `json:"feedback"`
}
