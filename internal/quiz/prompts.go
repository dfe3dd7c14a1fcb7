package quiz

import (
	"fmt"
	"strings"
)

const quizSystemInstruction = "You are a world-class educational assessment specialist and expert quiz creator " +
	"with extensive experience in developing high-quality multiple choice questions. You excel at creating " +
	"questions that accurately assess student understanding while maintaining perfect formatting consistency. " +
	"Your questions are pedagogically sound, appropriately challenging, and designed to reinforce learning. " +
	"You always follow formatting requirements precisely and create educationally valuable assessments."

// buildQuizPrompt renders the canonical quiz prompt for the given question
// count. Batched generation calls it once per batch with the batch size.
func buildQuizPrompt(notes []string, difficulty string, questionCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on the following study notes, create a %s difficulty quiz with exactly %d multiple choice questions.\n\n",
		difficulty, questionCount)

	b.WriteString("Study Notes:\n")
	b.WriteString(strings.Join(notes, "\n"))
	b.WriteString("\n\n")

	b.WriteString("IMPORTANT FORMATTING REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Create exactly %d multiple choice questions\n", questionCount)
	b.WriteString("- Each question MUST have exactly 4 options (A, B, C, D)\n")
	fmt.Fprintf(&b, "- Difficulty level: %s\n", difficulty)

	switch difficulty {
	case "easy":
		b.WriteString("- Focus on basic facts and definitions\n")
	case "medium":
		b.WriteString("- Include some analysis and application questions\n")
	case "hard":
		b.WriteString("- Include complex analysis, synthesis, and evaluation questions\n")
	}

	b.WriteString(`- STRICTLY follow this exact format for each question:

Question 1: [question text here]
A) [option 1]
B) [option 2]
C) [option 3]
D) [option 4]
Correct Answer: A

Question 2: [question text here]
A) [option 1]
B) [option 2]
C) [option 3]
D) [option 4]
Correct Answer: B

`)
	fmt.Fprintf(&b, "Continue this pattern for all %d questions.\n\n", questionCount)

	b.WriteString(`CRITICAL:
- Number each question sequentially (Question 1, Question 2, etc.)
- Use exactly "A)", "B)", "C)", "D)" for options
- Use exactly "Correct Answer: [letter]" format
- Do not add extra text or explanations
- Make sure all questions are directly related to the provided content
- If generating many questions, ensure consistent formatting throughout`)

	return b.String()
}
