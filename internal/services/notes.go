package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"quizlyst-backend/internal/ai"
)

const (
	notesSystemPrompt = "You are a world-class educator and learning specialist with expertise in creating " +
		"exceptional study materials. Your mission is to generate the most comprehensive, detailed, and " +
		"well-structured notes possible. You excel at breaking down complex information into clear, " +
		"understandable segments while maintaining depth and thoroughness. Use advanced markdown formatting " +
		"with ## for main headings, ### for subheadings, * for detailed bullet points, **bold** for critical " +
		"terms and concepts, *italics* for emphasis, and perfect spacing. Write only the study notes content " +
		"without any introductory or concluding meta-commentary."

	customNotesSystemPrompt = "You are a world-class educator, content analyst, and learning specialist with " +
		"expertise in creating exceptional educational materials. The user has provided you with extracted " +
		"content and specific instructions. Create the most comprehensive, detailed, and educationally valuable " +
		"notes possible based on the provided content, following the user's instructions exactly. Do not ask " +
		"for additional content - work with what has been provided."

	summarySystemPrompt = "You are an expert at creating comprehensive yet concise summaries. Write only the " +
		"summary content without any meta-commentary, introductory phrases, or concluding statements."

	regenerateSystemPrompt = "You are a versatile learning assistant that adapts notes based on user preferences."
)

// NotesService turns extracted source text into study notes plus a summary,
// using two completion calls through the fallback chain.
type NotesService struct {
	ai *ai.Chain
}

func NewNotesService(chain *ai.Chain) *NotesService {
	return &NotesService{ai: chain}
}

// GenerateNotes produces note lines and a short summary for the extracted
// content. Mode "custom" routes the user's own instructions into the prompt.
func (s *NotesService) GenerateNotes(ctx context.Context, extracted, mode, customPrompt string) ([]string, string, error) {
	log.Printf("Generating detailed notes (%s mode)...", mode)

	var notesPrompt, systemPrompt string
	if mode == "custom" && customPrompt != "" {
		notesPrompt = buildCustomNotesPrompt(extracted, customPrompt)
		systemPrompt = customNotesSystemPrompt
	} else {
		notesPrompt = buildNotesPrompt(extracted)
		systemPrompt = notesSystemPrompt
	}

	rawNotes, err := s.ai.Complete(ctx, notesPrompt, systemPrompt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate notes: %w", err)
	}

	log.Printf("Notes generated, creating summary...")

	summary, err := s.ai.Complete(ctx, buildSummaryPrompt(rawNotes), summarySystemPrompt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return SplitNotes(rawNotes), strings.TrimSpace(summary), nil
}

// RegenerateNotes rebuilds the notes for previously ingested content with
// new user instructions. The summary is left untouched.
func (s *NotesService) RegenerateNotes(ctx context.Context, sourceRef, instructions string) ([]string, error) {
	prompt := fmt.Sprintf("Original content: %s. Regenerate notes with these instructions: %s", sourceRef, instructions)

	raw, err := s.ai.Complete(ctx, prompt, regenerateSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate notes: %w", err)
	}
	return SplitNotes(raw), nil
}

// SplitNotes breaks generated text into its non-blank lines.
func SplitNotes(raw string) []string {
	var notes []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			notes = append(notes, line)
		}
	}
	return notes
}

func buildNotesPrompt(extracted string) string {
	var b strings.Builder

	b.WriteString("Create exceptionally comprehensive and detailed study notes from the following content. ")
	b.WriteString("Analyze every aspect thoroughly and extract maximum educational value:\n\n")
	b.WriteString("CONTENT TO ANALYZE:\n")
	b.WriteString(extracted)
	b.WriteString("\n\n")

	b.WriteString(`ADVANCED FORMATTING REQUIREMENTS:
- Use ## for main topics/sections with descriptive, informative titles
- Use ### for subtopics and detailed subsections
- Use * for bullet points with comprehensive explanations
- Use **bold** for key terms, critical concepts, and essential information
- Use *italics* for emphasis on important insights and connections
- Create hierarchical structure that flows logically from general to specific

COMPREHENSIVE CONTENT REQUIREMENTS:
- Extract and explain ALL key concepts, facts, and information in detail
- Provide thorough background context and clear definitions for technical terms
- Include specific examples, case studies, and practical applications mentioned
- Explain the "why" and "how" behind concepts, not just the "what"
- Include all important details, statistics, dates, figures, and specific data
- Make connections between different ideas and concepts when applicable
- Organize information in a logical, educational sequence that builds understanding

IMPORTANT: Write ONLY the study notes content. Do not include any introductory phrases like "Here are the study notes" or concluding statements - provide only the direct educational content formatted in markdown.`)

	return b.String()
}

func buildCustomNotesPrompt(extracted, customPrompt string) string {
	var b strings.Builder

	b.WriteString("I have extracted content from the provided source. Here is the complete content:\n\n")
	b.WriteString("EXTRACTED CONTENT:\n")
	b.WriteString(extracted)
	b.WriteString("\n\nUSER'S CUSTOM INSTRUCTIONS:\n")
	b.WriteString(customPrompt)
	b.WriteString("\n\nPlease analyze the above content and create detailed notes following the user's specific instructions. ")
	b.WriteString("Use proper markdown formatting with headers, bullet points, and clear structure. Focus on the content provided above.")

	return b.String()
}

func buildSummaryPrompt(notes string) string {
	var b strings.Builder

	b.WriteString("Based on the following detailed study notes, create a comprehensive yet concise summary:\n\n")
	b.WriteString("STUDY NOTES TO SUMMARIZE:\n")
	b.WriteString(notes)
	b.WriteString("\n\n")
	b.WriteString(`Requirements:
- Capture all major topics and key concepts covered
- Highlight the most important facts and insights
- Maintain logical flow and connections between ideas
- Use clear, engaging language that reinforces learning

Write ONLY the summary content as 3-4 well-crafted sentences. Do not include any introductory phrases like "Here's a summary" - provide only the direct summary content.`)

	return b.String()
}
