package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPrompt_WithText(t *testing.T) {
	pb := NewPromptBuilder()

	text := "Jane Doe, backend engineer, 5 years of Go."
	prompt := pb.BuildAnalysisPrompt(&text, "cv.pdf")

	assert.Contains(t, prompt.System, "strict JSON object")
	assert.Contains(t, prompt.User, "skills (array of strings)")
	assert.Contains(t, prompt.User, "ai_score (number 0-100)")
	assert.Contains(t, prompt.User, "applicant tracking systems (ATS)")
	assert.Contains(t, prompt.User, "Here is the CV text:\n\n"+text)
	assert.NotContains(t, prompt.User, "CV filename:")
}

func TestBuildAnalysisPrompt_FilenameFallback(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt(nil, "jane_doe_cv.pdf")

	assert.Contains(t, prompt.User, "CV filename: jane_doe_cv.pdf")
	assert.NotContains(t, prompt.User, "Here is the CV text:")
}

func TestBuildAnalysisPrompt_Deterministic(t *testing.T) {
	pb := NewPromptBuilder()

	text := "same input"
	first := pb.BuildAnalysisPrompt(&text, "cv.pdf")
	second := pb.BuildAnalysisPrompt(&text, "cv.pdf")

	assert.Equal(t, first, second)
}

func TestBuildInterviewPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	analysis := &Analysis{
		Skills:          []string{"Go", "Kubernetes"},
		Summary:         "Experienced platform engineer.",
		ExperienceLevel: "Senior",
	}

	prompt := pb.BuildInterviewPrompt(analysis, 5)

	assert.Contains(t, prompt.System, "strict JSON array")
	assert.Contains(t, prompt.User, "generate exactly 5 multiple-choice interview questions")
	assert.Contains(t, prompt.User, "Skills: Go, Kubernetes")
	assert.Contains(t, prompt.User, "Experience level: Senior")
	assert.Contains(t, prompt.User, "correct_answer")
}

func TestBuildInterviewPrompt_NoSkills(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildInterviewPrompt(&Analysis{}, 3)

	assert.Contains(t, prompt.User, "Skills: not specified")
}
