package services

import "fmt"

// Prompt is the system/user instruction pair sent to the model.
type Prompt struct {
	System string
	User   string
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const analysisSystemMsg = "You are a helpful assistant that analyzes resumes and returns a strict JSON object."

const analysisInstructions = "You are an expert resume reviewer. Your task is to help the user improve their CV by providing a structured analysis. " +
	"Return ONLY a JSON object with the following keys:\n" +
	"- skills (array of strings): A list of key skills mentioned in the CV.\n" +
	"- summary (short paragraph): A brief summary of the candidate's professional profile based on the CV.\n" +
	"- experience_level (string): The experience level of the candidate (e.g., Entry-Level, Mid-Level, Senior, etc.).\n" +
	"- ai_score (number 0-100): A score from 0 to 100 representing the overall quality of the CV as analyzed by the AI.\n" +
	"- suggestions (string): Detailed, actionable suggestions to improve the CV. Include advice on:\n" +
	" 1. Structure and formatting: Suggest improvements for making the CV visually appealing and easier to read.\n" +
	" 2. Content quality: Recommend adding or improving sections, such as work achievements, skills, and professional summary.\n" +
	" 3. Clarity and conciseness: Provide tips on making the CV more concise while keeping relevant information.\n" +
	" 4. Industry-specific tips: Tailor the suggestions based on the assumed industry or job role the user is applying for.\n" +
	" 5. Use of keywords: Advise on adding relevant keywords that are likely to be picked up by applicant tracking systems (ATS).\n"

// BuildAnalysisPrompt creates the CV analysis prompt. The extracted text is
// appended verbatim when present; otherwise the filename is appended as a
// last-resort signal so the model has something to reason about. Output is
// byte-identical for identical inputs.
func (pb *PromptBuilder) BuildAnalysisPrompt(cvText *string, filename string) Prompt {
	userMsg := analysisInstructions
	if cvText != nil {
		userMsg += "Here is the CV text:\n\n" + *cvText
	} else {
		userMsg += fmt.Sprintf("CV filename: %s", filename)
	}

	return Prompt{
		System: analysisSystemMsg,
		User:   userMsg,
	}
}

const interviewSystemMsg = "You are a helpful assistant that generates technical interview questions and returns a strict JSON array."

// BuildInterviewPrompt creates a prompt asking for multiple-choice interview
// questions derived from a prior CV analysis.
func (pb *PromptBuilder) BuildInterviewPrompt(analysis *Analysis, questionCount int) Prompt {
	userMsg := fmt.Sprintf("You are an expert technical interviewer. Based on the candidate profile below, "+
		"generate exactly %d multiple-choice interview questions targeting the candidate's skills and experience level. "+
		"Return ONLY a JSON array where each element is an object with the following keys:\n"+
		"- question (string): The question text.\n"+
		"- choices (array of exactly 4 strings): The possible answers.\n"+
		"- correct_answer (string): The correct answer, copied verbatim from choices.\n\n"+
		"CANDIDATE PROFILE:\n"+
		"Skills: %s\n"+
		"Experience level: %s\n"+
		"Summary: %s\n",
		questionCount,
		joinSkills(analysis.Skills),
		analysis.ExperienceLevel,
		analysis.Summary,
	)

	return Prompt{
		System: interviewSystemMsg,
		User:   userMsg,
	}
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "not specified"
	}
	out := skills[0]
	for _, s := range skills[1:] {
		out += ", " + s
	}
	return out
}
