package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
)

// InterviewService generates multiple-choice interview questions from a CV's
// analysis and grades submitted answers.
type InterviewService interface {
	StartInterview(ctx context.Context, cvID uuid.UUID, questionCount int) (*models.Interview, error)
	SubmitAnswer(ctx context.Context, interviewID, questionID uuid.UUID, answer string) (*models.AnswerResponse, error)
}

type interviewService struct {
	interviewRepo        repositories.InterviewRepository
	analysisRepo         repositories.AnalysisRepository
	client               ModelClient
	promptBuilder        *PromptBuilder
	defaultQuestionCount int
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	analysisRepo repositories.AnalysisRepository,
	client ModelClient,
	defaultQuestionCount int,
) InterviewService {
	return &interviewService{
		interviewRepo:        interviewRepo,
		analysisRepo:         analysisRepo,
		client:               client,
		promptBuilder:        NewPromptBuilder(),
		defaultQuestionCount: defaultQuestionCount,
	}
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

// StartInterview implements InterviewService.
func (s *interviewService) StartInterview(ctx context.Context, cvID uuid.UUID, questionCount int) (*models.Interview, error) {
	if questionCount <= 0 {
		questionCount = s.defaultQuestionCount
	}

	analysis, err := s.analysisRepo.FindByCVID(cvID)
	if err != nil {
		return nil, fmt.Errorf("CV has no analysis yet: %w", err)
	}

	prompt := s.promptBuilder.BuildInterviewPrompt(&Analysis{
		Skills:          analysis.Skills,
		Summary:         analysis.Summary,
		ExperienceLevel: analysis.ExperienceLevel,
		AIScore:         analysis.AIScore,
		Suggestions:     analysis.Suggestions,
	}, questionCount)

	log.Printf("🤖 Generating %d interview questions for CV %s\n", questionCount, cvID)
	reply, err := s.client.Complete(ctx, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview questions: %w", err)
	}

	questions, err := normalizeQuestions(reply)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ID:             uuid.New(),
		CVID:           cvID,
		TotalQuestions: len(questions),
		StartedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	for _, q := range questions {
		interview.Questions = append(interview.Questions, models.InterviewQuestion{
			ID:            uuid.New(),
			InterviewID:   interview.ID,
			QuestionText:  q.Question,
			Choices:       q.Choices,
			CorrectAnswer: q.CorrectAnswer,
			CreatedAt:     time.Now(),
		})
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}

	log.Printf("✅ Interview %s created with %d questions\n", interview.ID, len(questions))
	return interview, nil
}

// SubmitAnswer implements InterviewService.
func (s *interviewService) SubmitAnswer(ctx context.Context, interviewID, questionID uuid.UUID, answer string) (*models.AnswerResponse, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Completed {
		return nil, fmt.Errorf("interview already completed")
	}

	question, err := s.interviewRepo.FindQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question.InterviewID != interviewID {
		return nil, fmt.Errorf("question does not belong to this interview")
	}
	if question.UserAnswer != nil {
		return nil, fmt.Errorf("question already answered")
	}

	if err := s.interviewRepo.SaveAnswer(questionID, answer); err != nil {
		return nil, err
	}

	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.CorrectAnswer))
	if correct {
		interview.CorrectAnswers++
	}
	interview.CurrentQuestionIndex++
	if interview.CurrentQuestionIndex >= interview.TotalQuestions {
		interview.Completed = true
	}
	if interview.TotalQuestions > 0 {
		interview.Score = float64(interview.CorrectAnswers) / float64(interview.TotalQuestions) * 100
	}

	if err := s.interviewRepo.UpdateProgress(interview); err != nil {
		return nil, err
	}

	return &models.AnswerResponse{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		CorrectSoFar:  interview.CorrectAnswers,
		QuestionsLeft: interview.TotalQuestions - interview.CurrentQuestionIndex,
		Completed:     interview.Completed,
		Score:         interview.Score,
	}, nil
}

// normalizeQuestions recovers a JSON array of questions from the assistant
// reply, using the same strategies as the analysis normalizer but with array
// bounds. Entries missing a question, a correct answer, or at least two
// choices are dropped.
func normalizeQuestions(text string) ([]generatedQuestion, error) {
	raw, err := extractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var questions []generatedQuestion
	for _, q := range raw {
		if q.Question == "" || q.CorrectAnswer == "" || len(q.Choices) < 2 {
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, &ParseError{Text: text}
	}
	return questions, nil
}

func extractJSONArray(text string) ([]generatedQuestion, error) {
	trimmed := strings.TrimSpace(text)

	var questions []generatedQuestion
	if err := json.Unmarshal([]byte(trimmed), &questions); err == nil {
		return questions, nil
	}

	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Text: text}
	}
	candidate := trimmed[start : end+1]

	if err := json.Unmarshal([]byte(candidate), &questions); err == nil {
		return questions, nil
	}

	requoted := strings.ReplaceAll(candidate, "'", "\"")
	if err := json.Unmarshal([]byte(requoted), &questions); err == nil {
		return questions, nil
	}

	return nil, &ParseError{Text: text}
}
