package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Status       string `json:"status"`
}

type AnalysisResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type AnalysisData struct {
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
	AIScore         float64  `json:"ai_score"`
	Suggestions     string   `json:"suggestions"`
}

type StartInterviewRequest struct {
	QuestionCount int `json:"question_count"`
}

type AnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	Answer     string `json:"answer" validate:"required"`
}

type AnswerResponse struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer string  `json:"correct_answer"`
	CorrectSoFar  int     `json:"correct_so_far"`
	QuestionsLeft int     `json:"questions_left"`
	Completed     bool    `json:"completed"`
	Score         float64 `json:"score"`
}
