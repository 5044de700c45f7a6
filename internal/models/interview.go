package models

import (
	"time"

	"github.com/google/uuid"
)

type Interview struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CVID                 uuid.UUID `gorm:"type:uuid;not null" json:"cv_id"`
	TotalQuestions       int       `gorm:"default:0" json:"total_questions"`
	CorrectAnswers       int       `gorm:"default:0" json:"correct_answers"`
	Score                float64   `gorm:"type:decimal(5,2);default:0" json:"score"`
	Completed            bool      `gorm:"default:false" json:"completed"`
	CurrentQuestionIndex int       `gorm:"default:0" json:"current_question_index"`
	StartedAt            time.Time `gorm:"type:timestamp;default:now()" json:"started_at"`
	UpdatedAt            time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Questions []InterviewQuestion `gorm:"foreignKey:InterviewID" json:"questions,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}

type InterviewQuestion struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID   uuid.UUID `gorm:"type:uuid;not null" json:"interview_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	Choices       []string  `gorm:"serializer:json;type:jsonb" json:"choices"`
	CorrectAnswer string    `gorm:"type:text;not null" json:"-"`
	UserAnswer    *string   `gorm:"type:text" json:"user_answer,omitempty"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}
