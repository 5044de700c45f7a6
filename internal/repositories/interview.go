package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	FindQuestion(id uuid.UUID) (*models.InterviewQuestion, error)
	SaveAnswer(questionID uuid.UUID, answer string) error
	UpdateProgress(interview *models.Interview) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

// Create implements InterviewRepository. The interview and its questions are
// written in one transaction.
func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Preload("Questions").Where("id = ?", id).First(&interview).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("interview not found")
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}

	return &interview, nil
}

// FindQuestion implements InterviewRepository.
func (r *interviewRepository) FindQuestion(id uuid.UUID) (*models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	if err := r.db.Where("id = ?", id).First(&question).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("question not found")
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	return &question, nil
}

// SaveAnswer implements InterviewRepository.
func (r *interviewRepository) SaveAnswer(questionID uuid.UUID, answer string) error {
	result := r.db.Model(&models.InterviewQuestion{}).
		Where("id = ?", questionID).
		Update("user_answer", answer)

	if result.Error != nil {
		return fmt.Errorf("failed to save answer: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("question not found")
	}

	return nil
}

// UpdateProgress implements InterviewRepository.
func (r *interviewRepository) UpdateProgress(interview *models.Interview) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ?", interview.ID).
		Updates(map[string]interface{}{
			"correct_answers":        interview.CorrectAnswers,
			"current_question_index": interview.CurrentQuestionIndex,
			"score":                  interview.Score,
			"completed":              interview.Completed,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update interview progress: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview not found")
	}

	return nil
}
