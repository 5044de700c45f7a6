package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
)

type CVRepository interface {
	Create(cv *models.CV) error
	FindByID(id uuid.UUID) (*models.CV, error)
	FindAll(limit int) ([]models.CV, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.CV, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(cv *models.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create CV: %w", err)
	}

	return nil
}

// FindByID implements CVRepository.
func (r *cvRepository) FindByID(id uuid.UUID) (*models.CV, error) {
	var cv models.CV
	if err := r.db.Preload("Analysis").Where("id = ?", id).First(&cv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("CV not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find CV: %w", err)
	}

	return &cv, nil
}

// FindAll implements CVRepository.
func (r *cvRepository) FindAll(limit int) ([]models.CV, error) {
	var cvs []models.CV
	if err := r.db.Order("uploaded_at DESC").Limit(limit).Find(&cvs).Error; err != nil {
		return nil, fmt.Errorf("failed to list CVs: %w", err)
	}

	return cvs, nil
}

// UpdateStatus implements CVRepository.
func (r *cvRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	result := r.db.Model(&models.CV{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("CV not found")
	}

	return nil
}

// UpdateError implements CVRepository.
func (r *cvRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.CV{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("CV not found")
	}

	return nil
}

// FindPendingJobs implements CVRepository.
func (r *cvRepository) FindPendingJobs(limit int) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("uploaded_at ASC").
		Limit(limit).
		Find(&cvs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return cvs, nil
}
