package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
)

type AnalysisRepository interface {
	Save(result *models.AnalysisResult) error
	FindByCVID(cvID uuid.UUID) (*models.AnalysisResult, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save implements AnalysisRepository. Re-analyzing a CV replaces its
// previous result.
func (r *analysisRepository) Save(result *models.AnalysisResult) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cv_id = ?", result.CVID).Delete(&models.AnalysisResult{}).Error; err != nil {
			return err
		}
		return tx.Create(result).Error
	})

	if err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}

	return nil
}

// FindByCVID implements AnalysisRepository.
func (r *analysisRepository) FindByCVID(cvID uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := r.db.Where("cv_id = ?", cvID).First(&result).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis result not found")
		}
		return nil, fmt.Errorf("failed to find analysis result: %w", err)
	}

	return &result, nil
}
