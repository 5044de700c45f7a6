package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
)

// AnalysisProcessor runs the analysis pipeline for a stored CV and persists
// the outcome. It is what the background worker invokes per job.
type AnalysisProcessor interface {
	ProcessCV(ctx context.Context, cvID uuid.UUID) error
}

type analysisProcessor struct {
	cvRepo       repositories.CVRepository
	analysisRepo repositories.AnalysisRepository
	storage      StorageService
	analyzer     Analyzer
}

func NewAnalysisProcessor(
	cvRepo repositories.CVRepository,
	analysisRepo repositories.AnalysisRepository,
	storage StorageService,
	analyzer Analyzer,
) AnalysisProcessor {
	return &analysisProcessor{
		cvRepo:       cvRepo,
		analysisRepo: analysisRepo,
		storage:      storage,
		analyzer:     analyzer,
	}
}

// ProcessCV implements AnalysisProcessor.
func (p *analysisProcessor) ProcessCV(ctx context.Context, cvID uuid.UUID) error {
	// Update status to processing
	if err := p.cvRepo.UpdateStatus(cvID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for CV ID: %s\n", cvID)

	cv, err := p.cvRepo.FindByID(cvID)
	if err != nil {
		p.cvRepo.UpdateError(cvID, err.Error())
		return fmt.Errorf("failed to get CV: %w", err)
	}

	data, err := p.storage.ReadFile(cv.FilePath)
	if err != nil {
		p.cvRepo.UpdateError(cvID, fmt.Sprintf("Failed to read CV file: %v", err))
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	log.Println("🤖 Analyzing CV with LLM...")
	analysis, err := p.analyzer.Analyze(ctx, Document{
		Data:     data,
		Filename: cv.OriginalFileName,
	}, nil)
	if err != nil {
		p.cvRepo.UpdateError(cvID, fmt.Sprintf("Failed to analyze CV: %v", err))
		return fmt.Errorf("failed to analyze CV: %w", err)
	}

	log.Println("💾 Saving analysis result...")
	result := &models.AnalysisResult{
		ID:              uuid.New(),
		CVID:            cvID,
		Summary:         analysis.Summary,
		Skills:          analysis.Skills,
		ExperienceLevel: analysis.ExperienceLevel,
		AIScore:         analysis.AIScore,
		Suggestions:     analysis.Suggestions,
		AnalyzedAt:      time.Now(),
	}

	if err := p.analysisRepo.Save(result); err != nil {
		p.cvRepo.UpdateError(cvID, fmt.Sprintf("Failed to save result: %v", err))
		return fmt.Errorf("failed to save result: %w", err)
	}

	if err := p.cvRepo.UpdateStatus(cvID, models.StatusCompleted); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("✅ Analysis completed successfully for CV ID: %s\n", cvID)
	return nil
}
