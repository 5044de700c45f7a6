package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CVID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"cv_id"`
	Summary         string    `gorm:"type:text" json:"summary"`
	Skills          []string  `gorm:"serializer:json;type:jsonb" json:"skills"`
	ExperienceLevel string    `gorm:"type:text" json:"experience_level"`
	AIScore         float64   `gorm:"type:decimal(5,2);default:0" json:"ai_score"`
	Suggestions     string    `gorm:"type:text" json:"suggestions"`
	AnalyzedAt      time.Time `gorm:"type:timestamp;default:now()" json:"analyzed_at"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}
