package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type CV struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string         `gorm:"type:text" json:"filename"`
	OriginalFileName string         `gorm:"type:text" json:"original_filename"`
	FilePath         string         `gorm:"type:text" json:"file_path"`
	Status           AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	UploadedAt       time.Time      `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
	UpdatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Analysis *AnalysisResult `gorm:"foreignKey:CVID" json:"analysis,omitempty"`
}

func (c *CV) TableName() string {
	return "cvs"
}
