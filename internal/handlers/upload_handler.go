package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
	"github.com/ameer-511/ai-cv-analysis/internal/services"
)

type UploadHandler struct {
	cvRepo         repositories.CVRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewUploadHandler(
	cvRepo repositories.CVRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		cvRepo:         cvRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /cvs. The uploaded CV is stored, queued for
// analysis, and the job is enqueued to the background worker.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV file uploaded. Please upload 'file' as a PDF or text file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	cv := models.CV{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Status:           models.StatusQueued,
		UploadedAt:       time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.cvRepo.Create(&cv); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV record: %v", err),
		})
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(cv.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		ID:           cv.ID.String(),
		Filename:     cv.Filename,
		OriginalName: cv.OriginalFileName,
		Status:       string(cv.Status),
	})
}
