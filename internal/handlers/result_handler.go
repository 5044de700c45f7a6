package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
)

type ResultHandler struct {
	cvRepo       repositories.CVRepository
	analysisRepo repositories.AnalysisRepository
}

func NewResultHandler(
	cvRepo repositories.CVRepository,
	analysisRepo repositories.AnalysisRepository,
) *ResultHandler {
	return &ResultHandler{
		cvRepo:       cvRepo,
		analysisRepo: analysisRepo,
	}
}

// HandleListCVs handles GET /cvs
func (h *ResultHandler) HandleListCVs(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.FindAll(100)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list CVs",
		})
	}

	return c.JSON(fiber.Map{
		"cvs": cvs,
	})
}

// HandleGetCV handles GET /cvs/:id
func (h *ResultHandler) HandleGetCV(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	return c.JSON(cv)
}

// HandleGetAnalysis handles GET /cvs/:id/analysis
func (h *ResultHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	// Build response based on status
	response := models.AnalysisResponse{
		ID:     cv.ID.String(),
		Status: string(cv.Status),
	}

	// If completed, include results
	if cv.Status == models.StatusCompleted {
		result, err := h.analysisRepo.FindByCVID(cvID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load analysis result",
			})
		}

		response.Result = &models.AnalysisData{
			Summary:         result.Summary,
			Skills:          result.Skills,
			ExperienceLevel: result.ExperienceLevel,
			AIScore:         result.AIScore,
			Suggestions:     result.Suggestions,
		}
	}

	// If failed, include error message
	if cv.Status == models.StatusFailed && cv.ErrorMessage != nil {
		response.ErrorMessage = cv.ErrorMessage
	}

	return c.JSON(response)
}
