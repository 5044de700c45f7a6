package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
	"github.com/ameer-511/ai-cv-analysis/internal/repositories"
	"github.com/ameer-511/ai-cv-analysis/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	interviewRepo    repositories.InterviewRepository
	cvRepo           repositories.CVRepository
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	interviewRepo repositories.InterviewRepository,
	cvRepo repositories.CVRepository,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		interviewRepo:    interviewRepo,
		cvRepo:           cvRepo,
	}
}

// HandleStartInterview handles POST /cvs/:id/interviews
func (h *InterviewHandler) HandleStartInterview(c *fiber.Ctx) error {
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

	if cv.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "CV analysis is not completed yet",
		})
	}

	var req models.StartInterviewRequest
	// Body is optional; question count falls back to the configured default
	_ = c.BodyParser(&req)

	interview, err := h.interviewService.StartInterview(c.Context(), cvID, req.QuestionCount)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(interview)
}

// HandleGetInterview handles GET /interviews/:id
func (h *InterviewHandler) HandleGetInterview(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	interview, err := h.interviewRepo.FindByID(interviewID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	return c.JSON(interview)
}

// HandleSubmitAnswer handles POST /interviews/:id/answers
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "answer is required",
		})
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question_id format",
		})
	}

	result, err := h.interviewService.SubmitAnswer(c.Context(), interviewID, questionID, req.Answer)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
