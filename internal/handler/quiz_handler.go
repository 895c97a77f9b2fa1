package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/genai/prompt"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService service.QuizService
	genService  service.GenerationService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, genService service.GenerationService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		genService:  genService,
	}
}

func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.UserIDKey).(string); ok {
		return id
	}
	return ""
}

// locale picks the response language: explicit query param first, then the
// request body's language field.
func locale(c *fiber.Ctx, bodyLanguage string) string {
	if l := c.Query("locale"); l != "" {
		return l
	}
	return bodyLanguage
}

// GenerateQuiz godoc
// @Summary Generate a quiz with the LLM
// @Description Builds a prompt from the parameters, calls the model, parses and validates the reply, and stores the accepted quiz as a draft.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 201 {object} dto.GeneratedQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return errs
	}

	quiz, report, err := h.genService.GenerateQuiz(c.Context(), req.ToParameters(), userID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.GeneratedQuizResponse{
		Quiz:    dto.NewQuizResponse(quiz),
		Quality: dto.NewQualityReportResponse(report),
	})
}

// RegenerateQuestions godoc
// @Summary Regenerate selected questions
// @Description Replaces the questions at the given indices with freshly generated ones and revalidates the quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.RegenerateQuestionsRequest true "Regeneration parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/regenerate [post]
func (h *QuizHandler) RegenerateQuestions(c *fiber.Ctx) error {
	var req dto.RegenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return errs
	}

	quiz, err := h.genService.RegenerateQuestions(c.Context(), c.Params("id"), req.Indices, req.Reason, req.ToParameters())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// ImproveQuestions godoc
// @Summary Improve a set of questions
// @Description Asks the model to revise the supplied questions along the requested aspects and validates the revised set.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.ImproveQuestionsRequest true "Questions and improvement targets"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/improve [post]
func (h *QuizHandler) ImproveQuestions(c *fiber.Ctx) error {
	var req dto.ImproveQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return errs
	}

	targets := make([]prompt.ImprovementType, 0, len(req.Targets))
	for _, t := range req.Targets {
		targets = append(targets, prompt.ImprovementType(t))
	}
	params := domain.GenerationParameters{Language: domain.Language(req.Language)}

	improved, err := h.genService.ImproveQuestions(c.Context(), req.Questions, targets, req.Issues, params)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionsResponse{Questions: improved})
}

// CreateQuiz godoc
// @Summary Create a quiz manually
// @Description Validates and stores a caller-authored quiz as a draft.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz data"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	quiz, err := h.quizService.CreateQuiz(c.Context(), req.ToDomain(userID(c)), locale(c, req.Language))
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz created", zap.String("quiz_id", quiz.ID))
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// GetQuiz godoc
// @Summary Get a quiz by ID
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// ListQuizzes godoc
// @Summary List the caller's quizzes
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Security BearerAuth
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListUserQuizzes(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizListResponse(quizzes))
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Applies a partial update. Supplied fields are validated alone first, then the merged quiz is validated in full.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Fields to update"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [patch]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	quiz, err := h.quizService.UpdateQuiz(c.Context(), c.Params("id"), req.ToDomain(), locale(c, req.Language))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quiz
// @Param id path string true "Quiz ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateQuiz godoc
// @Summary Validate a quiz without storing it
// @Description Runs the full rule set against the supplied quiz and returns every violation as data.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.ValidateQuizRequest true "Quiz to validate"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes/validate [post]
func (h *QuizHandler) ValidateQuiz(c *fiber.Ctx) error {
	var req dto.ValidateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result := h.quizService.ValidateQuiz(&req.Quiz, locale(c, req.Language))
	return c.JSON(dto.NewValidationResultResponse(result))
}

// GetQuality godoc
// @Summary Get the quality report for a quiz
// @Description Returns the advisory quality score, level, issues, suggestions and analytics. Quality never blocks acceptance.
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QualityReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/quality [get]
func (h *QuizHandler) GetQuality(c *fiber.Ctx) error {
	report, err := h.quizService.GetQualityReport(c.Context(), c.Params("id"), c.Query("locale"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQualityReportResponse(report))
}

// CheckPublication godoc
// @Summary Check publication readiness
// @Description Reports whether the quiz meets the stricter publication gate, requirement by requirement.
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.PublicationCheckResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/publication-check [get]
func (h *QuizHandler) CheckPublication(c *fiber.Ctx) error {
	check, err := h.quizService.CheckPublication(c.Context(), c.Params("id"), c.Query("locale"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPublicationCheckResponse(check))
}

// PublishQuiz godoc
// @Summary Publish a quiz
// @Description Flips the quiz to published once the publication gate passes.
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/publish [post]
func (h *QuizHandler) PublishQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.PublishQuiz(c.Context(), c.Params("id"), c.Query("locale"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}
