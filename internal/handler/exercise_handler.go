package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/marathi-api/internal/handler/dto"
	"github.com/yourusername/marathi-api/internal/handler/helper"
	"github.com/yourusername/marathi-api/internal/middleware"
	"github.com/yourusername/marathi-api/internal/service"
)

// ExerciseHandler обрабатывает запросы, связанные с упражнениями
type ExerciseHandler struct {
	exerciseService *service.ExerciseService
	progressService *service.ProgressService
}

// NewExerciseHandler создает новый обработчик упражнений
func NewExerciseHandler(exerciseService *service.ExerciseService, progressService *service.ProgressService) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		progressService: progressService,
	}
}

// GetExercise возвращает следующее упражнение пользователя
// GET /api/exercises/:module
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	module, _ := middleware.ModuleFromContext(c)

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), userID, module)
	if err != nil {
		handleError(c, "ExerciseHandler", err)
		return
	}

	questions, err := h.exerciseService.BuildQuestions(exercise)
	if err != nil {
		handleError(c, "ExerciseHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExerciseResponse(exercise, questions))
}

// GetOptions возвращает новые варианты ответа для одной буквы
// GET /api/exercises/:module/options?letter=<script>
func (h *ExerciseHandler) GetOptions(c *gin.Context) {
	module, _ := middleware.ModuleFromContext(c)

	letter := strings.TrimSpace(c.Query("letter"))
	if letter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "letter query parameter is required"})
		return
	}

	question, err := h.exerciseService.GetQuestion(module, letter)
	if err != nil {
		handleError(c, "ExerciseHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"letter":  question.Letter,
		"prompt":  question.Prompt,
		"options": helper.ConvertOptionsToObjects(question.Options),
	})
}

// SubmitAnswer проверяет ответ и обновляет прогресс пользователя
// POST /api/exercises/:module/answers
func (h *ExerciseHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	module, _ := middleware.ModuleFromContext(c)

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, correct, err := h.progressService.RecordAnswer(c.Request.Context(), userID, module, req.Letter, req.Answer)
	if err != nil {
		handleError(c, "ExerciseHandler", err)
		return
	}

	expected, err := h.exerciseService.ExpectedAnswer(module, challenge.Letter)
	if err != nil {
		handleError(c, "ExerciseHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitAnswerResponse{
		Correct:      correct,
		Expected:     expected,
		Attempts:     challenge.Attempts,
		Flawless:     challenge.Flawless,
		LastActivity: challenge.LastActivity,
	})
}
