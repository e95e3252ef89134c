package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"learning-service/internal/auth"
	"learning-service/internal/service"
)

type DiagnosticHandler struct {
	Service *service.DiagnosticService
}

func NewDiagnosticHandler(s *service.DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{Service: s}
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

// ListQuizzes returns every quiz grouped by category, without answers.
func (h *DiagnosticHandler) ListQuizzes(c *gin.Context) {
	grouped, err := h.Service.ListGrouped(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *DiagnosticHandler) GetQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	quiz, err := h.Service.GetForTaking(context.Background(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *DiagnosticHandler) GetFullQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	quiz, err := h.Service.GetFull(context.Background(), auth.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *DiagnosticHandler) SubmitQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Service.Submit(context.Background(), auth.ActorFrom(c).ID, id, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DiagnosticHandler) CreateQuiz(c *gin.Context) {
	var input service.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.Service.Create(context.Background(), auth.ActorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *DiagnosticHandler) MyQuizzes(c *gin.Context) {
	quizzes, err := h.Service.MyQuizzes(context.Background(), auth.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *DiagnosticHandler) UpdateQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var input service.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.Service.Update(context.Background(), auth.ActorFrom(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *DiagnosticHandler) DeleteQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(context.Background(), auth.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

func (h *DiagnosticHandler) QuizResults(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	results, err := h.Service.ResultsForQuiz(context.Background(), auth.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *DiagnosticHandler) MyResults(c *gin.Context) {
	results, err := h.Service.MyResults(context.Background(), auth.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
