package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/auth"
	"learning-service/internal/service"
)

type EnrollmentHandler struct {
	Service *service.EnrollmentService
}

func NewEnrollmentHandler(s *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{Service: s}
}

type enrollRequest struct {
	CourseID string `json:"course_id"`
}

type progressRequest struct {
	LessonID int `json:"lesson_id"`
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	enrollment, err := h.Service.Enroll(context.Background(), auth.ActorFrom(c).ID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	enrollments, err := h.Service.MyCourses(context.Background(), auth.ActorFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) CourseEnrollments(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	enrollments, err := h.Service.ForCourse(context.Background(), auth.ActorFrom(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.Service.Get(context.Background(), auth.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enrollment, err := h.Service.MarkLessonComplete(context.Background(), auth.ActorFrom(c), id, req.LessonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) SubmitAssessment(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.SubmitAssessment(context.Background(), auth.ActorFrom(c), id, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
