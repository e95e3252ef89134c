package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/apperr"
	"learning-service/internal/auth"
	"learning-service/internal/event"
	"learning-service/internal/models"
	"learning-service/internal/repository"
)

type CourseService struct {
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
	Badges      *repository.BadgeRepository
	Events      event.Publisher
}

func NewCourseService(courses *repository.CourseRepository, enrollments *repository.EnrollmentRepository, badges *repository.BadgeRepository, events event.Publisher) *CourseService {
	return &CourseService{Courses: courses, Enrollments: enrollments, Badges: badges, Events: events}
}

type CourseInput struct {
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Level           models.Level            `json:"level"`
	Category        string                  `json:"category"`
	Lessons         []models.Lesson         `json:"lessons"`
	FinalAssessment *models.FinalAssessment `json:"final_assessment"`
}

func (s *CourseService) List(ctx context.Context, level models.Level, category string) ([]models.Course, error) {
	if level != "" && !level.Valid() {
		return nil, apperr.Validationf("invalid level %q", level)
	}
	courses, err := s.Courses.Find(ctx, level, category)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return s.Courses.FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, actor auth.Actor, input CourseInput) (*models.Course, error) {
	if input.Title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if !input.Level.Valid() {
		return nil, apperr.Validationf("invalid level %q", input.Level)
	}

	assessment := models.FinalAssessment{PassingScore: models.DefaultPassingScore}
	if input.FinalAssessment != nil {
		assessment = *input.FinalAssessment
		if assessment.PassingScore == 0 {
			assessment.PassingScore = models.DefaultPassingScore
		}
	}

	now := time.Now()
	course := &models.Course{
		Title:           input.Title,
		Description:     input.Description,
		Level:           input.Level,
		Category:        input.Category,
		Teacher:         actor.ID,
		Lessons:         input.Lessons,
		FinalAssessment: assessment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.Events.Publish(event.CourseCreated, map[string]interface{}{
		"course_id": course.ID.Hex(),
		"teacher":   course.Teacher.Hex(),
	})
	return course, nil
}

// Update applies the provided fields. Empty or nil fields leave the current
// value in place.
func (s *CourseService) Update(ctx context.Context, actor auth.Actor, id primitive.ObjectID, input CourseInput) (*models.Course, error) {
	course, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(course, actor) {
		return nil, apperr.Forbiddenf("not authorized to update course %s", id.Hex())
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Level != "" {
		if !input.Level.Valid() {
			return nil, apperr.Validationf("invalid level %q", input.Level)
		}
		course.Level = input.Level
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Lessons != nil {
		course.Lessons = input.Lessons
	}
	if input.FinalAssessment != nil {
		course.FinalAssessment = *input.FinalAssessment
	}
	course.UpdatedAt = time.Now()

	if err := s.Courses.Update(ctx, course); err != nil {
		return nil, err
	}

	s.Events.Publish(event.CourseUpdated, map[string]interface{}{"course_id": id.Hex()})
	return course, nil
}

// Delete removes the course together with its enrollments and badges.
func (s *CourseService) Delete(ctx context.Context, actor auth.Actor, id primitive.ObjectID) error {
	course, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManageCourse(course, actor) {
		return apperr.Forbiddenf("not authorized to delete course %s", id.Hex())
	}

	if err := s.Enrollments.DeleteByCourse(ctx, id); err != nil {
		return err
	}
	if err := s.Badges.DeleteByCourse(ctx, id); err != nil {
		return err
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return err
	}

	s.Events.Publish(event.CourseDeleted, map[string]interface{}{"course_id": id.Hex()})
	return nil
}

func canManageCourse(course *models.Course, actor auth.Actor) bool {
	return actor.IsAdmin() || course.Teacher == actor.ID
}
