package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/apperr"
	"learning-service/internal/auth"
	"learning-service/internal/event"
	"learning-service/internal/grading"
	"learning-service/internal/models"
	"learning-service/internal/repository"
)

type EnrollmentService struct {
	Enrollments *repository.EnrollmentRepository
	Courses     *repository.CourseRepository
	Badges      *repository.BadgeRepository
	Users       *repository.UserRepository
	Events      event.Publisher
}

func NewEnrollmentService(enrollments *repository.EnrollmentRepository, courses *repository.CourseRepository, badges *repository.BadgeRepository, users *repository.UserRepository, events event.Publisher) *EnrollmentService {
	return &EnrollmentService{Enrollments: enrollments, Courses: courses, Badges: badges, Users: users, Events: events}
}

// EnrolledCourse is an enrollment with its course document resolved.
type EnrolledCourse struct {
	Enrollment models.Enrollment `json:"enrollment"`
	Course     models.Course     `json:"course"`
}

type StudentSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// CourseEnrollment is an enrollment with its student resolved, the view a
// teacher sees for their course roster.
type CourseEnrollment struct {
	Enrollment models.Enrollment `json:"enrollment"`
	Student    StudentSummary    `json:"student"`
}

type AssessmentResult struct {
	Score      float64            `json:"score"`
	Passed     bool               `json:"passed"`
	Enrollment *models.Enrollment `json:"enrollment"`
}

// Enroll creates the (student, course) enrollment. The course must exist;
// a duplicate pair is rejected by the unique index and surfaces as Conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID primitive.ObjectID) (*models.Enrollment, error) {
	if _, err := s.Courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		Student:    studentID,
		Course:     courseID,
		Progress:   models.Progress{CompletedLessons: []int{}, CurrentLesson: 0},
		EnrolledAt: time.Now(),
	}
	if err := s.Enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.Events.Publish(event.EnrollmentCreated, map[string]interface{}{
		"student": studentID.Hex(),
		"course":  courseID.Hex(),
	})
	return enrollment, nil
}

// MyCourses lists the student's enrollments with courses resolved.
// Enrollments whose course has since been deleted are dropped.
func (s *EnrollmentService) MyCourses(ctx context.Context, studentID primitive.ObjectID) ([]EnrolledCourse, error) {
	enrollments, err := s.Enrollments.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := []EnrolledCourse{}
	for _, enrollment := range enrollments {
		course, err := s.Courses.FindByID(ctx, enrollment.Course)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, EnrolledCourse{Enrollment: enrollment, Course: *course})
	}
	return out, nil
}

// ForCourse lists a course's roster; owning teacher or admin only.
func (s *EnrollmentService) ForCourse(ctx context.Context, actor auth.Actor, courseID primitive.ObjectID) ([]CourseEnrollment, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(course, actor) {
		return nil, apperr.Forbiddenf("not authorized to view enrollments of course %s", courseID.Hex())
	}

	enrollments, err := s.Enrollments.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := []CourseEnrollment{}
	for _, enrollment := range enrollments {
		entry := CourseEnrollment{Enrollment: enrollment}
		if student, err := s.Users.FindByID(ctx, enrollment.Student); err == nil {
			entry.Student = StudentSummary{ID: student.ID, Name: student.Name, Email: student.Email}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Get returns one enrollment with its course; visible to the owning student
// and to teachers and admins.
func (s *EnrollmentService) Get(ctx context.Context, actor auth.Actor, id primitive.ObjectID) (*EnrolledCourse, error) {
	enrollment, err := s.Enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment.Student != actor.ID && actor.Role != models.RoleTeacher && actor.Role != models.RoleAdmin {
		return nil, apperr.Forbiddenf("not authorized to view enrollment %s", id.Hex())
	}

	course, err := s.Courses.FindByID(ctx, enrollment.Course)
	if err != nil {
		return nil, err
	}
	return &EnrolledCourse{Enrollment: *enrollment, Course: *course}, nil
}

// MarkLessonComplete records lesson completion for the owning student.
// Idempotent per lesson index. The index is not validated against the
// course's lesson count.
func (s *EnrollmentService) MarkLessonComplete(ctx context.Context, actor auth.Actor, id primitive.ObjectID, lessonIndex int) (*models.Enrollment, error) {
	enrollment, err := s.Enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment.Student != actor.ID {
		return nil, apperr.Forbiddenf("not authorized to update enrollment %s", id.Hex())
	}

	if enrollment.MarkLessonComplete(lessonIndex) {
		if err := s.Enrollments.UpdateProgress(ctx, enrollment.ID, enrollment.Progress); err != nil {
			return nil, err
		}
		s.Events.Publish(event.LessonCompleted, map[string]interface{}{
			"enrollment": enrollment.ID.Hex(),
			"lesson":     lessonIndex,
		})
	}
	return enrollment, nil
}

// SubmitAssessment grades the final assessment for the owning student. The
// score and raw answers are stored unconditionally; the first passing
// submission marks the enrollment complete and issues the completion badge.
// Later submissions update the score but never revoke completion or issue a
// second badge.
func (s *EnrollmentService) SubmitAssessment(ctx context.Context, actor auth.Actor, id primitive.ObjectID, answers []int) (*AssessmentResult, error) {
	enrollment, err := s.Enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment.Student != actor.ID {
		return nil, apperr.Forbiddenf("not authorized to submit assessment for enrollment %s", id.Hex())
	}

	course, err := s.Courses.FindByID(ctx, enrollment.Course)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	score, _ := grading.GradeFlat(course.FinalAssessment.Questions, answers)
	passed, newlyCompleted := enrollment.ApplyAssessment(score, answers, course.FinalAssessment.PassingScore, now)

	if newlyCompleted {
		if err := s.issueBadge(ctx, enrollment, course, score, now); err != nil {
			return nil, err
		}
	}

	if err := s.Enrollments.SaveAssessment(ctx, enrollment); err != nil {
		return nil, err
	}

	return &AssessmentResult{Score: score, Passed: passed, Enrollment: enrollment}, nil
}

func (s *EnrollmentService) issueBadge(ctx context.Context, enrollment *models.Enrollment, course *models.Course, score float64, now time.Time) error {
	badge := models.NewCompletionBadge(enrollment.Student, course, score, now)
	if err := s.Badges.Create(ctx, badge); err != nil {
		// A concurrent submission already issued the badge; the unique
		// index keeps issuance at-most-once and the completion stands.
		if errors.Is(err, apperr.ErrConflict) {
			return nil
		}
		return err
	}

	if err := s.Users.AppendBadge(ctx, enrollment.Student, badge.ID); err != nil {
		return err
	}

	s.Events.Publish(event.BadgeIssued, map[string]interface{}{
		"badge":  badge.ID.Hex(),
		"user":   enrollment.Student.Hex(),
		"course": course.ID.Hex(),
	})
	s.Events.Publish(event.CourseCompleted, map[string]interface{}{
		"enrollment": enrollment.ID.Hex(),
		"course":     course.ID.Hex(),
	})
	return nil
}
