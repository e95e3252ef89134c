package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/models"
	"learning-service/internal/repository"
)

type BadgeService struct {
	Badges  *repository.BadgeRepository
	Courses *repository.CourseRepository
	Users   *repository.UserRepository
}

func NewBadgeService(badges *repository.BadgeRepository, courses *repository.CourseRepository, users *repository.UserRepository) *BadgeService {
	return &BadgeService{Badges: badges, Courses: courses, Users: users}
}

type CourseSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Level       models.Level       `json:"level"`
	Description string             `json:"description,omitempty"`
}

type BadgeDetail struct {
	Badge  models.Badge    `json:"badge"`
	Course *CourseSummary  `json:"course,omitempty"`
	User   *StudentSummary `json:"user,omitempty"`
}

func (s *BadgeService) MyBadges(ctx context.Context, userID primitive.ObjectID) ([]BadgeDetail, error) {
	badges, err := s.Badges.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []BadgeDetail{}
	for _, badge := range badges {
		detail := BadgeDetail{Badge: badge}
		if course, err := s.Courses.FindByID(ctx, badge.Course); err == nil {
			detail.Course = &CourseSummary{ID: course.ID, Title: course.Title, Level: course.Level}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *BadgeService) Get(ctx context.Context, id primitive.ObjectID) (*BadgeDetail, error) {
	badge, err := s.Badges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &BadgeDetail{Badge: *badge}
	if course, err := s.Courses.FindByID(ctx, badge.Course); err == nil {
		detail.Course = &CourseSummary{ID: course.ID, Title: course.Title, Level: course.Level, Description: course.Description}
	}
	if user, err := s.Users.FindByID(ctx, badge.User); err == nil {
		detail.User = &StudentSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return detail, nil
}
