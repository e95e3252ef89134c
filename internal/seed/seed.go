package seed

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"learning-service/internal/models"
	"learning-service/internal/repository"
)

// Run loads sample users, one course and one diagnostic quiz. It is a
// no-op when users already exist, so it is safe to leave enabled.
func Run(ctx context.Context, users *repository.UserRepository, courses *repository.CourseRepository, quizzes *repository.QuizRepository) error {
	count, err := users.Col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seed skipped: users already exist")
		return nil
	}

	now := time.Now()

	if _, err := createUser(ctx, users, "Admin User", "admin@eduplatform.com", "admin123", models.RoleAdmin, now); err != nil {
		return err
	}
	teacher, err := createUser(ctx, users, "John Teacher", "teacher@eduplatform.com", "teacher123", models.RoleTeacher, now)
	if err != nil {
		return err
	}
	if _, err := createUser(ctx, users, "Jane Student", "student@eduplatform.com", "student123", models.RoleStudent, now); err != nil {
		return err
	}

	quiz := &models.DiagnosticQuiz{
		Title:    "English Placement Test",
		Category: "English",
		Teacher:  teacher.ID,
		Questions: []models.DiagnosticQuestion{
			{
				Question:      `What is the past tense of "go"?`,
				Options:       []string{"goed", "went", "gone", "goes"},
				CorrectAnswer: 1,
				Difficulty:    models.LevelBeginner,
			},
			{
				Question:      `Which word is a synonym of "happy"?`,
				Options:       []string{"sad", "angry", "joyful", "tired"},
				CorrectAnswer: 2,
				Difficulty:    models.LevelBeginner,
			},
			{
				Question:      "What is a metaphor?",
				Options:       []string{"A comparison using like or as", "A direct comparison without using like or as", "A sound word", "A repeated word"},
				CorrectAnswer: 1,
				Difficulty:    models.LevelIntermediate,
			},
			{
				Question:      "Which sentence uses correct grammar?",
				Options:       []string{"He don't like pizza", "He doesn't likes pizza", "He doesn't like pizza", "He not like pizza"},
				CorrectAnswer: 2,
				Difficulty:    models.LevelIntermediate,
			},
			{
				Question:      "What is the subjunctive mood used for?",
				Options:       []string{"Expressing facts", "Expressing wishes or hypotheticals", "Asking questions", "Making commands"},
				CorrectAnswer: 1,
				Difficulty:    models.LevelAdvanced,
			},
			{
				Question:      `Identify the gerund in: "Swimming is my favorite activity"`,
				Options:       []string{"is", "my", "Swimming", "activity"},
				CorrectAnswer: 2,
				Difficulty:    models.LevelAdvanced,
			},
		},
		LevelThresholds: models.DefaultLevelThresholds(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := quizzes.Create(ctx, quiz); err != nil {
		return err
	}

	course := &models.Course{
		Title:       "English for Beginners",
		Description: "Learn the basics of English language including grammar, vocabulary, and simple conversations.",
		Level:       models.LevelBeginner,
		Category:    "English",
		Teacher:     teacher.ID,
		Lessons: []models.Lesson{
			{Title: "Introduction to English", Content: "The alphabet, basic greetings and common phrases.", Order: 0},
			{Title: "Basic Grammar", Content: "Simple sentence structure: subject, verb, object.", Order: 1},
			{Title: "Everyday Conversations", Content: "Introductions, shopping and asking for directions.", Order: 2},
		},
		FinalAssessment: models.FinalAssessment{
			Questions: []models.AssessmentQuestion{
				{Question: `What is the first letter of the English alphabet?`, Options: []string{"B", "A", "C", "D"}, CorrectAnswer: 1},
				{Question: `Which of these is a greeting?`, Options: []string{"Goodbye", "Hello", "Pizza", "Run"}, CorrectAnswer: 1},
				{Question: `Complete: "How ___ you?"`, Options: []string{"is", "am", "are", "be"}, CorrectAnswer: 2},
				{Question: `Which sentence is correct?`, Options: []string{"She like tea", "She likes tea", "She liking tea", "She to like tea"}, CorrectAnswer: 1},
				{Question: `What do you say in the morning?`, Options: []string{"Good night", "Good evening", "Good morning", "Goodbye"}, CorrectAnswer: 2},
			},
			PassingScore: models.DefaultPassingScore,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := courses.Create(ctx, course); err != nil {
		return err
	}

	log.Println("Seed data loaded")
	return nil
}

func createUser(ctx context.Context, users *repository.UserRepository, name, email, password string, role models.Role, now time.Time) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		BadgeIDs:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
