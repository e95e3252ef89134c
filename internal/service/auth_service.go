package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"learning-service/internal/apperr"
	"learning-service/internal/auth"
	"learning-service/internal/event"
	"learning-service/internal/models"
	"learning-service/internal/repository"
)

type AuthService struct {
	Users  *repository.UserRepository
	Badges *repository.BadgeRepository
	Tokens *auth.TokenIssuer
	Events event.Publisher
}

func NewAuthService(users *repository.UserRepository, badges *repository.BadgeRepository, tokens *auth.TokenIssuer, events event.Publisher) *AuthService {
	return &AuthService{Users: users, Badges: badges, Tokens: tokens, Events: events}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserProfile is a user with badge documents resolved in place of ids.
type UserProfile struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  models.Role        `json:"role"`
	Level models.Level       `json:"level,omitempty"`

	Badges []models.Badge `json:"badges"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role models.Role) (*AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validationf("name, email and password are required")
	}
	if role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperr.Validationf("invalid role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		BadgeIDs:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.Tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	s.Events.Publish(event.UserRegistered, map[string]interface{}{
		"user_id": user.ID.Hex(),
		"role":    user.Role,
	})

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	token, err := s.Tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*UserProfile, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.Badges.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return &UserProfile{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Level:  user.Level,
		Badges: badges,
	}, nil
}
