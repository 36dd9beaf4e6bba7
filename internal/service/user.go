package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/metrics"
)

// UserService ties synthetic generation, rendering and persistence of users
// together for the HTTP layer.
type UserService struct {
	users     domain.UserRepository
	generator *Generator
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, generator *Generator) *UserService {
	return &UserService{users: users, generator: generator}
}

// Generate returns a lazy sequence of count synthetic users.
func (s *UserService) Generate(count int) (iter.Seq[domain.UserBase], error) {
	return s.generator.Generate(count)
}

// GenerateHTML renders count synthetic users as an HTML list.
func (s *UserService) GenerateHTML(ctx context.Context, count int) (string, error) {
	users, err := s.generator.Generate(count)
	if err != nil {
		return "", err
	}
	return RenderUsers(ctx, users)
}

// GenerateResponse collects amount synthetic users into a response envelope.
func (s *UserService) GenerateResponse(amount int) (*domain.UsersResponse, error) {
	users, err := s.generator.Generate(amount)
	if err != nil {
		return nil, err
	}
	collected := slices.Collect(users)
	if collected == nil {
		collected = []domain.UserBase{}
	}
	return &domain.UsersResponse{Users: collected}, nil
}

// Create validates and persists a user, returning it as stored.
func (s *UserService) Create(ctx context.Context, u domain.UserBase) (*domain.UserWithID, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Insert(ctx, u)
	metrics.RecordInsert(err)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	slog.Info("user created", "id", user.ID)
	return user, nil
}

// CreateFromJSON parses a JSON user payload and persists it. Malformed
// payloads never reach the repository.
func (s *UserService) CreateFromJSON(ctx context.Context, data []byte) (*domain.UserWithID, error) {
	u, err := domain.ParseUserBase(data)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, u)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.UserWithID, error) {
	return s.users.GetByID(ctx, id)
}

// ListHTML renders every stored user as an HTML list.
func (s *UserService) ListHTML(ctx context.Context) (string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	return RenderUsers(ctx, BaseUsers(users))
}
