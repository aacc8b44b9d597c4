package services

import (
	"context"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/common/validation"
	"github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/internal/users/repository"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/google/uuid"
)

const defaultName = "Kid Explorer"

// LearningState manages the per-user progress and analytics records that
// follow the user lifecycle: initialized on creation, removed on deletion.
type LearningState interface {
	Initialize(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID string) error
}

// Service implements the user directory.
type Service struct {
	repo  repository.Repository
	state LearningState
	clock timeutil.Clock
}

func NewService(repo repository.Repository, state LearningState, clock timeutil.Clock) *Service {
	return &Service{repo: repo, state: state, clock: clock}
}

// CreateUser creates a new user and initializes their learning records.
func (s *Service) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if !models.ValidAgeGroup(req.AgeGroup) {
		return nil, errors.BadRequest("invalid age group")
	}

	name := req.Name
	if name == "" {
		name = defaultName
	}
	if err := validation.ValidateStringRange(name, 1, 50); err != nil {
		return nil, errors.BadRequest("name must be between 1 and 50 characters")
	}

	now := s.clock.Now()
	user := &models.User{
		ID:          uuid.NewString(),
		Name:        name,
		AgeGroup:    req.AgeGroup,
		ParentEmail: req.ParentEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Start the user off with zeroed progress and analytics
	if err := s.state.Initialize(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// FindUser retrieves a user by ID.
func (s *Service) FindUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.repo.Find(ctx, id)
}

// UpdateUser applies a partial update to a user.
func (s *Service) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.AgeGroup != nil {
		if !models.ValidAgeGroup(*req.AgeGroup) {
			return nil, errors.BadRequest("invalid age group")
		}
		user.AgeGroup = *req.AgeGroup
	}
	if req.ParentEmail != nil {
		user.ParentEmail = *req.ParentEmail
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user together with their progress and analytics records.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.FindUser(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.state.Remove(ctx, id)
}
