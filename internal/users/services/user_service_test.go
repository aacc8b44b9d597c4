package services

import (
	"context"
	"testing"
	"time"

	"github.com/architect/kidlearn/internal/common/errors"
	"github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/internal/users/repository"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/stretchr/testify/assert"
)

type stubState struct {
	initialized []string
	removed     []string
}

func (s *stubState) Initialize(_ context.Context, userID string) error {
	s.initialized = append(s.initialized, userID)
	return nil
}

func (s *stubState) Remove(_ context.Context, userID string) error {
	s.removed = append(s.removed, userID)
	return nil
}

func newTestService() (*Service, *stubState) {
	state := &stubState{}
	clock := timeutil.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(repository.NewMemoryRepository(), state, clock), state
}

func TestCreateUser_InitializesLearningState(t *testing.T) {
	service, state := newTestService()

	user, err := service.CreateUser(context.Background(), &models.CreateUserRequest{
		Name:     "Little Alex",
		AgeGroup: models.AgeGroupPreStudents,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Little Alex", user.Name)
	assert.Equal(t, []string{user.ID}, state.initialized)
}

func TestCreateUser_DefaultsName(t *testing.T) {
	service, _ := newTestService()

	user, err := service.CreateUser(context.Background(), &models.CreateUserRequest{
		AgeGroup: models.AgeGroupElementary,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Kid Explorer", user.Name)
}

func TestCreateUser_InvalidAgeGroup(t *testing.T) {
	service, state := newTestService()

	user, err := service.CreateUser(context.Background(), &models.CreateUserRequest{
		AgeGroup: "teenagers",
	})
	assert.Nil(t, user)
	assert.Equal(t, errors.CodeBadRequest, err.(*errors.AppError).Code)
	assert.Empty(t, state.initialized)
}

func TestFindUser_NotFound(t *testing.T) {
	service, _ := newTestService()

	user, err := service.FindUser(context.Background(), "missing")
	assert.Nil(t, user)
	assert.Equal(t, errors.CodeNotFound, err.(*errors.AppError).Code)
}

func TestUpdateUser_PartialMerge(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Name:        "Emma",
		AgeGroup:    models.AgeGroupPreStudents,
		ParentEmail: "parent@example.com",
	})
	assert.NoError(t, err)

	newGroup := models.AgeGroupElementary
	updated, err := service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{
		AgeGroup: &newGroup,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Emma", updated.Name)
	assert.Equal(t, models.AgeGroupElementary, updated.AgeGroup)
	assert.Equal(t, "parent@example.com", updated.ParentEmail)
}

func TestUpdateUser_RejectsInvalidAgeGroup(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{AgeGroup: models.AgeGroupPreStudents})
	assert.NoError(t, err)

	bad := "adults"
	updated, err := service.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{AgeGroup: &bad})
	assert.Nil(t, updated)
	assert.Equal(t, errors.CodeBadRequest, err.(*errors.AppError).Code)
}

func TestDeleteUser_CascadesToLearningState(t *testing.T) {
	service, state := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{AgeGroup: models.AgeGroupPreStudents})
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteUser(ctx, user.ID))
	assert.Equal(t, []string{user.ID}, state.removed)

	_, err = service.FindUser(ctx, user.ID)
	assert.Equal(t, errors.CodeNotFound, err.(*errors.AppError).Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	service, state := newTestService()

	err := service.DeleteUser(context.Background(), "missing")
	assert.Equal(t, errors.CodeNotFound, err.(*errors.AppError).Code)
	assert.Empty(t, state.removed)
}
