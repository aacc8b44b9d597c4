package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/architect/kidlearn/internal/users/models"
	"github.com/architect/kidlearn/internal/users/repository"
	"github.com/architect/kidlearn/internal/users/services"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type noopState struct{}

func (noopState) Initialize(context.Context, string) error { return nil }
func (noopState) Remove(context.Context, string) error     { return nil }

// setupTestRouter creates a Gin router with user handlers backed by the
// in-memory store
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	clock := timeutil.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	service := services.NewService(repository.NewMemoryRepository(), noopState{}, clock)
	handler := NewUserHandler(service)

	router := gin.New()
	router.POST("/api/users", handler.CreateUser)
	router.GET("/api/users/:id", handler.GetUser)
	router.PUT("/api/users/:id", handler.UpdateUser)
	router.DELETE("/api/users/:id", handler.DeleteUser)
	return router
}

func createTestUser(t *testing.T, router *gin.Engine) models.User {
	t.Helper()

	body, _ := json.Marshal(models.CreateUserRequest{
		Name:     "Little Alex",
		AgeGroup: models.AgeGroupPreStudents,
	})
	req, _ := http.NewRequest("POST", "/api/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestCreateUser_Success(t *testing.T) {
	router := setupTestRouter()

	user := createTestUser(t, router)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Little Alex", user.Name)
}

func TestCreateUser_MissingAgeGroup(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("POST", "/api/users", bytes.NewBuffer([]byte(`{"name":"X"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_InvalidAgeGroup(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("POST", "/api/users", bytes.NewBuffer([]byte(`{"ageGroup":"adults"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser_Success(t *testing.T) {
	router := setupTestRouter()
	user := createTestUser(t, router)

	req, _ := http.NewRequest("GET", "/api/users/"+user.ID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/api/users/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_Success(t *testing.T) {
	router := setupTestRouter()
	user := createTestUser(t, router)

	req, _ := http.NewRequest("PUT", "/api/users/"+user.ID, bytes.NewBuffer([]byte(`{"name":"Alexander"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Alexander", updated.Name)
	assert.Equal(t, models.AgeGroupPreStudents, updated.AgeGroup)
}

func TestDeleteUser_Success(t *testing.T) {
	router := setupTestRouter()
	user := createTestUser(t, router)

	req, _ := http.NewRequest("DELETE", "/api/users/"+user.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/users/"+user.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
