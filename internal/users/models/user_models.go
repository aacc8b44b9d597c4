package models

import (
	"time"
)

// Age groups supported by the app
const (
	AgeGroupPreStudents = "preStudents"
	AgeGroupElementary  = "elementary"
)

// User represents a child account
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	AgeGroup    string    `gorm:"not null" json:"ageGroup"`
	ParentEmail string    `json:"parentEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidAgeGroup reports whether g is a supported age group.
func ValidAgeGroup(g string) bool {
	return g == AgeGroupPreStudents || g == AgeGroupElementary
}

// CreateUserRequest is the payload for creating a user
type CreateUserRequest struct {
	Name        string `json:"name"`
	AgeGroup    string `json:"ageGroup" binding:"required"`
	ParentEmail string `json:"parentEmail" binding:"omitempty,email"`
}

// UpdateUserRequest is the payload for a partial user update
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	AgeGroup    *string `json:"ageGroup"`
	ParentEmail *string `json:"parentEmail"`
}
