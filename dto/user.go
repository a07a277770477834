package dto

import "time"

// UserResponse is the account shape returned to clients.
type UserResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Status             string    `json:"status"`
	AssignedProperties []string  `json:"assignedPGs"`
	LastLogin          time.Time `json:"lastLogin"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateUserRequest creates an account
type CreateUserRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password"`
	Role               string   `json:"role" binding:"required"`
	AssignedProperties []string `json:"assignedPGs"`
}

// UpdateUserRequest is a partial edit; nil pointer fields are untouched.
// The account id comes from the URL path.
type UpdateUserRequest struct {
	ID                 uint      `json:"id"`
	Name               *string   `json:"name"`
	Email              *string   `json:"email"`
	Role               *string   `json:"role"`
	Status             *string   `json:"status"`
	Password           *string   `json:"password"`
	AssignedProperties *[]string `json:"assignedPGs"`
}

// AssignPropertyRequest adds or removes one property name on an account.
type AssignPropertyRequest struct {
	UserID       uint   `json:"userId" binding:"required"`
	PropertyName string `json:"pgName" binding:"required"`
}
