package dto

import (
	"encoding/json"

	"anoa.com/schoolboard/internal/model"
)

// RegisterUserInput carries the registration payload. The profile body is
// kept raw because its shape depends on the role; the profile factory
// decodes and validates it against the role-specific input type.
type RegisterUserInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     model.Role      `json:"role" binding:"required,oneof=admin teacher student"`
	Profile  json.RawMessage `json:"profile" binding:"required"`
}

type AdminProfileInput struct {
	FullName string `json:"full_name" binding:"required,min=4"`
}

type TeacherProfileInput struct {
	FirstName string `json:"first_name" binding:"required,min=2"`
	LastName  string `json:"last_name" binding:"required,min=2"`
	Degree    string `json:"degree" binding:"required,oneof=Bachelor PhD Associate Master"`
}

type StudentProfileInput struct {
	FirstName string `json:"first_name" binding:"required,min=2"`
	LastName  string `json:"last_name" binding:"required,min=2"`
	EntryDate string `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Teachers  []uint `json:"teachers" binding:"required,min=1"`
}

type UserResponse struct {
	User    *model.User   `json:"user"`
	Profile model.Profile `json:"profile"`
}

func NewUserResponse(u *model.User) *UserResponse {
	u.PasswordHash = ""
	return &UserResponse{
		User:    u,
		Profile: u.Profile(),
	}
}

func NewUserListResponse(users []*model.User) []*UserResponse {
	response := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, NewUserResponse(u))
	}
	return response
}
