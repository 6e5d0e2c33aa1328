package dto

import (
	"time"

	"anoa.com/jobportal/internal/entity"
)

type RegisterInput struct {
	FullName    string `form:"fullName" json:"fullName" validate:"required"`
	Email       string `form:"email" json:"email" validate:"required,email"`
	Password    string `form:"password" json:"password" validate:"required"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber" validate:"required"`
	Role        string `form:"role" json:"role" validate:"required,oneof=student recruiter"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Role     string `form:"role" json:"role" validate:"required"`
}

// UpdateProfileInput only overwrites fields that are non-empty. Skills is a
// comma separated list that replaces the stored one.
type UpdateProfileInput struct {
	FullName    string `form:"fullName" json:"fullName"`
	Email       string `form:"email" json:"email" validate:"omitempty,email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Bio         string `form:"bio" json:"bio"`
	Skills      string `form:"skills" json:"skills"`
}

type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}
