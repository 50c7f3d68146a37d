package dto

import (
	"time"

	"castlink_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type UserResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	Bio           string          `json:"bio"`
	AvatarRef     string          `json:"avatar_ref"`
	IntroVideoRef string          `json:"intro_video_ref"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Bio:           u.Bio,
		AvatarRef:     u.AvatarRef,
		IntroVideoRef: u.IntroVideoRef,
		CreatedAt:     u.CreatedAt,
	}
}

// TalentProfileResponse - профиль таланта для режиссера: анкета плюс
// история заявок этого таланта.
type TalentProfileResponse struct {
	UserResponse
	Applications []MyApplicationResponse `json:"applications"`
}

// DirectorProfileResponse - публичный профиль режиссера с его активными
// кастингами.
type DirectorProfileResponse struct {
	UserResponse
	Castings []CastingResponse `json:"castings"`
}
