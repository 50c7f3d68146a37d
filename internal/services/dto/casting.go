package dto

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"castlink_backend/internal/models"
)

// AgeRange - желаемый возраст исполнителя роли.
type AgeRange struct {
	Min int `json:"min" binding:"omitempty,min=0"`
	Max int `json:"max" binding:"omitempty,min=0"`
}

func ParseAgeRange(data datatypes.JSON) *AgeRange {
	if len(data) == 0 {
		return nil
	}
	var r AgeRange
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}

func FormatAgeRange(r *AgeRange) datatypes.JSON {
	if r == nil {
		return nil
	}
	data, _ := json.Marshal(r)
	return datatypes.JSON(data)
}

type CreateCastingRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	RoleType     string    `json:"role_type" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	AuditionDate time.Time `json:"audition_date" binding:"required"`
	Gender       string    `json:"gender" binding:"omitempty,oneof=male female any"`
	AgeRange     *AgeRange `json:"age_range,omitempty"`
}

type UpdateCastingRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	RoleType     *string    `json:"role_type,omitempty"`
	Location     *string    `json:"location,omitempty"`
	AuditionDate *time.Time `json:"audition_date,omitempty"`
	Gender       *string    `json:"gender,omitempty" binding:"omitempty,oneof=male female any"`
	AgeRange     *AgeRange  `json:"age_range,omitempty"`
	UpdateNote   string     `json:"update_note,omitempty"`
}

type SearchCastingsRequest struct {
	Search   string `form:"search"`
	RoleType string `form:"role_type"`
	Location string `form:"location"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CastingResponse struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	RoleType      string       `json:"role_type"`
	Location      string       `json:"location"`
	AuditionDate  time.Time    `json:"audition_date"`
	Gender        string       `json:"gender"`
	AgeRange      *AgeRange    `json:"age_range,omitempty"`
	PostedBy      string       `json:"posted_by"`
	IsActive      bool         `json:"is_active"`
	IsUpdated     bool         `json:"is_updated"`
	LastUpdatedAt *time.Time   `json:"last_updated_at,omitempty"`
	UpdateNote    string       `json:"update_note,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	Poster        *UserSummary `json:"poster,omitempty"`
}

func NewCastingResponse(c *models.Casting) *CastingResponse {
	resp := &CastingResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		RoleType:      c.RoleType,
		Location:      c.Location,
		AuditionDate:  c.AuditionDate,
		Gender:        c.Gender,
		AgeRange:      ParseAgeRange(c.AgeRange),
		PostedBy:      c.PostedBy,
		IsActive:      c.IsActive,
		IsUpdated:     c.IsUpdated,
		LastUpdatedAt: c.LastUpdatedAt,
		UpdateNote:    c.UpdateNote,
		CreatedAt:     c.CreatedAt,
	}
	if c.Poster != nil {
		poster := NewUserSummary(c.Poster)
		resp.Poster = &poster
	}
	return resp
}

// CastingRef - усеченное представление кастинга внутри заявки.
// Unavailable=true значит родительский кастинг soft-deleted: заявка
// остается видимой владельцу, но кастинг больше не открывается.
type CastingRef struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	RoleType      string     `json:"role_type"`
	Location      string     `json:"location"`
	AuditionDate  time.Time  `json:"audition_date"`
	Unavailable   bool       `json:"unavailable"`
	IsUpdated     bool       `json:"is_updated"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	UpdateNote    string     `json:"update_note,omitempty"`
}

func NewCastingRef(c *models.Casting) *CastingRef {
	if c == nil {
		return nil
	}
	return &CastingRef{
		ID:            c.ID,
		Title:         c.Title,
		RoleType:      c.RoleType,
		Location:      c.Location,
		AuditionDate:  c.AuditionDate,
		Unavailable:   !c.IsActive,
		IsUpdated:     c.IsUpdated,
		LastUpdatedAt: c.LastUpdatedAt,
		UpdateNote:    c.UpdateNote,
	}
}
