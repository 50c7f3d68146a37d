package dto

import (
	"time"

	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
)

type ApplyRequest struct {
	CastingID     string `json:"casting_id" binding:"required"`
	Message       string `json:"message"`
	PortfolioLink string `json:"portfolio_link" validate:"omitempty,url"`
}

type UpdateMyApplicationRequest struct {
	Message       *string `json:"message,omitempty"`
	PortfolioLink *string `json:"portfolio_link,omitempty" validate:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// MyApplicationResponse - заявка глазами самого таланта.
// CastingChanged выводится из метаданных кастинга и времени подачи.
type MyApplicationResponse struct {
	ID             string                   `json:"id"`
	Message        string                   `json:"message"`
	PortfolioLink  string                   `json:"portfolio_link"`
	PortfolioFile  string                   `json:"portfolio_file"`
	Status         models.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
	Casting        *CastingRef              `json:"casting"`
	CastingChanged bool                     `json:"casting_changed"`
}

func NewMyApplicationResponse(app *models.Application) MyApplicationResponse {
	return MyApplicationResponse{
		ID:             app.ID,
		Message:        app.Message,
		PortfolioLink:  app.PortfolioLink,
		PortfolioFile:  app.PortfolioFile,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
		Casting:        NewCastingRef(app.Casting),
		CastingChanged: policy.CastingChangedSinceApplied(app.Casting, app),
	}
}

// IncomingApplicationResponse - заявка глазами режиссера. Если заявитель
// деактивировал аккаунт, личность и портфолио скрыты, текст сообщения
// остается как часть собственной истории режиссера.
type IncomingApplicationResponse struct {
	ID               string                   `json:"id"`
	Message          string                   `json:"message"`
	PortfolioLink    string                   `json:"portfolio_link,omitempty"`
	PortfolioFile    string                   `json:"portfolio_file,omitempty"`
	Status           models.ApplicationStatus `json:"status"`
	ApplicantDeleted bool                     `json:"applicant_deleted"`
	CreatedAt        time.Time                `json:"created_at"`
	Casting          *CastingRef              `json:"casting"`
	Applicant        *ApplicantSummary        `json:"applicant,omitempty"`
}

type ApplicantSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AvatarRef     string `json:"avatar_ref,omitempty"`
	IntroVideoRef string `json:"intro_video_ref,omitempty"`
}

func NewIncomingApplicationResponse(app *models.Application) IncomingApplicationResponse {
	resp := IncomingApplicationResponse{
		ID:               app.ID,
		Message:          app.Message,
		Status:           app.Status,
		ApplicantDeleted: app.ApplicantDeleted,
		CreatedAt:        app.CreatedAt,
		Casting:          NewCastingRef(app.Casting),
	}

	if policy.RedactApplicantFields(app) {
		return resp
	}

	resp.PortfolioLink = app.PortfolioLink
	resp.PortfolioFile = app.PortfolioFile
	if app.Applicant != nil {
		resp.Applicant = &ApplicantSummary{
			ID:            app.Applicant.ID,
			Name:          app.Applicant.Name,
			Email:         app.Applicant.Email,
			AvatarRef:     app.Applicant.AvatarRef,
			IntroVideoRef: app.Applicant.IntroVideoRef,
		}
	}
	return resp
}
