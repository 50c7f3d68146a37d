package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"
	"castlink_backend/internal/repositories"
	"castlink_backend/internal/services/dto"
	"castlink_backend/internal/storage"
)

type ApplicationService interface {
	Apply(ctx context.Context, actor policy.Actor, req *dto.ApplyRequest) (*dto.MyApplicationResponse, error)
	GetMyApplications(ctx context.Context, actor policy.Actor) ([]dto.MyApplicationResponse, error)
	GetIncomingApplications(ctx context.Context, actor policy.Actor) ([]dto.IncomingApplicationResponse, error)
	GetApplicationsForCasting(ctx context.Context, castingID string, actor policy.Actor) ([]dto.IncomingApplicationResponse, error)
	UpdateStatus(ctx context.Context, applicationID string, actor policy.Actor, req *dto.UpdateApplicationStatusRequest) (*dto.IncomingApplicationResponse, error)
	UpdateMyApplication(ctx context.Context, applicationID string, actor policy.Actor, req *dto.UpdateMyApplicationRequest) (*dto.MyApplicationResponse, error)
	Withdraw(ctx context.Context, applicationID string, actor policy.Actor) error
	UploadPortfolio(ctx context.Context, applicationID string, actor policy.Actor, filename, contentType string, file io.Reader) (string, error)
}

type applicationService struct {
	registry repositories.Registry
	files    storage.Storage
}

func NewApplicationService(registry repositories.Registry, files storage.Storage) ApplicationService {
	return &applicationService{registry: registry, files: files}
}

// Apply - подача заявки талантом на активный кастинг.
// Дубликат пары (casting, applicant) отсекает constraint хранилища.
func (s *applicationService) Apply(ctx context.Context, actor policy.Actor, req *dto.ApplyRequest) (*dto.MyApplicationResponse, error) {
	casting, err := s.registry.Castings().FindByID(ctx, req.CastingID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCastingNotFound) {
			return nil, appErrors.ErrCastingNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	if err := policy.CanApply(casting, actor); err != nil {
		return nil, err
	}

	app := &models.Application{
		CastingID:     casting.ID,
		ApplicantID:   actor.ID,
		Message:       req.Message,
		PortfolioLink: req.PortfolioLink,
		Status:        models.ApplicationStatusPending,
	}

	if err := s.registry.Applications().Create(ctx, app); err != nil {
		if appErrors.Is(err, repositories.ErrApplicationAlreadyExists) {
			return nil, appErrors.ErrAlreadyApplied
		}
		return nil, appErrors.DatabaseError(err)
	}

	app.Casting = casting
	resp := dto.NewMyApplicationResponse(app)
	return &resp, nil
}

// GetMyApplications - заявки самого таланта; заявка под удаленным
// кастингом остается видимой, но помечается недоступной.
func (s *applicationService) GetMyApplications(ctx context.Context, actor policy.Actor) ([]dto.MyApplicationResponse, error) {
	apps, err := s.registry.Applications().ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	responses := make([]dto.MyApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, dto.NewMyApplicationResponse(&apps[i]))
	}
	return responses, nil
}

// GetIncomingApplications - все заявки по активным кастингам режиссера.
// Кастинги, удаленные режиссером, через этот путь недостижимы, хотя
// строки заявок сохраняются.
func (s *applicationService) GetIncomingApplications(ctx context.Context, actor policy.Actor) ([]dto.IncomingApplicationResponse, error) {
	if !actor.IsDirector() {
		return nil, appErrors.ErrNotAuthorized
	}

	castingIDs, err := s.registry.Castings().ActiveIDsByOwner(ctx, actor.ID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	apps, err := s.registry.Applications().ListByCastingIDs(ctx, castingIDs)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return buildIncomingResponses(apps), nil
}

func (s *applicationService) GetApplicationsForCasting(ctx context.Context, castingID string, actor policy.Actor) ([]dto.IncomingApplicationResponse, error) {
	casting, err := s.registry.Castings().FindByID(ctx, castingID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrCastingNotFound) {
			return nil, appErrors.ErrCastingNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}

	if err := policy.CanListCastingApplications(casting, actor); err != nil {
		return nil, err
	}

	apps, err := s.registry.Applications().ListByCasting(ctx, castingID)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return buildIncomingResponses(apps), nil
}

func buildIncomingResponses(apps []models.Application) []dto.IncomingApplicationResponse {
	responses := make([]dto.IncomingApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, dto.NewIncomingApplicationResponse(&apps[i]))
	}
	return responses
}

// UpdateStatus - решение режиссера по заявке. Переход проверяется по
// текущему сохраненному статусу, а не по присланному клиентом.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID string, actor policy.Actor, req *dto.UpdateApplicationStatusRequest) (*dto.IncomingApplicationResponse, error) {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Casting == nil {
		return nil, appErrors.ErrCastingUnavailable
	}

	if err := policy.CanChangeApplicationStatus(app, app.Casting, actor, req.Status); err != nil {
		return nil, err
	}

	app.Status = req.Status
	if err := s.registry.Applications().Update(ctx, app); err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := dto.NewIncomingApplicationResponse(app)
	return &resp, nil
}

// UpdateMyApplication - правка заявителем; только pending и только пока
// кастинг активен.
func (s *applicationService) UpdateMyApplication(ctx context.Context, applicationID string, actor policy.Actor, req *dto.UpdateMyApplicationRequest) (*dto.MyApplicationResponse, error) {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Casting == nil {
		return nil, appErrors.ErrCastingUnavailable
	}

	if err := policy.CanEditApplication(app, app.Casting, actor); err != nil {
		return nil, err
	}

	if req.Message != nil {
		app.Message = *req.Message
	}
	if req.PortfolioLink != nil {
		app.PortfolioLink = *req.PortfolioLink
	}

	if err := s.registry.Applications().Update(ctx, app); err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := dto.NewMyApplicationResponse(app)
	return &resp, nil
}

// Withdraw - отзыв заявки. Единственный путь физического удаления записи.
func (s *applicationService) Withdraw(ctx context.Context, applicationID string, actor policy.Actor) error {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	if err := policy.CanWithdrawApplication(app, actor); err != nil {
		return err
	}

	if err := s.registry.Applications().Delete(ctx, applicationID); err != nil {
		return appErrors.DatabaseError(err)
	}
	return nil
}

var portfolioContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
	"video/mp4":       true,
}

// UploadPortfolio сохраняет файл в blob-хранилище и привязывает
// непрозрачную ссылку к заявке. Содержимое файла ядро не разбирает.
func (s *applicationService) UploadPortfolio(ctx context.Context, applicationID string, actor policy.Actor, filename, contentType string, file io.Reader) (string, error) {
	if !portfolioContentTypes[contentType] {
		return "", appErrors.NewBadRequestError("Unsupported portfolio file type: " + contentType)
	}

	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return "", err
	}

	if app.ApplicantID != actor.ID {
		return "", appErrors.ErrNotAuthorized
	}

	ref := fmt.Sprintf("portfolio/%s/%d%s", app.ID, time.Now().UnixNano(), filepath.Ext(filename))
	if err := s.files.Save(ctx, ref, file, contentType); err != nil {
		return "", appErrors.InternalError(err)
	}

	app.PortfolioFile = ref
	if err := s.registry.Applications().Update(ctx, app); err != nil {
		return "", appErrors.DatabaseError(err)
	}
	return ref, nil
}

func (s *applicationService) findApplication(ctx context.Context, applicationID string) (*models.Application, error) {
	app, err := s.registry.Applications().FindByID(ctx, applicationID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, appErrors.ErrApplicationNotFound
		}
		return nil, appErrors.DatabaseError(err)
	}
	return app, nil
}
