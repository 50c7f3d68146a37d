// Package policy отвечает на три вопроса про пару (entity, actor):
// видно ли для чтения, можно ли менять, можно ли создавать в текущем
// состоянии. Функции чистые: никакого хранилища и сети, только правила.
package policy

import (
	"castlink_backend/internal/appErrors"
	"castlink_backend/internal/models"
)

// Actor - проверенная пара {userId, role} из identity assertion.
// Ядро никогда не видит сырые credentials.
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a Actor) IsTalent() bool   { return a.Role == models.UserRoleTalent }
func (a Actor) IsDirector() bool { return a.Role == models.UserRoleDirector }

// CanViewCasting: публичное чтение - только активные кастинги.
// Владелец видит и неактивные (его собственная история).
func CanViewCasting(c *models.Casting, actor Actor) error {
	if c.IsActive {
		return nil
	}
	if c.PostedBy == actor.ID {
		return nil
	}
	return appErrors.ErrCastingNotFound
}

// CanMutateCasting: правка и удаление - только владельцу и только пока
// кастинг активен. Повторное удаление отклоняется, а не проглатывается.
func CanMutateCasting(c *models.Casting, actor Actor) error {
	if c.PostedBy != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	if !c.IsActive {
		return appErrors.ErrCastingDeleted
	}
	return nil
}

// CanApply: подать заявку может только талант и только на активный кастинг.
// Дубликат (casting, applicant) ловится на уровне хранилища, не здесь.
func CanApply(c *models.Casting, actor Actor) error {
	if !actor.IsTalent() {
		return appErrors.ErrNotAuthorized
	}
	if !c.IsActive {
		return appErrors.ErrCastingNotFound
	}
	return nil
}

// CanViewApplication: "мои заявки" видит только сам заявитель.
func CanViewApplication(app *models.Application, actor Actor) error {
	if app.ApplicantID != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	return nil
}

// CanListCastingApplications: входящие заявки кастинга видит только
// владелец и только пока кастинг активен. После удаления кастинга этот
// путь закрыт, хотя сами записи заявок сохраняются.
func CanListCastingApplications(c *models.Casting, actor Actor) error {
	if !c.IsActive {
		return appErrors.ErrCastingNotFound
	}
	if c.PostedBy != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	return nil
}

// CanEditApplication: заявитель правит message/portfolio только пока
// заявка pending и родительский кастинг активен.
func CanEditApplication(app *models.Application, c *models.Casting, actor Actor) error {
	if app.ApplicantID != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	if !c.IsActive {
		return appErrors.ErrCastingDeleted
	}
	if app.Status != models.ApplicationStatusPending {
		return appErrors.ErrApplicationReviewed
	}
	return nil
}

// CanWithdrawApplication: отзыв (hard delete) - только свой и только из pending.
func CanWithdrawApplication(app *models.Application, actor Actor) error {
	if app.ApplicantID != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	if app.Status != models.ApplicationStatusPending {
		return appErrors.ErrApplicationNotPending
	}
	return nil
}

// CanChangeApplicationStatus: статус меняет владелец родительского кастинга,
// кастинг должен быть активен, переход - только pending -> shortlisted|rejected.
// Проверка идет по текущему сохраненному статусу, не по словам клиента.
func CanChangeApplicationStatus(app *models.Application, c *models.Casting, actor Actor, newStatus models.ApplicationStatus) error {
	if !models.ValidReviewStatus(newStatus) {
		return appErrors.ErrInvalidStatusValue
	}
	if !c.IsActive {
		return appErrors.ErrCastingDeleted
	}
	if c.PostedBy != actor.ID {
		return appErrors.ErrNotAuthorized
	}
	if !models.CanTransitionApplicationStatus(app.Status, newStatus) {
		return appErrors.ErrApplicationReviewed
	}
	return nil
}

// RedactApplicantFields: при applicantDeleted=true режиссеру скрываются
// личность заявителя и портфолио; текст сообщения остается как часть
// собственной истории режиссера.
func RedactApplicantFields(app *models.Application) bool {
	return app.ApplicantDeleted
}

// CastingChangedSinceApplied выводит сигнал "кастинг изменился после вашей
// заявки" только из полей кастинга и времени подачи заявки, без
// пер-заявочного журнала изменений.
func CastingChangedSinceApplied(c *models.Casting, app *models.Application) bool {
	if c == nil || !c.IsUpdated || c.LastUpdatedAt == nil {
		return false
	}
	return c.LastUpdatedAt.After(app.CreatedAt)
}
