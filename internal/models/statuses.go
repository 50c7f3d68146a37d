package models

type UserRole string
type ApplicationStatus string

const (
	UserRoleTalent   UserRole = "talent"
	UserRoleDirector UserRole = "director"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// ValidRole проверяет, что роль входит в закрытый набор ролей.
func ValidRole(r UserRole) bool {
	return r == UserRoleTalent || r == UserRoleDirector
}

// TerminalApplicationStatus - статусы, из которых нет переходов.
// shortlisted и rejected финальны; заявка меняет статус только один раз.
func TerminalApplicationStatus(s ApplicationStatus) bool {
	return s == ApplicationStatusShortlisted || s == ApplicationStatusRejected
}

// CanTransitionApplicationStatus проверяет допустимость перехода статуса заявки.
// Разрешено только pending -> shortlisted и pending -> rejected.
func CanTransitionApplicationStatus(from, to ApplicationStatus) bool {
	if from != ApplicationStatusPending {
		return false
	}
	return to == ApplicationStatusShortlisted || to == ApplicationStatusRejected
}

// ValidReviewStatus - допустимые значения, которые режиссер может запросить.
// Возврат в pending не принимается никогда.
func ValidReviewStatus(s ApplicationStatus) bool {
	return s == ApplicationStatusShortlisted || s == ApplicationStatusRejected
}
