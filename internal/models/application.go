package models

type Application struct {
	BaseModel
	CastingID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_casting_applicant" json:"casting_id"`
	ApplicantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_casting_applicant" json:"applicant_id"`

	Message       string `json:"message"`
	PortfolioLink string `json:"portfolio_link"`
	PortfolioFile string `json:"portfolio_file"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Денормализованный флаг: талант деактивировал аккаунт. Запись заявки
	// сохраняется для истории режиссера, но личность и портфолио скрываются.
	ApplicantDeleted bool `gorm:"default:false" json:"applicant_deleted"`

	// Relations
	Casting   *Casting `gorm:"foreignKey:CastingID" json:"casting,omitempty"`
	Applicant *User    `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
