package models

import (
	"time"

	"gorm.io/datatypes"
)

type Casting struct {
	BaseModel
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	RoleType     string    `gorm:"not null" json:"role_type"`
	Location     string    `gorm:"not null" json:"location"`
	AuditionDate time.Time `gorm:"not null" json:"audition_date"`

	// Необязательные критерии роли. AgeRange лежит как jsonb {"min":N,"max":N}.
	Gender   string         `gorm:"type:varchar(10);default:'any'" json:"gender"`
	AgeRange datatypes.JSON `gorm:"type:jsonb" json:"age_range,omitempty"`

	// Владелец кастинга. Поле неизменяемо после создания.
	PostedBy string `gorm:"type:uuid;not null;index" json:"posted_by"`

	// Soft delete: запись остается в базе ради исторических заявок,
	// но исчезает из листингов и становится недоступной для правок.
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at"`

	// Метаданные уведомления "кастинг изменился после вашей заявки".
	// Пишутся все три вместе и только если по кастингу уже есть заявки.
	IsUpdated     bool       `gorm:"default:false" json:"is_updated"`
	LastUpdatedAt *time.Time `json:"last_updated_at"`
	UpdateNote    string     `gorm:"default:''" json:"update_note"`

	// Relations
	Poster *User `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
}
