package models

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Bio          string   `json:"bio"`

	// Ссылки на blob-хранилище. Ядро хранит их как непрозрачные строки.
	AvatarRef     string `gorm:"column:avatar_ref" json:"avatar_ref"`
	IntroVideoRef string `gorm:"column:intro_video_ref" json:"intro_video_ref"`

	// Аккаунты никогда не удаляются физически. isActive=false - аккаунт
	// деактивирован; его email заблокирован для регистрации навсегда.
	IsActive bool `gorm:"default:true" json:"is_active"`
}
