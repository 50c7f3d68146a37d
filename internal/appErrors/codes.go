package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Ресурсы
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeCastingNotFound     ErrorCode = "CASTING_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEmailLocked        ErrorCode = "EMAIL_LOCKED"
	CodeAlreadyApplied     ErrorCode = "ALREADY_APPLIED"
	CodeInvalidState       ErrorCode = "INVALID_STATE"
	CodeInvalidStatusValue ErrorCode = "INVALID_STATUS_VALUE"
	CodeCastingUnavailable ErrorCode = "CASTING_UNAVAILABLE"

	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
