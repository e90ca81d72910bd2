package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Валидация
	ErrEventNameRequired       = errors.New("event name and place are required")
	ErrEventInvalidStatus      = errors.New("event status must be 'active' or 'inactive'")
	ErrTagInvalidID            = errors.New("tag id must be a decimal number")
	ErrTagInvalidStatus        = errors.New("tag status must be 'taken' or 'free'")
	ErrParticipateInvalidIDs   = errors.New("team id and event id must be positive")
	ErrDonationInvalidAmount   = errors.New("donation amount must be greater than zero")
	ErrRoundInvalidParticipate = errors.New("participate id must be positive")
	ErrReceiveInvalidIDs       = errors.New("participate id and gift id must be positive")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrRunnerNameRequired      = errors.New("runner first name is required")
	ErrCategoryNameRequired    = errors.New("category name is required")
	ErrGiftNameRequired        = errors.New("gift name is required")
	ErrGiftInvalidRequirement  = errors.New("gift requirement must be positive")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters")

	// Не найдено
	ErrEventNotFound       = errors.New("event not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrParticipateNotFound = errors.New("participate not found")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrRoundNotFound       = errors.New("round not found")
	ErrBestTimeNotFound    = errors.New("no timed rounds recorded for participate")
	ErrTeamNotFound        = errors.New("team not found")
	ErrRunnerNotFound      = errors.New("runner not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrGiftNotFound        = errors.New("gift not found")
	ErrReceiveNotFound     = errors.New("receive record not found")

	// Конфликты
	ErrTagAlreadyTaken      = errors.New("tag is already taken")
	ErrTagConflict          = errors.New("tag with this id already exists")
	ErrCategoryNameConflict = errors.New("category with this name already exists")
	ErrReceiveConflict      = errors.New("this record already exists")
	ErrResourceInUse        = errors.New("resource cannot be deleted as it is in use")

	// Ссылочная целостность при записи
	ErrInvalidReference = errors.New("referenced record does not exist")

	// Конкурентная модификация: транзакция откатана, клиент повторяет запрос
	ErrConcurrentModification = errors.New("concurrent modification detected, retry the request")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	// Загрузка файлов
	ErrUploadsDisabled = errors.New("file uploads are not configured")
)
