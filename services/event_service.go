package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
	"github.com/szl-run/szl-backend/storage"
)

type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id int) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	UploadEventLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Event, error)
}

type CreateEventInput struct {
	Name       string     `json:"name"`
	Place      string     `json:"place"`
	Status     string     `json:"status"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	CategoryID *int       `json:"category_id"`
}

type UpdateEventInput = CreateEventInput

type eventService struct {
	db        *sql.DB
	eventRepo repositories.EventRepository
	uploader  storage.FileUploader
}

func NewEventService(db *sql.DB, eventRepo repositories.EventRepository, uploader storage.FileUploader) EventService {
	return &eventService{
		db:        db,
		eventRepo: eventRepo,
		uploader:  uploader,
	}
}

// resolveStatus нормализует статус из запроса; пустое значение — inactive.
func resolveStatus(raw string) (models.EventStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return models.EventStatusInactive, nil
	}
	status, err := models.ParseEventStatus(raw)
	if err != nil {
		return "", ErrEventInvalidStatus
	}
	return status, nil
}

func (s *eventService) validate(input CreateEventInput) (models.EventStatus, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Place) == "" {
		return "", ErrEventNameRequired
	}
	return resolveStatus(input.Status)
}

// CreateEvent создаёт забег. Если статус active, в той же транзакции все
// остальные активные забеги переводятся в inactive: активным может быть
// не более одного забега одновременно.
func (s *eventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	status, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:       strings.TrimSpace(input.Name),
		Place:      strings.TrimSpace(input.Place),
		Status:     status,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		CategoryID: input.CategoryID,
	}

	err = s.withinTx(ctx, func(tx *sql.Tx) error {
		if status == models.EventStatusActive {
			// Строка ещё не существует, исключать из свипа нечего.
			if err := s.demoteActive(ctx, tx, 0); err != nil {
				return err
			}
		}
		return s.eventRepo.Create(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.attachLogoURL(event)
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by id %d: %w", id, err)
	}
	s.attachLogoURL(event)
	return event, nil
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	for i := range events {
		s.attachLogoURL(&events[i])
	}
	return events, nil
}

// UpdateEvent обновляет забег целиком. При статусе active свип исключает
// сам обновляемый забег: повторная активация не должна деактивировать его.
func (s *eventService) UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error) {
	status, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	current, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:         id,
		Name:       strings.TrimSpace(input.Name),
		Place:      strings.TrimSpace(input.Place),
		Status:     status,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		CategoryID: input.CategoryID,
		CreatedAt:  current.CreatedAt,
		LogoKey:    current.LogoKey,
	}

	err = s.withinTx(ctx, func(tx *sql.Tx) error {
		if status == models.EventStatusActive {
			if err := s.demoteActive(ctx, tx, id); err != nil {
				return err
			}
		}
		return s.eventRepo.Update(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.attachLogoURL(event)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}

	if event.LogoKey != nil && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *event.LogoKey); delErr != nil {
			// Запись уже удалена, осиротевший файл не повод для 500.
			fmt.Printf("failed to delete event logo %s: %v\n", *event.LogoKey, delErr)
		}
	}
	return nil
}

func (s *eventService) UploadEventLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Event, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("events/%d/logo_%d", id, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload event logo: %w", err)
	}

	oldKey := event.LogoKey
	if err := s.eventRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			fmt.Printf("failed to delete orphan logo %s: %v\n", result.Key, delErr)
		}
		return nil, fmt.Errorf("failed to store event logo key: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			fmt.Printf("failed to delete previous logo %s: %v\n", *oldKey, delErr)
		}
	}

	event.LogoKey = &result.Key
	s.attachLogoURL(event)
	return event, nil
}

// demoteActive блокирует все активные забеги (кроме excludeID) и переводит
// их в inactive. Вызывается только внутри открытой транзакции: либо свип и
// запись цели фиксируются вместе, либо ничего.
func (s *eventService) demoteActive(ctx context.Context, tx *sql.Tx, excludeID int) error {
	ids, err := s.eventRepo.ListActiveForUpdate(ctx, tx, excludeID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.eventRepo.SetStatus(ctx, tx, id, models.EventStatusInactive); err != nil {
			return err
		}
	}
	return nil
}

func (s *eventService) withinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return s.translateWriteError(err)
	}
	if err := tx.Commit(); err != nil {
		return s.translateWriteError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func (s *eventService) translateWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrEventCategoryInvalid):
		return ErrInvalidReference
	case errors.Is(err, repositories.ErrConcurrentUpdate):
		return ErrConcurrentModification
	default:
		return err
	}
}

func (s *eventService) attachLogoURL(event *models.Event) {
	if event.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*event.LogoKey)
		event.LogoURL = &url
	}
}
