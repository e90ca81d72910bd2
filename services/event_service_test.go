package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

// MockEventRepository держит забеги в памяти и считает вызовы свипа.
type MockEventRepository struct {
	events     map[int]*models.Event
	nextID     int
	sweepCalls int
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		events: make(map[int]*models.Event),
		nextID: 1,
	}
}

func (m *MockEventRepository) AddEvent(event *models.Event) {
	if event.ID >= m.nextID {
		m.nextID = event.ID + 1
	}
	m.events[event.ID] = event
}

func (m *MockEventRepository) Create(ctx context.Context, exec repositories.SQLExecutor, event *models.Event) error {
	event.ID = m.nextID
	m.nextID++
	copied := *event
	m.events[event.ID] = &copied
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (m *MockEventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	for _, e := range m.events {
		events = append(events, *e)
	}
	return events, nil
}

func (m *MockEventRepository) Update(ctx context.Context, exec repositories.SQLExecutor, event *models.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	copied := *event
	m.events[event.ID] = &copied
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id int) error {
	if _, ok := m.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *MockEventRepository) ListActiveForUpdate(ctx context.Context, exec repositories.SQLExecutor, excludeID int) ([]int, error) {
	m.sweepCalls++
	var ids []int
	for id, e := range m.events {
		if e.Status == models.EventStatusActive && id != excludeID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MockEventRepository) SetStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.EventStatus) error {
	event, ok := m.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.Status = status
	return nil
}

func (m *MockEventRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	event, ok := m.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.LogoKey = logoKey
	return nil
}

func (m *MockEventRepository) FindActiveID(ctx context.Context) (*int, error) {
	for id, e := range m.events {
		if e.Status == models.EventStatusActive {
			found := id
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockEventRepository) Count(ctx context.Context) (int, error) {
	return len(m.events), nil
}

func (m *MockEventRepository) activeIDs() []int {
	var ids []int
	for id, e := range m.events {
		if e.Status == models.EventStatusActive {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestEventService_CreateActiveDemotesOthers(t *testing.T) {
	repo := NewMockEventRepository()
	repo.AddEvent(&models.Event{ID: 1, Name: "Spring Run", Place: "Park", Status: models.EventStatusActive})
	repo.AddEvent(&models.Event{ID: 2, Name: "Night Run", Place: "Stadium", Status: models.EventStatusInactive})

	svc := NewEventService(newStubDB(), repo, nil)

	created, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Name:   "Summer Run",
		Place:  "River",
		Status: "active",
	})
	require.NoError(t, err)
	require.Equal(t, models.EventStatusActive, created.Status)

	// Активным остался ровно один забег — новый.
	assert.Equal(t, []int{created.ID}, repo.activeIDs())
	assert.Equal(t, models.EventStatusInactive, repo.events[1].Status)
}

func TestEventService_CreateInactiveSkipsSweep(t *testing.T) {
	repo := NewMockEventRepository()
	repo.AddEvent(&models.Event{ID: 1, Name: "Spring Run", Place: "Park", Status: models.EventStatusActive})

	svc := NewEventService(newStubDB(), repo, nil)

	created, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Name:  "Summer Run",
		Place: "River",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusInactive, created.Status)
	assert.Equal(t, 0, repo.sweepCalls)
	assert.Equal(t, models.EventStatusActive, repo.events[1].Status)
}

func TestEventService_UpdateActiveExcludesSelf(t *testing.T) {
	repo := NewMockEventRepository()
	repo.AddEvent(&models.Event{ID: 5, Name: "Spring Run", Place: "Park", Status: models.EventStatusActive})

	svc := NewEventService(newStubDB(), repo, nil)

	// Повторная активация уже активного забега не должна его деактивировать.
	updated, err := svc.UpdateEvent(context.Background(), 5, UpdateEventInput{
		Name:   "Spring Run",
		Place:  "Park",
		Status: "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, updated.Status)
	assert.Equal(t, []int{5}, repo.activeIDs())
}

func TestEventService_UpdateActivationSwitchesActive(t *testing.T) {
	repo := NewMockEventRepository()
	repo.AddEvent(&models.Event{ID: 1, Name: "Spring Run", Place: "Park", Status: models.EventStatusActive})
	repo.AddEvent(&models.Event{ID: 2, Name: "Night Run", Place: "Stadium", Status: models.EventStatusInactive})

	svc := NewEventService(newStubDB(), repo, nil)

	_, err := svc.UpdateEvent(context.Background(), 2, UpdateEventInput{
		Name:   "Night Run",
		Place:  "Stadium",
		Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, repo.activeIDs())
}

func TestEventService_CreateValidation(t *testing.T) {
	svc := NewEventService(newStubDB(), NewMockEventRepository(), nil)

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{Place: "Park"})
	assert.ErrorIs(t, err, ErrEventNameRequired)

	_, err = svc.CreateEvent(context.Background(), CreateEventInput{Name: "Run", Place: "Park", Status: "paused"})
	assert.ErrorIs(t, err, ErrEventInvalidStatus)
}

func TestEventService_UpdateMissingEvent(t *testing.T) {
	svc := NewEventService(newStubDB(), NewMockEventRepository(), nil)

	_, err := svc.UpdateEvent(context.Background(), 99, UpdateEventInput{Name: "Run", Place: "Park"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_UploadWithoutUploader(t *testing.T) {
	repo := NewMockEventRepository()
	repo.AddEvent(&models.Event{ID: 1, Name: "Run", Place: "Park", Status: models.EventStatusInactive})

	svc := NewEventService(newStubDB(), repo, nil)

	_, err := svc.UploadEventLogo(context.Background(), 1, nil, "image/png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}
