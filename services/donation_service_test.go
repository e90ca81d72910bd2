package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type MockDonationRepository struct {
	donations map[int]*models.Donation
	nextID    int
}

func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{
		donations: make(map[int]*models.Donation),
		nextID:    1,
	}
}

func (m *MockDonationRepository) Create(ctx context.Context, exec repositories.SQLExecutor, donation *models.Donation) error {
	donation.ID = m.nextID
	m.nextID++
	copied := *donation
	m.donations[donation.ID] = &copied
	return nil
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id int) (*models.Donation, error) {
	donation, ok := m.donations[id]
	if !ok {
		return nil, repositories.ErrDonationNotFound
	}
	copied := *donation
	return &copied, nil
}

func (m *MockDonationRepository) findByParticipate(participateID int) (*models.Donation, error) {
	for _, d := range m.donations {
		if d.ParticipateID != nil && *d.ParticipateID == participateID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, repositories.ErrDonationNotFound
}

func (m *MockDonationRepository) FindByParticipateForUpdate(ctx context.Context, exec repositories.SQLExecutor, participateID int) (*models.Donation, error) {
	return m.findByParticipate(participateID)
}

func (m *MockDonationRepository) FindByParticipate(ctx context.Context, participateID int) (*models.Donation, error) {
	return m.findByParticipate(participateID)
}

func (m *MockDonationRepository) GetAll(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	for _, d := range m.donations {
		donations = append(donations, *d)
	}
	return donations, nil
}

func (m *MockDonationRepository) AddAmount(ctx context.Context, exec repositories.SQLExecutor, id int, amount float64) (*models.Donation, error) {
	donation, ok := m.donations[id]
	if !ok {
		return nil, repositories.ErrDonationNotFound
	}
	donation.Amount += amount
	copied := *donation
	return &copied, nil
}

func (m *MockDonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	if _, ok := m.donations[donation.ID]; !ok {
		return repositories.ErrDonationNotFound
	}
	copied := *donation
	m.donations[donation.ID] = &copied
	return nil
}

func (m *MockDonationRepository) Delete(ctx context.Context, id int) error {
	if _, ok := m.donations[id]; !ok {
		return repositories.ErrDonationNotFound
	}
	delete(m.donations, id)
	return nil
}

func (m *MockDonationRepository) SumAmounts(ctx context.Context) (float64, error) {
	var total float64
	for _, d := range m.donations {
		total += d.Amount
	}
	return total, nil
}

func intPtr(v int) *int { return &v }

func TestDonationService_AggregationMergesAmounts(t *testing.T) {
	repo := NewMockDonationRepository()
	svc := NewDonationService(newStubDB(), repo, true)

	first, created, err := svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        100,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 100.0, first.Amount)

	second, created, err := svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        50,
	})
	require.NoError(t, err)
	// Сумма влилась в существующую строку того же участника.
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 150.0, second.Amount)
	assert.Len(t, repo.donations, 1)
}

func TestDonationService_AggregationOffKeepsRows(t *testing.T) {
	repo := NewMockDonationRepository()
	svc := NewDonationService(newStubDB(), repo, false)

	_, created, err := svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        100,
	})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        50,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, repo.donations, 2)

	total, err := repo.SumAmounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)
}

func TestDonationService_AnonymousDonationNeverMerges(t *testing.T) {
	repo := NewMockDonationRepository()
	svc := NewDonationService(newStubDB(), repo, true)

	// Без participate_id сливать не во что даже при включённой агрегации.
	_, created, err := svc.RecordDonation(context.Background(), RecordDonationInput{Amount: 25})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.RecordDonation(context.Background(), RecordDonationInput{Amount: 25})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, repo.donations, 2)
}

func TestDonationService_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewDonationService(newStubDB(), NewMockDonationRepository(), true)

	_, _, err := svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        0,
	})
	assert.ErrorIs(t, err, ErrDonationInvalidAmount)

	_, _, err = svc.RecordDonation(context.Background(), RecordDonationInput{
		ParticipateID: intPtr(10),
		Amount:        -5,
	})
	assert.ErrorIs(t, err, ErrDonationInvalidAmount)
}

func TestDonationService_GetByParticipateNotFound(t *testing.T) {
	svc := NewDonationService(newStubDB(), NewMockDonationRepository(), true)

	_, err := svc.GetDonationByParticipate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDonationNotFound)
}
