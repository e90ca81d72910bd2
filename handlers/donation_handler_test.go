package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/services"
)

// stubDonationService повторяет агрегационную семантику боевого сервиса
// поверх карты в памяти.
type stubDonationService struct {
	donations map[int]*models.Donation
	nextID    int
	aggregate bool
}

func newStubDonationService(aggregate bool) *stubDonationService {
	return &stubDonationService{
		donations: make(map[int]*models.Donation),
		nextID:    1,
		aggregate: aggregate,
	}
}

func (s *stubDonationService) RecordDonation(ctx context.Context, input services.RecordDonationInput) (*models.Donation, bool, error) {
	if input.Amount <= 0 {
		return nil, false, services.ErrDonationInvalidAmount
	}
	if s.aggregate && input.ParticipateID != nil {
		for _, d := range s.donations {
			if d.ParticipateID != nil && *d.ParticipateID == *input.ParticipateID {
				d.Amount += input.Amount
				return d, false, nil
			}
		}
	}
	donation := &models.Donation{ID: s.nextID, ParticipateID: input.ParticipateID, Amount: input.Amount}
	s.nextID++
	s.donations[donation.ID] = donation
	return donation, true, nil
}

func (s *stubDonationService) GetDonationByID(ctx context.Context, id int) (*models.Donation, error) {
	donation, ok := s.donations[id]
	if !ok {
		return nil, services.ErrDonationNotFound
	}
	return donation, nil
}

func (s *stubDonationService) GetDonationByParticipate(ctx context.Context, participateID int) (*models.Donation, error) {
	for _, d := range s.donations {
		if d.ParticipateID != nil && *d.ParticipateID == participateID {
			return d, nil
		}
	}
	return nil, services.ErrDonationNotFound
}

func (s *stubDonationService) GetAllDonations(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	for _, d := range s.donations {
		donations = append(donations, *d)
	}
	return donations, nil
}

func (s *stubDonationService) UpdateDonation(ctx context.Context, id int, input services.RecordDonationInput) (*models.Donation, error) {
	donation, ok := s.donations[id]
	if !ok {
		return nil, services.ErrDonationNotFound
	}
	donation.Amount = input.Amount
	donation.ParticipateID = input.ParticipateID
	return donation, nil
}

func (s *stubDonationService) DeleteDonation(ctx context.Context, id int) error {
	if _, ok := s.donations[id]; !ok {
		return services.ErrDonationNotFound
	}
	delete(s.donations, id)
	return nil
}

func newDonationRouter(svc services.DonationService) *chi.Mux {
	h := NewDonationHandler(svc)
	router := chi.NewRouter()
	router.Post("/api/donations", h.RecordDonation)
	router.Get("/api/donations/{donationID}", h.GetDonationByID)
	return router
}

func TestDonationHandler_CreatedThenMerged(t *testing.T) {
	router := newDonationRouter(newStubDonationService(true))

	body := `{"participate_id":10,"amount":100}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/donations/1", rec.Header().Get("Location"))

	// Повторный донат того же участника сливается: 200, без Location.
	body = `{"participate_id":10,"amount":50}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), `"amount": 150`)
}

func TestDonationHandler_AggregationOffAlwaysCreates(t *testing.T) {
	router := newDonationRouter(newStubDonationService(false))

	body := `{"participate_id":10,"amount":100}`
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(body)))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestDonationHandler_RejectsNonPositiveAmount(t *testing.T) {
	router := newDonationRouter(newStubDonationService(true))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(`{"amount":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDonationHandler_GetMissingDonation(t *testing.T) {
	router := newDonationRouter(newStubDonationService(true))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/donations/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
