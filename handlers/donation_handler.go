package handlers

import (
	"fmt"
	"net/http"

	"github.com/szl-run/szl-backend/services"
)

type DonationHandler struct {
	donationService services.DonationService
}

func NewDonationHandler(ds services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: ds,
	}
}

// RecordDonation отвечает 201 на новую строку и 200, когда сумма влилась в
// существующий донат участника (политика агрегации).
func (h *DonationHandler) RecordDonation(w http.ResponseWriter, r *http.Request) {
	var input services.RecordDonationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	donation, created, err := h.donationService.RecordDonation(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	var headers http.Header
	if created {
		status = http.StatusCreated
		headers = http.Header{}
		headers.Set("Location", fmt.Sprintf("/api/donations/%d", donation.ID))
	}

	response := jsonResponse{"donation": donation}
	if err := writeJSON(w, status, response, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DonationHandler) GetDonationByID(w http.ResponseWriter, r *http.Request) {
	donationID, err := getIDFromURL(r, "donationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	donation, err := h.donationService.GetDonationByID(r.Context(), donationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"donation": donation}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DonationHandler) GetDonationByParticipate(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	donation, err := h.donationService.GetDonationByParticipate(r.Context(), participateID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"donation": donation}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DonationHandler) GetAllDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donationService.GetAllDonations(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"donations": donations}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DonationHandler) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	donationID, err := getIDFromURL(r, "donationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordDonationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.donationService.UpdateDonation(r.Context(), donationID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DonationHandler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	donationID, err := getIDFromURL(r, "donationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.donationService.DeleteDonation(r.Context(), donationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
