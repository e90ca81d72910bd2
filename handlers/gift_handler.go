package handlers

import (
	"fmt"
	"net/http"

	"github.com/szl-run/szl-backend/services"
)

type GiftHandler struct {
	giftService services.GiftService
}

func NewGiftHandler(gs services.GiftService) *GiftHandler {
	return &GiftHandler{
		giftService: gs,
	}
}

func (h *GiftHandler) CreateGift(w http.ResponseWriter, r *http.Request) {
	var input services.GiftInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gift, err := h.giftService.CreateGift(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/api/gifts/%d", gift.ID))

	response := jsonResponse{"gift": gift}
	if err := writeJSON(w, http.StatusCreated, response, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GiftHandler) GetGiftByID(w http.ResponseWriter, r *http.Request) {
	giftID, err := getIDFromURL(r, "giftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gift, err := h.giftService.GetGiftByID(r.Context(), giftID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"gift": gift}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GiftHandler) GetAllGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.giftService.GetAllGifts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"gifts": gifts}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GiftHandler) UpdateGift(w http.ResponseWriter, r *http.Request) {
	giftID, err := getIDFromURL(r, "giftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GiftInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.giftService.UpdateGift(r.Context(), giftID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GiftHandler) DeleteGift(w http.ResponseWriter, r *http.Request) {
	giftID, err := getIDFromURL(r, "giftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.giftService.DeleteGift(r.Context(), giftID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
