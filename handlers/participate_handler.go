package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/szl-run/szl-backend/services"
)

type ParticipateHandler struct {
	participateService services.ParticipateService
}

func NewParticipateHandler(ps services.ParticipateService) *ParticipateHandler {
	return &ParticipateHandler{
		participateService: ps,
	}
}

func (h *ParticipateHandler) CreateParticipate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateParticipateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participate, err := h.participateService.CreateParticipate(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/api/participates/%d", participate.ID))

	response := jsonResponse{"participate": participate}
	if err := writeJSON(w, http.StatusCreated, response, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ParticipateHandler) GetParticipateByID(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participate, err := h.participateService.GetParticipateByID(r.Context(), participateID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"participate": participate}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetParticipateByTag находит участие по метке. ID метки остаётся строкой
// до сервиса, там нечисловой ввод отклоняется валидацией.
func (h *ParticipateHandler) GetParticipateByTag(w http.ResponseWriter, r *http.Request) {
	rawTagID := chi.URLParam(r, "tagID")
	if rawTagID == "" {
		badRequestResponse(w, r, errors.New("missing tagID in URL path"))
		return
	}

	participate, err := h.participateService.GetParticipateByTag(r.Context(), rawTagID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"participate": participate}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ParticipateHandler) GetAllParticipates(w http.ResponseWriter, r *http.Request) {
	participates, err := h.participateService.GetAllParticipates(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"participates": participates}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ParticipateHandler) UpdateParticipate(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateParticipateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.participateService.UpdateParticipate(r.Context(), participateID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ParticipateHandler) DeleteParticipate(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participateService.DeleteParticipate(r.Context(), participateID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
