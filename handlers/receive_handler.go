package handlers

import (
	"net/http"

	"github.com/szl-run/szl-backend/services"
)

// ReceiveHandler управляет выдачей подарков участникам. Запись адресуется
// парой (participate_id, gift_id), отдельного суррогатного ключа нет.
type ReceiveHandler struct {
	receiveService services.ReceiveService
}

func NewReceiveHandler(rs services.ReceiveService) *ReceiveHandler {
	return &ReceiveHandler{
		receiveService: rs,
	}
}

func (h *ReceiveHandler) CreateReceive(w http.ResponseWriter, r *http.Request) {
	var input services.ReceiveInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	receive, err := h.receiveService.CreateReceive(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"receive": receive}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReceiveHandler) GetAllReceives(w http.ResponseWriter, r *http.Request) {
	receives, err := h.receiveService.GetAllReceives(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"receives": receives}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReceiveHandler) GetReceivesByParticipate(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	receives, err := h.receiveService.GetReceivesByParticipate(r.Context(), participateID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"receives": receives}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReceiveHandler) DeleteReceive(w http.ResponseWriter, r *http.Request) {
	participateID, err := getIDFromURL(r, "participateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	giftID, err := getIDFromURL(r, "giftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.receiveService.DeleteReceive(r.Context(), participateID, giftID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
