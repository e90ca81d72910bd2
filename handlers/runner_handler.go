package handlers

import (
	"fmt"
	"net/http"

	"github.com/szl-run/szl-backend/services"
)

type RunnerHandler struct {
	runnerService services.RunnerService
}

func NewRunnerHandler(rs services.RunnerService) *RunnerHandler {
	return &RunnerHandler{
		runnerService: rs,
	}
}

func (h *RunnerHandler) CreateRunner(w http.ResponseWriter, r *http.Request) {
	var input services.RunnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	runner, err := h.runnerService.CreateRunner(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/api/runners/%d", runner.ID))

	response := jsonResponse{"runner": runner}
	if err := writeJSON(w, http.StatusCreated, response, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunnerHandler) GetRunnerByID(w http.ResponseWriter, r *http.Request) {
	runnerID, err := getIDFromURL(r, "runnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	runner, err := h.runnerService.GetRunnerByID(r.Context(), runnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"runner": runner}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunnerHandler) GetAllRunners(w http.ResponseWriter, r *http.Request) {
	runners, err := h.runnerService.GetAllRunners(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"runners": runners}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunnerHandler) UpdateRunner(w http.ResponseWriter, r *http.Request) {
	runnerID, err := getIDFromURL(r, "runnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RunnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.runnerService.UpdateRunner(r.Context(), runnerID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RunnerHandler) DeleteRunner(w http.ResponseWriter, r *http.Request) {
	runnerID, err := getIDFromURL(r, "runnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.runnerService.DeleteRunner(r.Context(), runnerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
