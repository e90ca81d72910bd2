package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/szl-run/szl-backend/services"
)

// TagHandler работает со строковыми ID: метки приходят со считывателей как
// десятичные строки и разбор отложен в сервис, чтобы нечисловой ввод давал
// 400, а не 404.
type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(ts services.TagService) *TagHandler {
	return &TagHandler{
		tagService: ts,
	}
}

func getTagIDFromURL(r *http.Request) (string, error) {
	rawID := chi.URLParam(r, "tagID")
	if rawID == "" {
		return "", errors.New("missing tagID in URL path")
	}
	return rawID, nil
}

func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTagInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/api/tags/%s", tag.ID))

	response := jsonResponse{"tag": tag}
	if err := writeJSON(w, http.StatusCreated, response, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) GetTagByID(w http.ResponseWriter, r *http.Request) {
	rawID, err := getTagIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tag, err := h.tagService.GetTagByID(r.Context(), rawID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"tag": tag}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) GetAllTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.GetAllTags(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"tags": tags}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) SetTagStatus(w http.ResponseWriter, r *http.Request) {
	rawID, err := getTagIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tagService.SetTagStatus(r.Context(), rawID, input.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	rawID, err := getTagIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), rawID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
