package handler

import (
	"net/http"

	"retail-backoffice-api/internal/service"
	"retail-backoffice-api/pkg/apierror"
	"retail-backoffice-api/pkg/response"
)

// ItemHandler handles catalog item HTTP requests.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// List handles GET /api/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, items)
}

// Create handles POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if err := readJSON(w, r, &in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	id, err := h.items.Create(r.Context(), in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, id)
}

// Update handles PUT /api/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var in service.ItemInput
	if err := readJSON(w, r, &in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.items.Update(r.Context(), id, in); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w)
}

// Delete handles DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w)
}
