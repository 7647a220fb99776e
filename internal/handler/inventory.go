package handler

import (
	"net/http"

	"retail-backoffice-api/internal/service"
	"retail-backoffice-api/pkg/apierror"
	"retail-backoffice-api/pkg/response"
)

// InventoryHandler handles inventory record HTTP requests.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /api/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.inventory.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, records)
}

// Create handles POST /api/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.InventoryInput
	if err := readJSON(w, r, &in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	id, err := h.inventory.Create(r.Context(), in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, id)
}

// Update handles PUT /api/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var in service.InventoryInput
	if err := readJSON(w, r, &in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := h.inventory.Update(r.Context(), id, in); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w)
}

// Delete handles DELETE /api/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.inventory.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w)
}
