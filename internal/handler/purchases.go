package handler

import (
	"net/http"

	"retail-backoffice-api/internal/service"
	"retail-backoffice-api/pkg/apierror"
	"retail-backoffice-api/pkg/response"
)

// PurchaseHandler handles purchase ledger HTTP requests.
type PurchaseHandler struct {
	purchases *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// List handles GET /api/purchases
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchases.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, purchases)
}

// Complete handles POST /api/purchases
func (h *PurchaseHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var in service.PurchaseInput
	if err := readJSON(w, r, &in); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	id, err := h.purchases.Complete(r.Context(), in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, id)
}

// Immutable handles PUT and DELETE on /api/purchases/{id}.
// The ledger is append-only once a purchase is completed.
func (h *PurchaseHandler) Immutable(w http.ResponseWriter, r *http.Request) {
	response.Error(w, apierror.MethodNotAllowed("completed purchases are immutable"))
}
