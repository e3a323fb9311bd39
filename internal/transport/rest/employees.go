package rest

import (
	"net/http"

	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/pkg/web"
)

// ListEmployees returns the roster, optionally filtered by role, work day and employment type.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query := service.EmployeeQuery{
		Role:       r.URL.Query().Get("role"),
		Day:        r.URL.Query().Get("day"),
		Employment: r.URL.Query().Get("employment"),
	}

	list, err := h.staff.ListEmployees(r.Context(), query)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch employees")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) FindEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathValue(w, r, h.logger, "id")
	if !ok {
		return
	}

	found, err := h.staff.FindEmployee(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve employee "+id)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Payroll returns the weekly payroll of the roster.
func (h *Handler) Payroll(w http.ResponseWriter, r *http.Request) {
	payroll, err := h.staff.Payroll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to compute payroll")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, payroll)
}
