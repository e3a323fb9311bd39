// Package rest provides HTTP handlers for the shop and the staff roster.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/abgdnv/musicshop/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxPageSize = 100

type Handler struct {
	shop     service.ShopService
	staff    service.RosterService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the shop API with the provided services.
func NewHandler(shopService service.ShopService, staff service.RosterService, logger *slog.Logger) *Handler {
	return &Handler{
		shop:     shopService,
		staff:    staff,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the shop.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{id}", h.FindProduct)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.OpenSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindCustomer)

				r.Get("/cart", h.FindCart)
				r.Delete("/cart", h.ClearCart)
				r.Post("/cart/items", h.AddToCart)
				r.Delete("/cart/items/{productID}", h.RemoveFromCart)

				r.Post("/checkout", h.Checkout)

				r.Get("/purchases", h.FindPurchases)
				r.Delete("/purchases/{productID}", h.ReturnItem)

				r.Get("/sales", h.FindSales)
			})
		})

		r.Get("/sales/{id}", h.FindSale)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Get("/payroll", h.Payroll)
			r.Get("/{id}", h.FindEmployee)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps a service error to an HTTP reply. failure is the
// message used for unexpected errors, whose details are only logged.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	mLogger := h.logger
	switch {
	case errors.Is(err, shoperrors.ErrCustomerNotFound),
		errors.Is(err, shoperrors.ErrProductNotFound),
		errors.Is(err, shoperrors.ErrItemNotFound),
		errors.Is(err, shoperrors.ErrSaleNotFound),
		errors.Is(err, shoperrors.ErrEmployeeNotFound):
		mLogger.WarnContext(r.Context(), "Resource not found", "error", err)
		web.RespondError(w, mLogger, http.StatusNotFound, err.Error())
	case errors.Is(err, shop.ErrCapacityExceeded),
		errors.Is(err, shop.ErrPurchaseLimitExceeded),
		errors.Is(err, shop.ErrEmptyCart):
		mLogger.WarnContext(r.Context(), "Request conflicts with the current state", "error", err)
		web.RespondError(w, mLogger, http.StatusConflict, err.Error())
	case errors.Is(err, shop.ErrInvalidQuantity),
		errors.Is(err, shoperrors.ErrInvalidFilter):
		mLogger.WarnContext(r.Context(), "Invalid request", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	default:
		mLogger.ErrorContext(r.Context(), failure, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, failure)
	}
}
