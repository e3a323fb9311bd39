package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/pkg/logger"
	"github.com/abgdnv/musicshop/pkg/web"
	"github.com/google/uuid"
)

// OpenSession creates a customer with an empty cart.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var createDto service.CustomerCreateDto
	if !web.DecodeJSON(w, r, h.logger, &createDto) {
		return
	}
	if err := h.validate.Struct(createDto); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return
	}

	customer, err := h.shop.OpenSession(r.Context(), createDto)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to open session")
		return
	}
	h.logger.InfoContext(r.Context(), "Session opened successfully", slog.String("ID", customer.ID.String()))
	web.RespondJSON(w, h.logger, http.StatusCreated, customer)
}

// FindCustomer returns the customer with cart and purchase history.
func (h *Handler) FindCustomer(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}

	customer, err := h.shop.FindCustomer(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve customer")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, customer)
}

func (h *Handler) FindCart(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.shop.FindCart(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve cart")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, cart)
}

// AddToCart adds one or more copies of a catalog item to the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}
	var item service.AddItemDto
	if !web.DecodeJSON(w, r, h.logger, &item) {
		return
	}
	if err := h.validate.Struct(item); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to add item to cart", "product_id", item.ProductID, "quantity", item.Quantity)
	cart, err := h.shop.AddToCart(r.Context(), id, item)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to add item to cart")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, cart)
}

// RemoveFromCart removes one copy of a product from the cart.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}
	productID, ok := web.PathValue(w, r, h.logger, "productID")
	if !ok {
		return
	}

	cart, err := h.shop.RemoveFromCart(r.Context(), id, productID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to remove item from cart")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}

	cart, err := h.shop.ClearCart(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to clear cart")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, cart)
}

// Checkout purchases the whole cart and returns the recorded sale.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}

	sale, err := h.shop.Checkout(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to check out")
		return
	}
	h.logger.InfoContext(r.Context(), "Checkout completed", slog.String("sale_id", sale.ID.String()))
	web.RespondJSON(w, h.logger, http.StatusCreated, sale)
}

func (h *Handler) FindPurchases(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}

	list, err := h.shop.FindPurchases(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch purchases")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// ReturnItem returns one purchased copy of a product.
func (h *Handler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}
	productID, ok := web.PathValue(w, r, h.logger, "productID")
	if !ok {
		return
	}

	customer, err := h.shop.ReturnItem(r.Context(), id, productID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to return item")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, customer)
}

// FindSales returns a page of the customer's sales.
func (h *Handler) FindSales(w http.ResponseWriter, r *http.Request) {
	id, r, ok := h.customerRequest(w, r)
	if !ok {
		return
	}
	limit, ok := web.ParseQueryBetween(r, w, h.logger, "limit", 1, maxPageSize, 20)
	if !ok {
		return
	}
	offset, ok := web.ParseQueryGte(r, w, h.logger, "offset", 0, 0)
	if !ok {
		return
	}

	list, err := h.shop.FindSales(r.Context(), id, offset, limit)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch sales")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindSale retrieves a recorded sale by its ID.
func (h *Handler) FindSale(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}

	sale, err := h.shop.FindSale(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve sale "+id.String())
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, sale)
}

// customerRequest parses the customer ID path parameter and tags the request
// context with it so every log line of the request carries the customer.
func (h *Handler) customerRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, *http.Request, bool) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return uuid.Nil, r, false
	}
	return id, r.WithContext(logger.WithCustomerID(r.Context(), id.String())), true
}
