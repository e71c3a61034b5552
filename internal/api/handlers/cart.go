package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawpair-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	stores    *CartStores
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewCartHandler(stores *CartStores, catalog service.CatalogService) *CartHandler {
	return &CartHandler{stores: stores, catalog: catalog, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the session cart
//	@Description	Returns the cart lines and totals of the session. Authenticated sessions see the account cart.
//	@Tags			Cart
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	models.CartView			"Current cart"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		store, err := h.stores.Open(r.Context())
		if err != nil {
			logger.Error("Failed to open cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, store.View())
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of the product in the given owner and pet sizes. The same product in the same sizes is one line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			item			body		models.AddLineRequest	true	"Product and sizes"
//	@Success		200				{object}	models.CartView			"Updated cart, possibly with sync warnings"
//	@Failure		400				{object}	response.ErrorResponse	"Invalid input"
//	@Failure		404				{object}	response.ErrorResponse	"Product not available"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddLineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		logger = logger.With(slog.String("productId", req.ProductID.String()))

		product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			logger.Warn("Product not available for cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		h.mutate(w, r, func(store *cart.Store) error {
			return store.AddLine(r.Context(), product.CartLine(), req.OwnerSize, req.PetSize)
		})
	}
}

// UpdateItem godoc
//	@Summary		Set the quantity of a cart line
//	@Description	Replaces the quantity of the line with these sizes. A quantity below 1 removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string						false	"Session id"
//	@Param			item			body		models.SetQuantityRequest	true	"Line and quantity"
//	@Success		200				{object}	models.CartView				"Updated cart, possibly with sync warnings"
//	@Failure		400				{object}	response.ErrorResponse		"Invalid input"
//	@Failure		404				{object}	response.ErrorResponse		"Cart line not found"
//	@Failure		500				{object}	response.ErrorResponse		"Internal server error"
//	@Router			/cart/items [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SetQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		h.mutate(w, r, func(store *cart.Store) error {
			return store.SetQuantity(r.Context(), req.ProductID, req.OwnerSize, req.PetSize, req.Quantity)
		})
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Description	Removes the line with these sizes. Removing an absent line is not an error.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string						false	"Session id"
//	@Param			item			body		models.RemoveLineRequest	true	"Line to remove"
//	@Success		200				{object}	models.CartView				"Updated cart, possibly with sync warnings"
//	@Failure		400				{object}	response.ErrorResponse		"Invalid input"
//	@Failure		500				{object}	response.ErrorResponse		"Internal server error"
//	@Router			/cart/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RemoveLineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid remove from cart input")
			return
		}

		h.mutate(w, r, func(store *cart.Store) error {
			return store.RemoveLine(r.Context(), req.ProductID, req.OwnerSize, req.PetSize)
		})
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	models.CartView			"Empty cart, possibly with sync warnings"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mutate(w, r, func(store *cart.Store) error {
			return store.Clear(r.Context())
		})
	}
}

// mutate applies op to the session cart and answers with the resulting view.
// A failed sync still answers 200; the in-memory change stands.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, op func(*cart.Store) error) {

	logger := middleware.LoggerFromContext(r.Context())

	store, err := h.stores.Open(r.Context())
	if err != nil {
		logger.Error("Failed to open cart", slog.String("error", err.Error()))
		response.Error(w, err)
		return
	}

	if err := unlessSyncWarning(op(store)); err != nil {
		logger.Warn("Cart update failed", slog.String("error", err.Error()))
		response.Error(w, err)
		return
	}

	// the view carries every sync warning still open on the store
	view := store.View()

	logger.Info("Cart updated", slog.Int("count", view.Totals.Count), slog.Int("warnings", len(view.Warnings)))
	response.Success(w, http.StatusOK, view)
}
