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

type WishlistHandler struct {
	stores    *CartStores
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewWishlistHandler(stores *CartStores, catalog service.CatalogService) *WishlistHandler {
	return &WishlistHandler{stores: stores, catalog: catalog, validator: validator.New()}
}

// GetWishlist godoc
//	@Summary		Get the session wishlist
//	@Tags			Wishlist
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	models.WishlistView		"Current wishlist"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/wishlist [get]
func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		store, err := h.stores.Open(r.Context())
		if err != nil {
			logger.Error("Failed to open wishlist", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.WishlistView{Items: store.Wishlist(), Warnings: store.Warnings()})
	}
}

// AddItem godoc
//	@Summary		Add a product to the wishlist
//	@Description	A product is listed at most once.
//	@Tags			Wishlist
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			item			body		models.WishlistRequest	true	"Product"
//	@Success		200				{object}	models.WishlistView		"Updated wishlist, possibly with sync warnings"
//	@Failure		400				{object}	response.ErrorResponse	"Invalid input"
//	@Failure		404				{object}	response.ErrorResponse	"Product not available"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/wishlist [post]
func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.WishlistRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid wishlist input")
			return
		}

		product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			logger.Warn("Product not available for wishlist", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		h.mutate(w, r, func(store *cart.Store) error {
			return store.AddWishlist(r.Context(), product.WishlistLine())
		})
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the wishlist
//	@Tags			Wishlist
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			productId		path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200				{object}	models.WishlistView		"Updated wishlist, possibly with sync warnings"
//	@Failure		400				{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/wishlist/{productId} [delete]
func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		h.mutate(w, r, func(store *cart.Store) error {
			return store.RemoveWishlist(r.Context(), productID)
		})
	}
}

func (h *WishlistHandler) mutate(w http.ResponseWriter, r *http.Request, op func(*cart.Store) error) {

	logger := middleware.LoggerFromContext(r.Context())

	store, err := h.stores.Open(r.Context())
	if err != nil {
		logger.Error("Failed to open wishlist", slog.String("error", err.Error()))
		response.Error(w, err)
		return
	}

	if err := unlessSyncWarning(op(store)); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, models.WishlistView{Items: store.Wishlist(), Warnings: store.Warnings()})
}
