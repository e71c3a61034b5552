package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawpair-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	stores          *CartStores
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(stores *CartStores, checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{stores: stores, checkoutService: checkoutService, validator: validator.New()}
}

// Quote godoc
//	@Summary		Price the cart
//	@Description	Prices the session cart with an optional coupon and gift wrap, exactly as checkout would. A rejected coupon is reported in the quote. Coupon lookups are rate limited.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			quote			body		models.QuoteRequest		true	"Coupon code and gift wrap"
//	@Success		200				{object}	models.Quote			"Price preview"
//	@Failure		400				{object}	response.ErrorResponse	"Invalid input"
//	@Failure		429				{object}	response.ErrorResponse	"Too many coupon attempts"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/quote [post]
//	@Router			/coupons/validate [post]
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.QuoteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid quote input")
			return
		}

		store, err := h.stores.Open(r.Context())
		if err != nil {
			logger.Error("Failed to open cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		session := store.Session()

		// rate limit per account, or per session for guests
		subject := "session:" + session.ID
		if session.Authenticated() {
			subject = "user:" + session.UserID.String()
		}

		quote, err := h.checkoutService.Quote(r.Context(), subject, session.UserID, store.Lines(), &req)
		if err != nil {
			logger.Warn("Failed to quote cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

// Checkout godoc
//	@Summary		Place an order
//	@Description	Checks out the session cart, or a single buy-now item, with cash on delivery or an online payment. The result names the last state reached; a failed checkout still returns it next to the error.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			checkout		body		models.CheckoutRequest	true	"Shipping, payment and coupon details"
//	@Success		201				{object}	models.CheckoutResult	"Order placed"
//	@Failure		400				{object}	response.ErrorResponse	"Invalid input or empty cart"
//	@Failure		401				{object}	response.ErrorResponse	"Authentication required"
//	@Failure		402				{object}	response.ErrorResponse	"Payment failed"
//	@Failure		409				{object}	response.ErrorResponse	"Payment cancelled"
//	@Failure		422				{object}	response.ErrorResponse	"Coupon rejected or cash on delivery limit exceeded"
//	@Failure		502				{object}	response.ErrorResponse	"Payment could not be verified"
//	@Failure		503				{object}	response.ErrorResponse	"Order could not be saved"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		store, err := h.stores.Open(r.Context())
		if err != nil {
			logger.Error("Failed to open cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), claims, store, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.ErrorWithData(w, err, result)
			return
		}

		logger.Info("Checkout completed", slog.String("orderId", result.OrderID.String()))
		response.Success(w, http.StatusCreated, result)
	}
}
