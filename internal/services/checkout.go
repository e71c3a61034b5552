package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CheckoutCart is the part of the cart store a checkout reads and clears.
type CheckoutCart interface {
	Lines() []models.CartLine
	Clear(ctx context.Context) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, customer *models.Claims, cart CheckoutCart, req *models.CheckoutRequest) (*models.CheckoutResult, error)
	Quote(ctx context.Context, subject string, userID uuid.UUID, lines []models.CartLine, req *models.QuoteRequest) (*models.Quote, error)
}

type CheckoutDeps struct {
	Catalog  CatalogService
	Coupons  CouponService
	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
	Gateway  PaymentGateway
	Notifier NotificationService
	Engine   *pricing.Engine
	Pricing  *config.Pricing
}

type checkoutService struct {
	CheckoutDeps
	tracer trace.Tracer
}

func NewCheckoutService(deps CheckoutDeps) CheckoutService {
	return &checkoutService{
		CheckoutDeps: deps,
		tracer:       otel.Tracer("pawpair-storefront/checkout"),
	}
}

// checkoutRun tracks one pass through the checkout states.
type checkoutRun struct {
	result *models.CheckoutResult
	method models.PaymentMethod
	span   trace.Span
	logger *slog.Logger
}

func (r *checkoutRun) enter(state models.CheckoutState) {
	r.result.State = state
	r.span.AddEvent(string(state))
	r.logger.Debug("Checkout state changed", slog.String("state", string(state)))
}

func (r *checkoutRun) fail(err error) (*models.CheckoutResult, error) {

	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.InternalError("Checkout failed").WithError(err)
	}

	r.logger.Warn("Checkout failed",
		slog.String("state", string(r.result.State)),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("cause", appErr.Err))

	r.result.State = models.CheckoutFailed
	r.result.FailureCode = appErr.Code
	r.result.Retryable = errors.Retryable(appErr)

	r.span.RecordError(appErr)
	r.span.SetStatus(codes.Error, appErr.Code)

	metrics.RecordCheckoutOutcome(string(r.method), string(models.CheckoutFailed), appErr.Code)

	return r.result, appErr
}

func (r *checkoutRun) warn(message string) {
	r.result.Warnings = append(r.result.Warnings, message)
}

// Checkout runs Validating, PricingComputed, optionally AwaitingPayment,
// OrderCreated, PaymentRecorded and Cleared in that order. Any failure ends
// in Failed with the cart untouched; the result is returned with the error
// so callers can show the order or transaction id to quote to support.
func (s *checkoutService) Checkout(ctx context.Context, customer *models.Claims, cart CheckoutCart, req *models.CheckoutRequest) (*models.CheckoutResult, error) {

	source := models.CheckoutSourceCart
	if req.BuyNow != nil {
		source = models.CheckoutSourceBuyNow
	}

	ctx, span := s.tracer.Start(ctx, "checkout", trace.WithAttributes(
		attribute.String("checkout.source", string(source)),
		attribute.String("checkout.payment_method", string(req.PaymentMethod)),
	))
	defer span.End()

	run := &checkoutRun{
		result: &models.CheckoutResult{State: models.CheckoutIdle, Source: source},
		method: req.PaymentMethod,
		span:   span,
		logger: middleware.LoggerFromContext(ctx).With(slog.String("checkoutSource", string(source))),
	}

	run.enter(models.CheckoutValidating)

	lines, err := s.checkoutLines(ctx, cart, req.BuyNow)
	if err != nil {
		return run.fail(err)
	}

	if err := validateLines(lines); err != nil {
		return run.fail(err)
	}

	if req.PaymentMethod != models.PaymentMethodCOD && req.PaymentMethod != models.PaymentMethodOnline {
		return run.fail(errors.ValidationError("Unsupported payment method"))
	}

	subtotal := pricing.Subtotal(lines)

	var coupon *models.CouponResult

	if code := NormalizeCouponCode(req.CouponCode); code != "" {
		items, err := s.couponItems(ctx, lines)
		if err != nil {
			return run.fail(err)
		}

		coupon, err = s.Coupons.Validate(ctx, models.CouponCheck{
			Code:        code,
			OrderAmount: subtotal,
			UserID:      customer.UserID,
			Items:       items,
		})
		if err != nil {
			return run.fail(err)
		}

		run.result.CouponCode = coupon.Coupon.Code
	}

	// priced again here, never taken from an earlier quote
	var discount, fees float64
	if coupon != nil {
		discount = coupon.Discount
	}
	if req.GiftWrap {
		fees = s.Pricing.GiftWrapFee
	}

	totals := s.Engine.Compute(subtotal, discount, fees)
	run.result.Totals = totals
	span.SetAttributes(attribute.Float64("checkout.total", totals.Total))

	run.enter(models.CheckoutPricingComputed)

	var transactionID string

	switch req.PaymentMethod {
	case models.PaymentMethodCOD:
		if totals.Total >= s.Pricing.CODCeiling {
			return run.fail(errors.CODLimitExceededError(
				fmt.Sprintf("Cash on delivery is only available for orders below %.2f", s.Pricing.CODCeiling)))
		}

	case models.PaymentMethodOnline:
		run.enter(models.CheckoutAwaitingPayment)

		transactionID, err = s.pay(ctx, run, customer, req, totals.Total)
		if err != nil {
			return run.fail(err)
		}
	}

	order := s.buildOrder(customer.UserID, req, lines, totals, run.result.CouponCode)

	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		if transactionID != "" {
			return run.fail(errors.ReconciliationRequiredError(
				"Your payment went through but the order could not be saved. Please contact support with your transaction id").
				WithDetail("transaction_id=" + transactionID).WithError(err))
		}

		return run.fail(errors.OrderPersistenceFailedError("Your order could not be placed. Please try again").WithError(err))
	}

	run.result.OrderID = &order.ID
	span.SetAttributes(attribute.String("checkout.order_id", order.ID.String()))
	run.enter(models.CheckoutOrderCreated)

	if coupon != nil {
		err := s.Coupons.Redeem(ctx, &models.CouponRedemption{
			CouponID:        coupon.Coupon.ID,
			UserID:          customer.UserID,
			OrderID:         order.ID,
			DiscountApplied: totals.Discount,
		})
		if err != nil {
			run.logger.Error("Failed to record coupon redemption",
				slog.String("orderId", order.ID.String()),
				slog.String("coupon", coupon.Coupon.Code),
				slog.String("error", err.Error()))
			run.warn("Coupon redemption could not be recorded")
		}
	}

	payment := &models.Payment{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   customer.UserID,
		Amount:   totals.Total,
		Currency: s.Pricing.Currency,
		Method:   req.PaymentMethod,
		Status:   order.PaymentStatus,
	}
	if transactionID != "" {
		payment.TransactionID = &transactionID
	}

	if err := s.Payments.CreatePayment(ctx, payment); err != nil {
		detail := "order_id=" + order.ID.String()
		if transactionID != "" {
			detail += " transaction_id=" + transactionID
		}

		return run.fail(errors.ReconciliationRequiredError(
			"Your order was placed but its payment could not be recorded. Please contact support with your order id").
			WithDetail(detail).WithError(err))
	}

	run.result.PaymentID = &payment.ID
	run.enter(models.CheckoutPaymentRecorded)

	// buy-now never touches the cart
	if source == models.CheckoutSourceCart {
		if err := cart.Clear(ctx); err != nil {
			run.logger.Warn("Cart not cleared after checkout", slog.String("error", err.Error()))
			run.warn("Your cart could not be cleared")
		}
	}

	run.enter(models.CheckoutCleared)

	s.sendConfirmation(ctx, run, customer.Email, order)

	run.logger.Info("Checkout completed",
		slog.String("orderId", order.ID.String()),
		slog.Float64("total", totals.Total),
		slog.String("paymentMethod", string(req.PaymentMethod)))

	metrics.RecordCheckoutOutcome(string(req.PaymentMethod), string(models.CheckoutCleared), "")

	return run.result, nil
}

// pay runs the online payment and returns the verified transaction id.
func (s *checkoutService) pay(ctx context.Context, run *checkoutRun, customer *models.Claims, req *models.CheckoutRequest, total float64) (string, error) {

	ctx, span := s.tracer.Start(ctx, "checkout.payment")
	defer span.End()

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	result, err := s.Gateway.OpenCheckout(ctx, total, s.Pricing.Currency, models.PaymentCustomer{
		UserID:             customer.UserID,
		Email:              customer.Email,
		PaymentMethodToken: req.PaymentMethodToken,
		Description:        "PawPair order",
		IdempotencyKey:     idempotencyKey,
	})
	if err != nil {
		return "", errors.PaymentFailedError("Payment could not be completed").WithError(err)
	}

	run.result.TransactionID = result.TransactionID

	switch result.Status {
	case models.GatewayCancelled:
		return "", errors.PaymentCancelledError("Payment was cancelled")
	case models.GatewayFailure:
		return "", errors.PaymentFailedError("Payment failed").WithDetail(result.Reason)
	case models.GatewaySuccess:
	default:
		return "", errors.PaymentFailedError("Payment failed").WithDetail("unknown gateway status " + string(result.Status))
	}

	verified, err := s.Gateway.Verify(ctx, result.TransactionID, total, s.Pricing.Currency)
	if err != nil || !verified {
		appErr := errors.VerificationFailedError(
			"Your payment could not be verified. Please contact support with your transaction id").
			WithDetail("transaction_id=" + result.TransactionID)
		if err != nil {
			appErr = appErr.WithError(err)
		}

		return "", appErr
	}

	return result.TransactionID, nil
}

// Quote prices the given lines the way Checkout would. A rejected coupon is
// reported on the quote instead of failing it.
func (s *checkoutService) Quote(ctx context.Context, subject string, userID uuid.UUID, lines []models.CartLine, req *models.QuoteRequest) (*models.Quote, error) {

	subtotal := pricing.Subtotal(lines)

	var fees float64
	if req.GiftWrap {
		fees = s.Pricing.GiftWrapFee
	}

	quote := &models.Quote{}

	var discount float64

	if code := NormalizeCouponCode(req.CouponCode); code != "" {
		quote.CouponCode = code

		items, err := s.couponItems(ctx, lines)
		if err != nil {
			return nil, err
		}

		result, err := s.Coupons.Preview(ctx, subject, models.CouponCheck{
			Code:        code,
			OrderAmount: subtotal,
			UserID:      userID,
			Items:       items,
		})

		switch appErr, _ := errors.IsAppError(err); {
		case err == nil:
			discount = result.Discount
			quote.CouponApplied = true
		case appErr != nil && appErr.Code == errors.ErrCodeCouponRejected:
			quote.CouponRejection = appErr.Detail
			quote.CouponMessage = appErr.Message
		default:
			return nil, err
		}
	}

	quote.Totals = s.Engine.Compute(subtotal, discount, fees)

	return quote, nil
}

func (s *checkoutService) checkoutLines(ctx context.Context, cart CheckoutCart, buyNow *models.BuyNowRequest) ([]models.CartLine, error) {

	if buyNow == nil {
		if cart == nil {
			return nil, nil
		}

		return cart.Lines(), nil
	}

	product, err := s.Catalog.GetProduct(ctx, buyNow.ProductID)
	if err != nil {
		return nil, err
	}

	line := product.CartLine()
	line.OwnerSize = models.NormalizeSize(buyNow.OwnerSize)
	line.PetSize = models.NormalizeSize(buyNow.PetSize)
	line.Quantity = buyNow.Quantity

	return []models.CartLine{line}, nil
}

func validateLines(lines []models.CartLine) error {

	if len(lines) == 0 {
		return errors.ValidationError("Cart is empty")
	}

	for _, line := range lines {
		if line.OwnerSize == "" && line.PetSize == "" {
			return errors.ValidationError("Select a size for " + line.Name)
		}

		if line.Quantity < 1 {
			return errors.ValidationError("Quantity must be at least 1 for " + line.Name)
		}
	}

	return nil
}

// couponItems resolves the categories needed for scoped coupons.
func (s *checkoutService) couponItems(ctx context.Context, lines []models.CartLine) ([]models.CouponItem, error) {

	items := make([]models.CouponItem, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))

	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}

		product, err := s.Catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.CouponItem{ProductID: product.ID, CategoryID: product.CategoryID})
	}

	return items, nil
}

func (s *checkoutService) buildOrder(userID uuid.UUID, req *models.CheckoutRequest, lines []models.CartLine, totals models.OrderTotal, couponCode string) *models.Order {

	shipping := utils.SanitizeAddress(req.ShippingAddress)

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Totals:          totals,
		CouponCode:      couponCode,
		GiftWrap:        req.GiftWrap,
		ShippingAddress: &shipping,
		Items:           make([]models.OrderItem, 0, len(lines)),
	}

	if req.PaymentMethod == models.PaymentMethodOnline {
		order.PaymentStatus = models.PaymentStatusPaid
	}

	if req.GiftWrap {
		order.GiftMessage = utils.SanitizeText(req.GiftMessage)
	}

	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageRef:  line.ImageRef,
			UnitPrice: line.UnitPrice,
			OwnerSize: line.OwnerSize,
			PetSize:   line.PetSize,
			Quantity:  line.Quantity,
		})
	}

	return order
}

func (s *checkoutService) sendConfirmation(ctx context.Context, run *checkoutRun, recipient string, order *models.Order) {

	if s.Notifier == nil || recipient == "" {
		return
	}

	if _, err := s.Notifier.SendOrderConfirmation(ctx, recipient, order); err != nil {
		run.logger.Warn("Order confirmation not sent", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}
}
