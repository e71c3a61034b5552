package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"

	// cart & checkout
	ErrCodeSyncWarning            = "SYNC_WARNING"
	ErrCodeCouponRejected         = "COUPON_REJECTED"
	ErrCodeCODLimitExceeded       = "COD_LIMIT_EXCEEDED"
	ErrCodePaymentFailed          = "PAYMENT_FAILED"
	ErrCodePaymentCancelled       = "PAYMENT_CANCELLED"
	ErrCodeVerificationFailed     = "VERIFICATION_FAILED"
	ErrCodeOrderPersistenceFailed = "ORDER_PERSISTENCE_FAILED"
	ErrCodeReconciliationRequired = "RECONCILIATION_REQUIRED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

// SyncWarning marks a failed best-effort write. The user-visible state stands.
func SyncWarning(message string) *AppError {
	return NewAppError(ErrCodeSyncWarning, message, http.StatusOK)
}

// CouponRejectedError carries the rejection reason in Detail.
func CouponRejectedError(reason, message string) *AppError {
	return NewAppError(ErrCodeCouponRejected, message, http.StatusUnprocessableEntity).WithDetail(reason)
}

func CODLimitExceededError(message string) *AppError {
	return NewAppError(ErrCodeCODLimitExceeded, message, http.StatusUnprocessableEntity)
}

func PaymentFailedError(message string) *AppError {
	return NewAppError(ErrCodePaymentFailed, message, http.StatusPaymentRequired)
}

func PaymentCancelledError(message string) *AppError {
	return NewAppError(ErrCodePaymentCancelled, message, http.StatusConflict)
}

func VerificationFailedError(message string) *AppError {
	return NewAppError(ErrCodeVerificationFailed, message, http.StatusBadGateway)
}

func OrderPersistenceFailedError(message string) *AppError {
	return NewAppError(ErrCodeOrderPersistenceFailed, message, http.StatusServiceUnavailable)
}

func ReconciliationRequiredError(message string) *AppError {
	return NewAppError(ErrCodeReconciliationRequired, message, http.StatusAccepted)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

func IsSyncWarning(err error) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == ErrCodeSyncWarning
}

// Retryable reports whether the caller may simply try the same action again.
func Retryable(err error) bool {
	appErr, ok := IsAppError(err)
	if !ok {
		return false
	}

	switch appErr.Code {
	case ErrCodeVerificationFailed, ErrCodeReconciliationRequired:
		return false
	default:
		return true
	}
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
