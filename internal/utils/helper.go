package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/go-playground/validator/v10"
)

// request bodies of the storefront are small; a cart or checkout payload
// never comes close
const maxJSONBody = 1 << 20

// DecodeJSONBody reads a single JSON document into dest. Unknown fields and
// trailing data are rejected.
func DecodeJSONBody(r *http.Request, dest any) error {

	logger := middleware.LoggerFromContext(r.Context())
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			logger.Warn("Empty request body")
			return errors.New("request body cannot be empty")
		}

		logger.Warn("Failed to parse request JSON", slog.String("error", err.Error()))
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	if decoder.More() {
		logger.Warn("Trailing data after request JSON")
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fmt.Errorf("validation error: %w", validationErrs)
	}

	slog.Error("Unexpected validation error", slog.String("error", err.Error()))
	return fmt.Errorf("unexpected validation error: %w", err)
}
