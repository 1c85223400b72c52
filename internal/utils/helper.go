package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/utils/response"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing
// the error envelope itself on failure. Returns true when the request is good.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request payload").WithError(err))
		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.Warn("Validation failed", slog.String("error", validationErrs.Error()))
			response.ValidationError(w, validationErrs)
			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, appErrors.ValidationError(err.Error()))
		return false
	}

	return true
}
