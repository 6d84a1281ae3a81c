package handler

import (
	"errors"
	"strconv"

	"job-portal/internal/authz"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/validate"
	"job-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	messageInvalidPayload   = "Invalid request payload"
	messageValidationFailed = "Validation failed"
	messageNotAuthorized    = "Not authorized to perform this action"
)

// bindBody decodes the JSON body into req and runs its validate tags.
func bindBody(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.BadRequest(messageInvalidPayload, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		return middleware.BadRequest(messageValidationFailed, verrs, err)
	}
	return middleware.BadRequest(messageInvalidPayload, nil, err)
}

func pathID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid "+name, nil, err)
	}
	return id, nil
}

func identity(c fiber.Ctx) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageAuthHeaderRequired, nil, nil)
	}
	return id, nil
}

func applicantID(c fiber.Ctx) (string, error) {
	id, ok := middleware.ApplicantIDFrom(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageApplicantRequired, nil, nil)
	}
	return id, nil
}

// mapAccessError covers the failures shared by every protected usecase.
// notFound is the message used for rows that are missing or owned by someone
// else; the two cases are indistinguishable to the caller.
func mapAccessError(err error, notFound string) error {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		return middleware.BadRequest(messageValidationFailed, verrs, err)
	case errors.Is(err, authz.ErrNotFoundOrForbidden):
		return middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	case errors.Is(err, authz.ErrDenied):
		return middleware.NewAppError(fiber.StatusUnauthorized, messageNotAuthorized, nil, err)
	default:
		return middleware.Internal(err)
	}
}

func passwordFieldError() validate.Errors {
	return validate.Field("password", "Ensure this field has 8 to 72 characters.")
}
