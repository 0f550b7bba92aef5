package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// client visible error codes
const (
	ErrorCodeInvalidOffer     = "INVALID_OFFER"
	ErrorCodeNoCodesAvailable = "NO_CODES_AVAILABLE"
	ErrorCodeOfferNotFound    = "OFFER_NOT_FOUND"
	ErrorCodeDuplicateOffer   = "DUPLICATE_OFFER"
	ErrorCodeRateLimited      = "RATE_LIMITED"
)

type HttpError struct {
	Code      int          `json:"-"`
	Message   string       `json:"error"`
	ErrorCode string       `json:"error_code,omitempty"`
	Detail    *ErrorDetail `json:"detail,omitempty"`
}

func (e *HttpError) Error() string {
	return e.Message
}

func BadRequest(messages ...string) *HttpError {
	message := "Bad Request"
	if len(messages) > 0 {
		message = messages[0]
	}
	return &HttpError{
		Code:    400,
		Message: message,
	}
}

func NotFound(messages ...string) *HttpError {
	message := "Not Found"
	if len(messages) > 0 {
		message = messages[0]
	}
	return &HttpError{
		Code:    404,
		Message: message,
	}
}

func TooManyRequests(messages ...string) *HttpError {
	message := "Too Many Requests"
	if len(messages) > 0 {
		message = messages[0]
	}
	return &HttpError{
		Code:      429,
		Message:   message,
		ErrorCode: ErrorCodeRateLimited,
	}
}

func InternalServerError(messages ...string) *HttpError {
	message := "Internal Server Error"
	if len(messages) > 0 {
		message = messages[0]
	}
	return &HttpError{
		Code:    500,
		Message: message,
	}
}

// Business rule failures of the offer/code lifecycle. The offer variant
// deliberately does not distinguish "absent" from "deactivated".
var (
	ErrOfferNotFound = &HttpError{
		Code:      400,
		Message:   "invitation offer does not exist or is disabled",
		ErrorCode: ErrorCodeInvalidOffer,
	}
	ErrOfferAbsent = &HttpError{
		Code:      404,
		Message:   "invitation offer does not exist",
		ErrorCode: ErrorCodeOfferNotFound,
	}
	ErrCodesExhausted = &HttpError{
		Code:      400,
		Message:   "no invitation codes left",
		ErrorCode: ErrorCodeNoCodesAvailable,
	}
	ErrDuplicateOffer = &HttpError{
		Code:      400,
		Message:   "offer name already exists",
		ErrorCode: ErrorCodeDuplicateOffer,
	}
)

// MyErrorHandler collapses anything that is not an expected business or
// validation error into a generic 500, logging the original cause so
// storage internals never reach the client.
func MyErrorHandler(ctx *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	httpError := HttpError{
		Code:    500,
		Message: "internal server error",
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpError.Code = 404
		httpError.Message = "Not Found"
	} else {
		switch e := err.(type) {
		case *HttpError:
			httpError = *e
		case *fiber.Error:
			httpError.Code = e.Code
			httpError.Message = e.Message
		case *ErrorDetail:
			httpError.Code = 400
			httpError.Message = e.Error()
			httpError.Detail = e
		default:
			Logger.Error("unexpected error", zap.Error(err), zap.String("url", ctx.OriginalURL()))
		}
	}

	body := fiber.Map{
		"success":    false,
		"error":      httpError.Message,
		"error_code": httpError.ErrorCode,
	}
	if httpError.Detail != nil {
		body["detail"] = httpError.Detail
	}
	return ctx.Status(httpError.Code).JSON(body)
}
