package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"portal/internal/core/domain/model/order"
	"portal/internal/pkg/errs"
)

// Error kinds exposed in the JSON error body. Clients branch on the kind,
// never on the message text.
const (
	KindInvalidTransition = "invalid_transition"
	KindOrderDeleted      = "order_deleted"
	KindOrderNotFound     = "order_not_found"
	KindConflict          = "conflict"
	KindLastItemProtected = "last_item_protected"
	KindValidationError   = "validation_error"
	KindInternalError     = "internal_error"
)

// respondError maps a domain or application error to the HTTP status and
// error kind of the API contract. ErrOrderDeleted is checked before
// ErrInvalidTransition so deleted orders keep their own kind even though both
// reject a transition.
func respondError(ctx echo.Context, err error) error {
	code, kind := classifyError(err)

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Kind:    kind,
		Message: err.Error(),
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindOrderNotFound
	case errors.Is(err, order.ErrOrderDeleted):
		return http.StatusGone, KindOrderDeleted
	case errors.Is(err, order.ErrLastItemProtected):
		return http.StatusConflict, KindLastItemProtected
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, KindInvalidTransition
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict, KindConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest, KindValidationError
	default:
		return http.StatusInternalServerError, KindInternalError
	}
}

// badRequest replies with a validation_error kind for malformed input that
// never reached a domain constructor (unparseable body, bad UUID, bad date).
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    KindValidationError,
		Message: message,
	})
}
