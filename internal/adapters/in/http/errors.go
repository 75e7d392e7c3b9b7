package http

import (
	"errors"
	"log/slog"
	"net/http"

	"laundry/internal/core/domain/model/batch"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// errorStatuses is checked top to bottom with errors.Is; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{route.ErrRoutingUnavailable, http.StatusServiceUnavailable},

	{errs.ErrObjectNotFound, http.StatusNotFound},
	{batch.ErrBatchNotFound, http.StatusNotFound},

	{order.ErrInvalidTransition, http.StatusConflict},
	{batch.ErrIneligibleOrder, http.StatusConflict},
	{batch.ErrDriverAlreadyAssigned, http.StatusConflict},
	{batch.ErrBatchNotCompletable, http.StatusConflict},
	{driver.ErrDriverUnavailable, http.StatusConflict},
	{errs.ErrVersionIsInvalid, http.StatusConflict},
	{ports.ErrOrderLocked, http.StatusConflict},
	{gorm.ErrDuplicatedKey, http.StatusConflict},

	{errs.ErrValueIsRequired, http.StatusBadRequest},
	{errs.ErrValueIsInvalid, http.StatusBadRequest},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest},
	{route.ErrTooManyStops, http.StatusBadRequest},
	{route.ErrInvalidStop, http.StatusBadRequest},
}

// NewErrorHandler renders every error returned by a handler as an Error body.
// Unknown errors become 500 without leaking their text.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toErrorBody(err)
		if body.Code >= http.StatusInternalServerError && body.Code != http.StatusServiceUnavailable {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

func toErrorBody(err error) Error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		body := Error{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)}
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
		if httpErr.Internal != nil && httpErr.Code < http.StatusInternalServerError &&
			httpErr.Internal.Error() != body.Message {
			body.Details = map[string]any{"reason": httpErr.Internal.Error()}
		}
		return body
	}

	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			return Error{Code: candidate.status, Message: err.Error(), Details: errorDetails(err)}
		}
	}

	return Error{Code: http.StatusInternalServerError, Message: "internal server error"}
}

// errorDetails exposes the structured part of domain errors.
func errorDetails(err error) map[string]any {
	var transitionErr *order.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return map[string]any{
			"from": transitionErr.From.String(),
			"to":   transitionErr.To.String(),
		}
	}

	var ineligibleErr *batch.IneligibleOrdersError
	if errors.As(err, &ineligibleErr) {
		orders := make([]map[string]string, 0, len(ineligibleErr.Orders))
		for _, o := range ineligibleErr.Orders {
			orders = append(orders, map[string]string{
				"orderId": o.OrderID.String(),
				"reason":  o.Reason,
			})
		}
		return map[string]any{"orders": orders}
	}

	var tooManyErr *route.TooManyStopsError
	if errors.As(err, &tooManyErr) {
		return map[string]any{"count": tooManyErr.Count, "max": tooManyErr.Max}
	}

	var stopErr *route.InvalidStopError
	if errors.As(err, &stopErr) && stopErr.OrderID != "" {
		return map[string]any{"index": stopErr.Index, "orderId": stopErr.OrderID}
	}

	return nil
}
