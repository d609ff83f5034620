package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/response"
)

// writeErr maps domain and repository errors onto the API envelope. Unknown
// errors become opaque 500s; their detail goes to the log, not the client.
func writeErr(c *gin.Context, err error) {
	var formatErr *valueobject.FormatError
	var rangeErr *valueobject.RangeError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrConflict):
		response.Fail(c, http.StatusConflict, "conflict", nil)
	case errors.Is(err, entity.ErrInvalidStatusTransition):
		response.Fail(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Fail(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrUploadExpired):
		response.Fail(c, http.StatusGone, err.Error(), nil)
	case errors.Is(err, application.ErrQueueEmpty),
		errors.Is(err, application.ErrTicketNotFound):
		response.Fail(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &formatErr),
		errors.As(err, &rangeErr),
		errors.Is(err, application.ErrOutsideOperatingHours),
		errors.Is(err, application.ErrUnknownAppointmentType),
		errors.Is(err, application.ErrNotReschedulable),
		errors.Is(err, application.ErrNotCheckedInToday):
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}
