package httperrors

import (
	"errors"
	"net/http"

	"github.com/yourname/rangefs/internal/httprange"
	"github.com/yourname/rangefs/internal/models"
)

// Write отдаёт статус, соответствующий ошибке, с пустым телом.
func Write(w http.ResponseWriter, err error) {
	w.WriteHeader(Status(err))
}

// Status переводит доменную ошибку в HTTP-статус.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrNotAFile),
		errors.Is(err, models.ErrUnreadable):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, httprange.ErrMalformedRange),
		errors.Is(err, httprange.ErrUnsatisfiable):
		return http.StatusRequestedRangeNotSatisfiable
	default:
		return http.StatusInternalServerError
	}
}
