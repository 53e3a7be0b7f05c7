package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking-backend/services"
	"table-booking-backend/utils"
)

// ErrNoPermission is returned when the caller's role does not allow an action.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// respondServiceError maps admission-core errors onto HTTP statuses. Anything
// unrecognized is an infrastructure error.
func respondServiceError(c *gin.Context, err error) {
	var conflictErr *services.ConflictError
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrTableUnavailable):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.As(err, &conflictErr):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
