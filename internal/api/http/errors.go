package http

import (
	"errors"
	"net/http"

	"batepapo-uol/internal/repository"
	"batepapo-uol/internal/service"
	"batepapo-uol/internal/validation"

	"github.com/gin-gonic/gin"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, repository.ErrParticipantNotFound),
		errors.Is(err, repository.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotRegistered):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps an error from the service layer to its status code.
// Validation failures carry the full list of field-level messages.
func respondError(ctx *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Messages})
		return
	}
	ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
}
