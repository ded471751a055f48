package controllers

import (
	"errors"
	"net/http"

	"boothmarket-backend/apperr"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps the error taxonomy to HTTP status codes so every handler
// reports failures the same way.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalid), errors.Is(err, views.ErrNotConfirmed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// currentUserID reads the account id the auth middleware stashed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
