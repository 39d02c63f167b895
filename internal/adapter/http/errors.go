package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	loanDomain "loan-calculator/internal/domain/loan"
	pinDomain "loan-calculator/internal/domain/pin"
)

var errStatus = []struct {
	err  error
	code int
}{
	{loanDomain.ErrInvalidInput, http.StatusBadRequest},
	{loanDomain.ErrInfeasibleLoan, http.StatusUnprocessableEntity},
	{pinDomain.ErrInvalidPIN, http.StatusUnprocessableEntity},
	{pinDomain.ErrIncorrectPIN, http.StatusUnauthorized},
	{pinDomain.ErrPINMismatch, http.StatusConflict},
	{pinDomain.ErrAlreadyConfigured, http.StatusConflict},
	{pinDomain.ErrNotConfigured, http.StatusConflict},
	{pinDomain.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// writeError maps domain errors to HTTP codes. The wrapped detail of
// validation errors is shown; store errors stay opaque to clients.
func writeError(c echo.Context, err error) error {
	for _, m := range errStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.err.Error()
		switch m.err {
		case loanDomain.ErrInvalidInput, loanDomain.ErrInfeasibleLoan:
			msg = strings.TrimPrefix(err.Error(), m.err.Error()+": ")
		}
		return c.JSON(m.code, ErrorResponse{Error: msg})
	}
	c.Logger().Errorf("unmapped error: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
