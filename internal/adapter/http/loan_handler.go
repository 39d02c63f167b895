package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-calculator/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// Fields stay strings: blank means "solve for this one".
type calculateReq struct {
	Principal   string `json:"principal"    validate:"max=32"`
	AnnualRate  string `json:"annual_rate"  validate:"max=32"`
	NumPayments string `json:"num_payments" validate:"max=32"`
	Payment     string `json:"payment"      validate:"max=32"`
}

func (h *LoanHandler) Calculate(c echo.Context) error {
	var req calculateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Calculate(c.Request().Context(), loan.CalculateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
