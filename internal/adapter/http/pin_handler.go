package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/usecase/pin"
)

type TokenIssuer interface {
	Issue(epoch uint64) (string, error)
}

type PinHandler struct {
	gate   *pin.Gate
	tokens TokenIssuer
}

func NewPinHandler(gate *pin.Gate, tokens TokenIssuer) *PinHandler {
	return &PinHandler{gate: gate, tokens: tokens}
}

type setupPinReq struct {
	PIN        string `json:"pin"         validate:"required,pin4"`
	ConfirmPIN string `json:"confirm_pin" validate:"required"`
}

type verifyPinReq struct {
	PIN string `json:"pin" validate:"required"`
}

type resetPinReq struct {
	CurrentPIN string `json:"current_pin" validate:"required"`
	NewPIN     string `json:"new_pin"     validate:"required,pin4"`
	ConfirmPIN string `json:"confirm_pin" validate:"required"`
}

type statusResp struct {
	Configured    bool `json:"configured"`
	Authenticated bool `json:"authenticated"`
}

type tokenResp struct {
	Token string `json:"token"`
}

func (h *PinHandler) Status(c echo.Context) error {
	configured, err := h.gate.IsConfigured(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, statusResp{Configured: configured, Authenticated: h.gate.IsAuthenticated()})
}

func (h *PinHandler) Setup(c echo.Context) error {
	var req setupPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.gate.Enroll(c.Request().Context(), req.PIN, req.ConfirmPIN); err != nil {
		return writeError(c, err)
	}
	return h.issue(c, http.StatusCreated)
}

func (h *PinHandler) Verify(c echo.Context) error {
	var req verifyPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	ok, err := h.gate.Verify(c.Request().Context(), req.PIN)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return writeError(c, pinDomain.ErrIncorrectPIN)
	}
	return h.issue(c, http.StatusOK)
}

func (h *PinHandler) Reset(c echo.Context) error {
	var req resetPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := pin.Confirm(req.NewPIN, req.ConfirmPIN); err != nil {
		return writeError(c, err)
	}
	if err := h.gate.Reset(c.Request().Context(), req.CurrentPIN, req.NewPIN); err != nil {
		return writeError(c, err)
	}
	return h.issue(c, http.StatusOK)
}

func (h *PinHandler) Logout(c echo.Context) error {
	h.gate.Logout()
	return c.NoContent(http.StatusNoContent)
}

func (h *PinHandler) issue(c echo.Context, code int) error {
	tok, err := h.tokens.Issue(h.gate.Epoch())
	if err != nil {
		c.Logger().Errorf("issue session token: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, tokenResp{Token: tok})
}
