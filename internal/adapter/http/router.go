package http

import "github.com/labstack/echo/v4"

// Routes groups handlers with the middleware each route needs. Idempotency
// is nil when redis is not configured.
type Routes struct {
	Health *Handler
	Pins   *PinHandler
	Loans  *LoanHandler

	Session       echo.MiddlewareFunc
	Idempotency   echo.MiddlewareFunc
	VerifyLimiter echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	idem := []echo.MiddlewareFunc{}
	if r.Idempotency != nil {
		idem = append(idem, r.Idempotency)
	}

	e.GET("/health", r.Health.Health)

	g := e.Group("/pin")
	g.GET("/status", r.Pins.Status)
	g.POST("/setup", r.Pins.Setup, idem...)
	g.POST("/verify", r.Pins.Verify, r.VerifyLimiter)
	g.POST("/reset", r.Pins.Reset, append([]echo.MiddlewareFunc{r.Session}, idem...)...)
	g.POST("/logout", r.Pins.Logout, r.Session)

	e.POST("/calculate", r.Loans.Calculate, r.Session)
}
