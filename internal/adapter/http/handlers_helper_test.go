package http

import (
	"bytes"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"loan-calculator/internal/adapter/repository/memory"
	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/usecase/loan"
	"loan-calculator/internal/usecase/pin"
	"loan-calculator/pkg/amortize"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newGate(store pinDomain.SecretStore) *pin.Gate {
	log, _ := logtest.NewNullLogger()
	return pin.NewGate(store, pin.SaltedSHA256{Salt: pin.DefaultSalt}, log)
}

func newMemGate() *pin.Gate { return newGate(memory.NewSecretStore()) }

func newLoanUsecase() *loan.Usecase {
	log, _ := logtest.NewNullLogger()
	return loan.NewUsecase(amortize.NewCalculator(), loan.Formatter{PeriodPrecision: 2}, log)
}

type fixedIssuer struct {
	tok string
	err error
}

func (f fixedIssuer) Issue(uint64) (string, error) { return f.tok, f.err }

var errIssue = errors.New("signing failed")

// serve runs a handler directly against an echo context.
func serve(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else if s, ok := body.(string); ok {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(s)))
	} else {
		req = httptest.NewRequest(method, path, mustJSON(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return v
}
