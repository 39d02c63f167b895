package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"testing"

	"loan-calculator/internal/adapter/repository/memory"
	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/testutil/secretmock"
)

func TestPinStatus(t *testing.T) {
	e := newEchoWithValidator()
	gate := newMemGate()
	h := NewPinHandler(gate, fixedIssuer{tok: "t"})

	rec := serve(t, e, h.Status, stdhttp.MethodGet, "/pin/status", nil)
	got := decode[statusResp](t, rec)
	if rec.Code != stdhttp.StatusOK || got.Configured || got.Authenticated {
		t.Fatalf("fresh status: code=%d %+v", rec.Code, got)
	}

	if err := gate.Setup(context.Background(), "1234"); err != nil {
		t.Fatal(err)
	}
	got = decode[statusResp](t, serve(t, e, h.Status, stdhttp.MethodGet, "/pin/status", nil))
	if !got.Configured || !got.Authenticated {
		t.Fatalf("after setup: %+v", got)
	}
}

func TestPinStatus_StoreDown(t *testing.T) {
	e := newEchoWithValidator()
	store := &secretmock.Store{GetFn: func(context.Context, string) (string, error) { return "", errors.New("down") }}
	h := NewPinHandler(newGate(store), fixedIssuer{tok: "t"})

	rec := serve(t, e, h.Status, stdhttp.MethodGet, "/pin/status", nil)
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestPinSetup(t *testing.T) {
	tests := []struct {
		name string
		body any
		code int
	}{
		{"ok", map[string]string{"pin": "1234", "confirm_pin": "1234"}, stdhttp.StatusCreated},
		{"mismatch", map[string]string{"pin": "1234", "confirm_pin": "4321"}, stdhttp.StatusConflict},
		{"not digits", map[string]string{"pin": "12a4", "confirm_pin": "12a4"}, stdhttp.StatusUnprocessableEntity},
		{"missing confirm", map[string]string{"pin": "1234"}, stdhttp.StatusUnprocessableEntity},
		{"bad json", `{"pin":`, stdhttp.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEchoWithValidator()
			h := NewPinHandler(newMemGate(), fixedIssuer{tok: "tok-1"})
			rec := serve(t, e, h.Setup, stdhttp.MethodPost, "/pin/setup", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tc.code, rec.Body.String())
			}
			if tc.code == stdhttp.StatusCreated {
				if got := decode[tokenResp](t, rec); got.Token != "tok-1" {
					t.Fatalf("token = %q", got.Token)
				}
			}
		})
	}
}

func TestPinSetup_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPinHandler(newMemGate(), fixedIssuer{tok: "t"})
	rec := serve(t, e, h.Setup, stdhttp.MethodPost, "/pin/setup", map[string]string{"pin": "12", "confirm_pin": "12"})
	got := decode[ErrorResponse](t, rec)
	if !containsFieldMsg(got.Details, "pin", "exactly 4 digits") {
		t.Fatalf("details = %+v", got.Details)
	}
}

func TestPinSetup_AlreadyConfigured(t *testing.T) {
	e := newEchoWithValidator()
	gate := newMemGate()
	if err := gate.Setup(context.Background(), "1234"); err != nil {
		t.Fatal(err)
	}
	h := NewPinHandler(gate, fixedIssuer{tok: "t"})
	rec := serve(t, e, h.Setup, stdhttp.MethodPost, "/pin/setup", map[string]string{"pin": "5678", "confirm_pin": "5678"})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Error != pinDomain.ErrAlreadyConfigured.Error() {
		t.Fatalf("error = %q", got.Error)
	}
}

func TestPinSetup_StoreWriteFails(t *testing.T) {
	e := newEchoWithValidator()
	store := &secretmock.Store{SetFn: func(context.Context, string, string) error { return errors.New("disk full") }}
	gate := newGate(store)
	h := NewPinHandler(gate, fixedIssuer{tok: "t"})

	rec := serve(t, e, h.Setup, stdhttp.MethodPost, "/pin/setup", map[string]string{"pin": "1234", "confirm_pin": "1234"})
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if gate.IsAuthenticated() {
		t.Fatal("failed setup must not authenticate")
	}
}

func TestPinSetup_TokenFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPinHandler(newMemGate(), fixedIssuer{err: errIssue})
	rec := serve(t, e, h.Setup, stdhttp.MethodPost, "/pin/setup", map[string]string{"pin": "1234", "confirm_pin": "1234"})
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestPinVerify(t *testing.T) {
	e := newEchoWithValidator()
	gate := newGate(memory.NewSecretStore())
	h := NewPinHandler(gate, fixedIssuer{tok: "tok-v"})

	// nothing stored yet: plain mismatch
	rec := serve(t, e, h.Verify, stdhttp.MethodPost, "/pin/verify", map[string]string{"pin": "1234"})
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("unconfigured verify = %d, want 401", rec.Code)
	}

	if err := gate.Setup(context.Background(), "1234"); err != nil {
		t.Fatal(err)
	}
	gate.Logout()

	rec = serve(t, e, h.Verify, stdhttp.MethodPost, "/pin/verify", map[string]string{"pin": "9999"})
	if rec.Code != stdhttp.StatusUnauthorized || gate.IsAuthenticated() {
		t.Fatalf("wrong pin = %d auth=%v", rec.Code, gate.IsAuthenticated())
	}

	rec = serve(t, e, h.Verify, stdhttp.MethodPost, "/pin/verify", map[string]string{"pin": "1234"})
	if rec.Code != stdhttp.StatusOK || !gate.IsAuthenticated() {
		t.Fatalf("right pin = %d auth=%v", rec.Code, gate.IsAuthenticated())
	}
	if got := decode[tokenResp](t, rec); got.Token != "tok-v" {
		t.Fatalf("token = %q", got.Token)
	}

	rec = serve(t, e, h.Verify, stdhttp.MethodPost, "/pin/verify", map[string]string{})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("empty pin = %d, want 422", rec.Code)
	}
}

func TestPinReset(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		code int
		want string // pin that verifies afterwards
	}{
		{"ok", map[string]string{"current_pin": "1234", "new_pin": "5678", "confirm_pin": "5678"}, stdhttp.StatusOK, "5678"},
		{"wrong current", map[string]string{"current_pin": "0000", "new_pin": "5678", "confirm_pin": "5678"}, stdhttp.StatusUnauthorized, "1234"},
		{"mismatch", map[string]string{"current_pin": "1234", "new_pin": "5678", "confirm_pin": "5679"}, stdhttp.StatusConflict, "1234"},
		{"invalid new", map[string]string{"current_pin": "1234", "new_pin": "56", "confirm_pin": "56"}, stdhttp.StatusUnprocessableEntity, "1234"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEchoWithValidator()
			gate := newMemGate()
			ctx := context.Background()
			if err := gate.Setup(ctx, "1234"); err != nil {
				t.Fatal(err)
			}
			h := NewPinHandler(gate, fixedIssuer{tok: "t"})

			rec := serve(t, e, h.Reset, stdhttp.MethodPost, "/pin/reset", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tc.code, rec.Body.String())
			}
			if ok, _ := gate.Verify(ctx, tc.want); !ok {
				t.Fatalf("pin %q should verify after reset attempt", tc.want)
			}
		})
	}
}

func TestPinReset_NotConfigured(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPinHandler(newMemGate(), fixedIssuer{tok: "t"})
	rec := serve(t, e, h.Reset, stdhttp.MethodPost, "/pin/reset",
		map[string]string{"current_pin": "1234", "new_pin": "5678", "confirm_pin": "5678"})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestPinLogout(t *testing.T) {
	e := newEchoWithValidator()
	gate := newMemGate()
	if err := gate.Setup(context.Background(), "1234"); err != nil {
		t.Fatal(err)
	}
	h := NewPinHandler(gate, fixedIssuer{tok: "t"})

	rec := serve(t, e, h.Logout, stdhttp.MethodPost, "/pin/logout", nil)
	if rec.Code != stdhttp.StatusNoContent || gate.IsAuthenticated() {
		t.Fatalf("logout: code=%d auth=%v", rec.Code, gate.IsAuthenticated())
	}
}
