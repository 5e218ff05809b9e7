package auth

import (
	"errors"
	"testing"

	logs "github.com/danmuck/smplog"
)

func TestStaticTokenValidate(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		input   string
		wantErr error
	}{
		{name: "empty token denied", stored: "", input: "abc", wantErr: ErrUnauthorized},
		{name: "mismatched token denied", stored: "abc", input: "xyz", wantErr: ErrUnauthorized},
		{name: "matching token accepted", stored: "abc", input: "abc", wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs.Logf("auth/static-token: stored=%q input=%q", tc.stored, tc.input)
			err := (StaticToken{Token: tc.stored}).Validate(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v, got %v", tc.wantErr, err)
			}
			logs.Logf("auth/static-token: result err=%v", err)
		})
	}
}

func TestFuncValidator(t *testing.T) {
	validator := FuncValidator(func(token string) error {
		logs.Logf("auth/func-validator: validating token=%q", token)
		if token != "ok" {
			return ErrUnauthorized
		}
		return nil
	})

	if err := validator.Validate("bad"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for bad token, got %v", err)
	}
	if err := validator.Validate("ok"); err != nil {
		t.Fatalf("expected success for ok token, got %v", err)
	}
	logs.Logf("auth/func-validator: path complete")
}

// TestStaticTokenAdminGateShape exercises StaticToken the way cmd/wirectl's
// admin subcommands use it: built fresh from an operator-set secret on
// every command invocation rather than held as long-lived state.
func TestStaticTokenAdminGateShape(t *testing.T) {
	adminSecret := "correct-horse-battery-staple"

	gate := func(token string) error {
		return (StaticToken{Token: adminSecret}).Validate(token)
	}

	if err := gate(""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for empty admin token, got %v", err)
	}
	if err := gate(adminSecret); err != nil {
		t.Fatalf("expected admin command to proceed with matching token, got %v", err)
	}
}
