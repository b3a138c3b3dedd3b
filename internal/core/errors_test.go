package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	base := &Error{Code: "TEST", Message: "test message"}
	if base.Error() != "[TEST] test message" {
		t.Errorf("unexpected error string: %s", base.Error())
	}

	wrapped := WrapError(base, fmt.Errorf("root cause"))
	if wrapped.Error() != "[TEST] test message: root cause" {
		t.Errorf("unexpected wrapped error string: %s", wrapped.Error())
	}
}

func TestError_Is(t *testing.T) {
	err := WrapError(ErrInsufficientData, fmt.Errorf("only 3 candles"))

	if !errors.Is(err, ErrInsufficientData) {
		t.Error("expected errors.Is to match by code")
	}
	if errors.Is(err, ErrCollectorFailed) {
		t.Error("expected errors.Is to not match a different code")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := WrapError(ErrStorageFailed, cause)

	if !errors.Is(err, cause) {
		t.Error("expected unwrap chain to reach the cause")
	}
}
