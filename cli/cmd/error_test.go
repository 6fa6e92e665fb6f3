package cmd

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError_Error_MessageOnly(t *testing.T) {
	err := NewError("boom")

	if got := err.Error(); got != "boom" {
		t.Errorf("expected %q, got %q", "boom", got)
	}
}

func TestError_Wrap_ChainsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError("failed to open source").Wrap(cause)

	want := "failed to open source: disk full"
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestError_Wrap_DoesNotMutateSentinel(t *testing.T) {
	sentinel := NewError("failed")
	_ = sentinel.Wrap(errors.New("x"))

	if sentinel.Error() != "failed" {
		t.Error("expected Wrap to leave the original sentinel untouched")
	}
}

func TestError_With_AddsAttributes(t *testing.T) {
	err := NewError("failed").With(slog.String("path", "/tmp/x"))

	group := err.LogValue().Group()

	found := false
	for _, a := range group {
		if a.Key == "path" && a.Value.String() == "/tmp/x" {
			found = true
		}
	}
	if !found {
		t.Error("expected LogValue to include the attribute added by With")
	}
}

func TestErrOpenSource_Wrap_PreservesMessage(t *testing.T) {
	wrapped := ErrOpenSource.Wrap(errors.New("no such file"))

	want := "failed to open source: no such file"
	if got := wrapped.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
