package services_test

import (
	"errors"
	"strings"
	"testing"

	"movierec/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrLoad, "catalog", "read", "credits.csv", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "read", "credits.csv"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatalAndKind(t *testing.T) {
	loadErr := services.Wrap(services.ErrLoad, "catalog", "join", "no rows", nil)
	if !services.IsFatal(loadErr) {
		t.Fatal("expected load error to be fatal")
	}
	if kind := services.Kind(loadErr); kind != "load" {
		t.Fatalf("expected load kind, got %s", kind)
	}

	lookupErr := services.Wrap(services.ErrExternalTool, "poster", "search", "status 500", nil)
	if services.IsFatal(lookupErr) {
		t.Fatal("expected poster failure to be non-fatal")
	}
	if kind := services.Kind(lookupErr); kind != "external" {
		t.Fatalf("expected external kind, got %s", kind)
	}

	if kind := services.Kind(nil); kind != "ok" {
		t.Fatalf("expected ok for nil error, got %s", kind)
	}
	if kind := services.Kind(errors.New("other")); kind != "transient" {
		t.Fatalf("expected transient for unknown error, got %s", kind)
	}
}
