package services_test

import (
	"errors"
	"strings"
	"testing"

	"cleanarr/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrCatalogUnreachable, "plex", "ping", "connect failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrCatalogUnreachable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"plex", "ping", "connect failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCauseOrDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	incomplete := services.Wrap(services.ErrConfigurationIncomplete, "reconcile", "catalog", "no library names", nil)
	if services.IsFatal(incomplete) {
		t.Fatal("incomplete configuration should not be fatal")
	}
	if !services.IsFatal(services.Wrap(services.ErrRemoval, "remover", "remove", "", errors.New("EPERM"))) {
		t.Fatal("removal failure should be fatal")
	}
	if services.IsFatal(nil) {
		t.Fatal("nil error should not be fatal")
	}
}
