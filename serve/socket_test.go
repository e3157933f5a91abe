package main

import (
	"fmt"
	"os"
	"testing"
)

func TestResolveSocketPathEnv(t *testing.T) {
	t.Setenv("CURSORLET_SOCKET", "/custom/path.sock")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	if got := resolveSocketPath(); got != "/custom/path.sock" {
		t.Errorf("expected /custom/path.sock, got %s", got)
	}
}

func TestResolveSocketPathXDG(t *testing.T) {
	t.Setenv("CURSORLET_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	if got := resolveSocketPath(); got != "/run/user/1000/cursorlet.sock" {
		t.Errorf("expected /run/user/1000/cursorlet.sock, got %s", got)
	}
}

func TestResolveSocketPathFallback(t *testing.T) {
	t.Setenv("CURSORLET_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "")

	want := fmt.Sprintf("/tmp/cursorlet-%d.sock", os.Getuid())
	if got := resolveSocketPath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
