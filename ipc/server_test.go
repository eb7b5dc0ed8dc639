// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ipc

import (
	"os"
	"strings"
	"testing"
)

func TestSocketPathPrefersXDGRuntimeDir(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	got := SocketPath()
	if !strings.HasPrefix(got, "/run/user/1000/miracle-wm-ipc.") {
		t.Fatalf("expected a path under XDG_RUNTIME_DIR, got %q", got)
	}
}

func TestSocketPathFallsBackToTmp(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	t.Setenv("XDG_RUNTIME_DIR", "")

	got := SocketPath()
	if !strings.HasPrefix(got, "/tmp/miracle-wm-ipc.") {
		t.Fatalf("expected a /tmp fallback path, got %q", got)
	}
}

func TestSocketPathUsesSwaysockWhenPathAbsent(t *testing.T) {
	missing := os.TempDir() + "/waytile-test-sways-missing.sock"
	os.Remove(missing)
	t.Setenv("SWAYSOCK", missing)

	if got := SocketPath(); got != missing {
		t.Fatalf("expected SWAYSOCK override %q, got %q", missing, got)
	}
}

func TestSocketPathIgnoresSwaysockWhenPathExists(t *testing.T) {
	existing, err := os.CreateTemp("", "waytile-test-sways-existing")
	if err != nil {
		t.Fatalf("unexpected error creating temp file: %v", err)
	}
	defer os.Remove(existing.Name())
	existing.Close()

	t.Setenv("SWAYSOCK", existing.Name())
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	got := SocketPath()
	if got == existing.Name() {
		t.Fatal("expected an existing SWAYSOCK path to be ignored in favor of XDG_RUNTIME_DIR")
	}
}
