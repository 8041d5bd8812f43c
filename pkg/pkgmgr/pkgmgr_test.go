package pkgmgr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olimci/sprout/pkg/runner"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		preference string
		want       string
	}{
		{"empty dir defaults to npm", nil, "", "npm"},
		{"package.json only", []string{"package.json"}, "", "npm"},
		{"yarn lockfile", []string{"package.json", "yarn.lock"}, "", "yarn"},
		{"pnpm lockfile", []string{"package.json", "pnpm-lock.yaml"}, "", "pnpm"},
		{"bun lockfile", []string{"package.json", "bun.lockb"}, "", "bun"},
		{"bun text lockfile", []string{"bun.lock"}, "", "bun"},
		{"npm lockfile", []string{"package-lock.json"}, "", "npm"},
		{"bun beats yarn", []string{"bun.lockb", "yarn.lock"}, "", "bun"},
		{"go module", []string{"go.mod"}, "", "go"},
		{"go module with package.json", []string{"go.mod", "package.json"}, "", "npm"},
		{"preference wins over lockfile", []string{"yarn.lock"}, "pnpm", "pnpm"},
		{"preference is case insensitive", nil, " Yarn ", "yarn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got, err := Detect(dir, tt.preference)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Detect() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestDetectUnknownPreference(t *testing.T) {
	_, err := Detect(t.TempDir(), "cargo")
	if !errors.Is(err, ErrUnknownManager) {
		t.Fatalf("expected ErrUnknownManager, got %v", err)
	}
}

func TestManagerString(t *testing.T) {
	if got := Go.String(); got != "go mod download" {
		t.Errorf("Go.String() = %q", got)
	}
	if got := NPM.String(); got != "npm install" {
		t.Errorf("NPM.String() = %q", got)
	}
}

func TestInstall(t *testing.T) {
	fake := runner.NewFake()
	dir := t.TempDir()

	if err := Install(context.Background(), fake, dir, Yarn); err != nil {
		t.Fatalf("Install: %v", err)
	}

	want := []runner.Invocation{{Dir: dir, Name: "yarn", Args: []string{"install"}}}
	if diff := cmp.Diff(want, fake.Calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	fake := runner.NewFake().FailOn("npm install", boom)
	dir := t.TempDir()

	err := Install(context.Background(), fake, dir, NPM)

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("expected *InstallError, got %v", err)
	}
	if installErr.Manager != "npm" || installErr.Dir != dir {
		t.Errorf("unexpected InstallError: %+v", installErr)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected error to wrap runner error")
	}
}
