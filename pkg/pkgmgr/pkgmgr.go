// Package pkgmgr picks a package manager for a project directory and runs its
// install command.
package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/olimci/sprout/pkg/runner"
)

var ErrUnknownManager = errors.New("unknown package manager")

// Manager is an installer invocation.
type Manager struct {
	Name   string
	Binary string
	Args   []string
}

func (m Manager) String() string {
	return runner.Command(m.Binary, m.Args...)
}

var (
	NPM  = Manager{Name: "npm", Binary: "npm", Args: []string{"install"}}
	Yarn = Manager{Name: "yarn", Binary: "yarn", Args: []string{"install"}}
	PNPM = Manager{Name: "pnpm", Binary: "pnpm", Args: []string{"install"}}
	Bun  = Manager{Name: "bun", Binary: "bun", Args: []string{"install"}}
	Go   = Manager{Name: "go", Binary: "go", Args: []string{"mod", "download"}}
)

var known = []Manager{NPM, Yarn, PNPM, Bun, Go}

// lockfiles are checked in order; the first one present decides.
var lockfiles = []struct {
	file    string
	manager Manager
}{
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// Names lists every supported manager name.
func Names() []string {
	names := make([]string, len(known))
	for i, m := range known {
		names[i] = m.Name
	}
	return names
}

// Lookup returns the manager called name.
func Lookup(name string) (Manager, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	i := slices.IndexFunc(known, func(m Manager) bool { return m.Name == name })
	if i < 0 {
		return Manager{}, fmt.Errorf("%w %q (supported: %s)", ErrUnknownManager, name, strings.Join(Names(), ", "))
	}
	return known[i], nil
}

// Detect chooses the manager for dir. An explicit preference wins; otherwise a
// lockfile decides, then a Go module without package.json, then npm.
func Detect(dir, preference string) (Manager, error) {
	if strings.TrimSpace(preference) != "" {
		return Lookup(preference)
	}

	for _, lf := range lockfiles {
		if exists(filepath.Join(dir, lf.file)) {
			return lf.manager, nil
		}
	}

	if exists(filepath.Join(dir, "go.mod")) && !exists(filepath.Join(dir, "package.json")) {
		return Go, nil
	}

	return NPM, nil
}

// InstallError is returned when the installer exits unsuccessfully.
type InstallError struct {
	Manager string
	Dir     string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install dependencies with %s in %s: %v", e.Manager, e.Dir, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Install runs the manager's install command with dir as the working directory.
func Install(ctx context.Context, r runner.Runner, dir string, m Manager) error {
	if err := r.Run(ctx, dir, m.Binary, m.Args...); err != nil {
		return &InstallError{Manager: m.Name, Dir: dir, Err: err}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
