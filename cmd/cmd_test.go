package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olimci/sprout/pkg/events"
	"github.com/olimci/sprout/pkg/runner"
	"github.com/olimci/sprout/pkg/scaffold"
)

const (
	indexJS     = "console.log('hello world');\n"
	packageJSON = "{\n  \"name\": \"demo\",\n  \"version\": \"1.0.0\"\n}\n"
)

// isolate keeps the user's config file and SPROUT_* variables out of a test.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	for _, name := range []string{"SPROUT_TEMPLATES", "SPROUT_GIT", "SPROUT_INSTALL", "SPROUT_PACKAGE_MANAGER", "SPROUT_CONFIG"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func templatesRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "default")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.js"), []byte(indexJS), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(packageJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

type run struct {
	stdout string
	stderr string
	err    error
}

func runApp(t *testing.T, fake *runner.Fake, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(""), &stdout, &stderr)
	a.runner = fake
	err := a.run(context.Background(), append([]string{"sprout"}, args...))
	return run{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestCreateEndToEnd(t *testing.T) {
	isolate(t)
	root := templatesRoot(t)
	target := filepath.Join(t.TempDir(), "app")
	fake := runner.NewFake()

	res := runApp(t, fake, "--plain", "-T", root, "default", target)
	if res.err != nil {
		t.Fatalf("run: %v\nstderr: %s", res.err, res.stderr)
	}

	for name, want := range map[string]string{"index.js": indexJS, "package.json": packageJSON} {
		got, err := os.ReadFile(filepath.Join(target, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if _, err := os.Stat(filepath.Join(target, ".git")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected no .git, stat err = %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("expected no subprocesses, got %v", fake.Commands())
	}

	wantLines := []string{
		"[pending] Copy project files",
		"[success] Copy project files",
		"[skipped] Install dependencies (Pass --install to automatically install dependencies)",
		"DONE Project ready",
	}
	for _, line := range wantLines {
		if !strings.Contains(res.stdout, line+"\n") {
			t.Errorf("stdout missing %q:\n%s", line, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "Initialize git") {
		t.Errorf("git task should not be reported:\n%s", res.stdout)
	}
}

func TestCreateSubcommandWithGit(t *testing.T) {
	isolate(t)
	root := templatesRoot(t)
	target := t.TempDir()
	fake := runner.NewFake()

	res := runApp(t, fake, "create", "--plain", "--git", "-T", root, "default", target)
	if res.err != nil {
		t.Fatalf("run: %v\nstderr: %s", res.err, res.stderr)
	}

	want := []runner.Invocation{{Dir: target, Name: "git", Args: []string{"init"}}}
	if diff := cmp.Diff(want, fake.Calls); diff != "" {
		t.Errorf("invocations mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.stdout, "[success] Initialize git") {
		t.Errorf("stdout missing git success:\n%s", res.stdout)
	}
}

func TestCreateMissingTemplate(t *testing.T) {
	isolate(t)
	root := templatesRoot(t)
	target := t.TempDir()
	fake := runner.NewFake()

	res := runApp(t, fake, "--plain", "--git", "-T", root, "nope", target)

	var notFound *scaffold.TemplateNotFoundError
	if !errors.As(res.err, &notFound) {
		t.Fatalf("expected *TemplateNotFoundError, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "ERROR Invalid template name") {
		t.Errorf("stderr missing banner:\n%s", res.stderr)
	}
	if strings.Contains(res.stdout, "DONE") {
		t.Errorf("unexpected DONE banner:\n%s", res.stdout)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 || len(fake.Calls) != 0 {
		t.Errorf("nothing should run: %d entries, calls %v", len(entries), fake.Commands())
	}
}

func TestCreateWithoutTemplateArgument(t *testing.T) {
	isolate(t)

	res := runApp(t, runner.NewFake(), "--plain")
	if !errors.Is(res.err, ErrMissingTemplate) {
		t.Fatalf("expected ErrMissingTemplate, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "ERROR missing template name") {
		t.Errorf("stderr missing banner:\n%s", res.stderr)
	}
}

func TestCreateInstallFailure(t *testing.T) {
	isolate(t)
	root := templatesRoot(t)
	fake := runner.NewFake().FailOn("npm install", errors.New("exit status 1"))

	res := runApp(t, fake, "--plain", "--install", "-T", root, "default", t.TempDir())
	if res.err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(res.stdout, "[failure] Install dependencies") {
		t.Errorf("stdout missing failure line:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "ERROR") {
		t.Errorf("stderr missing banner:\n%s", res.stderr)
	}
}

func TestCreateBuiltInTemplate(t *testing.T) {
	isolate(t)
	target := t.TempDir()

	res := runApp(t, runner.NewFake(), "--plain", "typescript", target)
	if res.err != nil {
		t.Fatalf("run: %v\nstderr: %s", res.err, res.stderr)
	}

	for _, present := range []string{"package.json", "tsconfig.json", ".gitignore", filepath.Join("src", "index.ts")} {
		if _, err := os.Stat(filepath.Join(target, present)); err != nil {
			t.Errorf("%s missing: %v", present, err)
		}
	}
	for _, absent := range []string{scaffold.ManifestFile, "gitignore"} {
		if _, err := os.Stat(filepath.Join(target, absent)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s should not be copied", absent)
		}
	}
}

func TestSettingsPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		config string
		env    map[string]string
		args   []string
		want   []string
	}{
		{
			name: "defaults",
			want: []string{},
		},
		{
			name:   "config enables git and install",
			config: "git = true\ninstall = true\npackage_manager = \"pnpm\"\n",
			want:   []string{"git init", "pnpm install"},
		},
		{
			name:   "flag overrides config",
			config: "git = true\n",
			args:   []string{"--git=false"},
			want:   []string{},
		},
		{
			name: "environment enables install",
			env:  map[string]string{"SPROUT_INSTALL": "true", "SPROUT_PACKAGE_MANAGER": "yarn"},
			want: []string{"yarn install"},
		},
		{
			name:   "flag overrides config package manager",
			config: "install = true\npackage_manager = \"pnpm\"\n",
			args:   []string{"-p", "bun"},
			want:   []string{"bun install"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			args := []string{"--plain", "-T", templatesRoot(t)}
			if tt.config != "" {
				path := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(path, []byte(tt.config), 0644); err != nil {
					t.Fatal(err)
				}
				args = append(args, "--config", path)
			}
			args = append(args, tt.args...)
			args = append(args, "default", t.TempDir())

			fake := runner.NewFake()
			res := runApp(t, fake, args...)
			if res.err != nil {
				t.Fatalf("run: %v\nstderr: %s", res.err, res.stderr)
			}
			if diff := cmp.Diff(tt.want, fake.Commands()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateBadConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("colour = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res := runApp(t, runner.NewFake(), "--plain", "--config", path, "default", t.TempDir())
	if res.err == nil || !strings.Contains(res.err.Error(), "unknown keys") {
		t.Fatalf("expected unknown keys error, got %v", res.err)
	}
}

func TestList(t *testing.T) {
	isolate(t)

	res := runApp(t, runner.NewFake(), "list")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	for _, want := range []string{"default", "typescript", "Minimal Node.js project"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestListCustomRoot(t *testing.T) {
	isolate(t)
	root := templatesRoot(t)

	res := runApp(t, runner.NewFake(), "list", "-T", root)
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if !strings.Contains(res.stdout, "  default") || strings.Contains(res.stdout, "typescript") {
		t.Errorf("unexpected listing:\n%s", res.stdout)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	res := runApp(t, runner.NewFake(), "version")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if res.stdout != "sprout version "+Version+"\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestFormatEventPlain(t *testing.T) {
	tests := []struct {
		event events.Event
		want  string
	}{
		{events.Event{Kind: events.TaskStarted, Title: "Copy project files"}, "[pending] Copy project files"},
		{events.Event{Kind: events.TaskSucceeded, Title: "Copy project files"}, "[success] Copy project files"},
		{events.Event{Kind: events.TaskSkipped, Title: "Install dependencies", Reason: "later"}, "[skipped] Install dependencies (later)"},
		{events.Event{Kind: events.TaskFailed, Title: "Initialize git", Error: errors.New("boom")}, "[failure] Initialize git: boom"},
	}

	for _, tt := range tests {
		if got := formatEventPlain(tt.event); got != tt.want {
			t.Errorf("formatEventPlain(%+v) = %q, want %q", tt.event, got, tt.want)
		}
	}
}
