package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/olimci/sprout/pkg/events"
	"github.com/olimci/sprout/pkg/pkgmgr"
	"github.com/olimci/sprout/pkg/runner"
)

// Options describes one scaffold run. It is normalized once and then passed by
// value to every step.
type Options struct {
	Template        string
	TargetDirectory string

	// TemplateDirectory is filled in by the locator; see Template.Dir.
	TemplateDirectory string

	Git            bool
	Install        bool
	PackageManager string
}

// Normalize defaults TargetDirectory to the working directory, makes it
// absolute and validates PackageManager.
func (o *Options) Normalize() error {
	o.Template = strings.TrimSpace(o.Template)
	o.PackageManager = strings.TrimSpace(o.PackageManager)

	if o.TargetDirectory == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		o.TargetDirectory = wd
	}

	abs, err := filepath.Abs(o.TargetDirectory)
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}
	o.TargetDirectory = abs

	if o.PackageManager != "" {
		if _, err := pkgmgr.Lookup(o.PackageManager); err != nil {
			return err
		}
	}

	return nil
}

func defaultOptions() *options {
	return &options{
		runner:  runner.NewExecRunner(),
		handler: events.NewNoopHandler(),
		logger:  log.New(io.Discard),
	}
}

type options struct {
	runner  runner.Runner
	handler events.Handler
	logger  *log.Logger
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(*options)

// WithRunner sets the subprocess runner used for git and installs.
func WithRunner(r runner.Runner) Option {
	return func(o *options) {
		if r != nil {
			o.runner = r
		}
	}
}

// WithHandler sets the reporter receiving task events.
func WithHandler(h events.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.handler = h
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
