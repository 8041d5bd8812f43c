// Package scaffold locates templates and turns one into a project: copy the
// files, initialize git, install dependencies.
package scaffold

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/olimci/sprout/pkg/copier"
	"github.com/olimci/sprout/pkg/events"
	"github.com/olimci/sprout/pkg/pkgmgr"
	"github.com/olimci/sprout/pkg/runner"
	"github.com/olimci/sprout/pkg/tasks"
	"github.com/olimci/sprout/pkg/vcs"
)

// Task titles, in run order.
const (
	TitleCopy    = "Copy project files"
	TitleGit     = "Initialize git"
	TitleInstall = "Install dependencies"
)

const InstallSkipReason = "Pass --install to automatically install dependencies"

// Scaffolder creates projects from the templates of one Source.
type Scaffolder struct {
	source  Source
	options *options
}

func NewScaffolder(src Source, opts ...Option) *Scaffolder {
	return &Scaffolder{
		source:  src,
		options: defaultOptions().apply(opts...),
	}
}

// Result describes what a run produced. Paths are relative to Target.
type Result struct {
	Template       string
	Target         string
	FilesCreated   []string
	DirsCreated    []string
	LinksCreated   []string
	Skipped        []string
	PackageManager string
}

// Source returns the templates root.
func (s *Scaffolder) Source() Source {
	return s.source
}

// Locate is the package-level Locate with the probe result logged.
func (s *Scaffolder) Locate(ctx context.Context, name string) (*Template, error) {
	logger := s.options.logger

	if Exists(ctx, s.source, name) {
		logger.Debug("found template", "name", name, "root", s.source.String())
	} else {
		logger.Debug("template not found", "name", name, "root", s.source.String())
	}

	return Locate(ctx, s.source, name)
}

// Create locates the template and runs the copy, git and install tasks in
// order. The returned Result is non-nil once the template has been located,
// even when a task fails.
func (s *Scaffolder) Create(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	tmpl, err := s.Locate(ctx, opts.Template)
	if err != nil {
		return nil, err
	}
	opts.TemplateDirectory = tmpl.Dir

	s.options.logger.Debug("scaffolding",
		"template", tmpl.Name,
		"from", opts.TemplateDirectory,
		"into", opts.TargetDirectory,
		"git", opts.Git,
		"install", opts.Install,
	)

	result := &Result{Template: tmpl.Name, Target: opts.TargetDirectory}
	handler := events.Multi(s.options.handler, s.logEvents())
	if err := tasks.Run(ctx, s.Tasks(tmpl, opts, result), handler); err != nil {
		return result, err
	}

	return result, nil
}

// logEvents mirrors task events into the debug log.
func (s *Scaffolder) logEvents() events.Handler {
	logger := s.options.logger
	return events.HandlerFunc(func(event events.Event) {
		keyvals := []any{"task", event.Title, "status", event.Kind.String()}
		if event.Reason != "" {
			keyvals = append(keyvals, "reason", event.Reason)
		}
		if event.Error != nil {
			keyvals = append(keyvals, "err", event.Error)
		}
		logger.Debug("task", keyvals...)
	})
}

// Tasks builds the fixed task list for one run. Actions record into result.
func (s *Scaffolder) Tasks(tmpl *Template, opts Options, result *Result) []tasks.Task {
	logger := s.options.logger
	r := &loggingRunner{runner: s.options.runner, logger: logger}

	return []tasks.Task{
		{
			Title: TitleCopy,
			Action: func(ctx context.Context) error {
				res, err := copier.Copy(ctx, tmpl.FS, opts.TargetDirectory, copyOptions(tmpl))
				if res != nil {
					result.FilesCreated = res.FilesCreated
					result.DirsCreated = res.DirsCreated
					result.LinksCreated = res.LinksCreated
					result.Skipped = res.Skipped
					for _, p := range res.LinksCreated {
						logger.Debug("created symlink", "path", p)
					}
					for _, p := range res.Skipped {
						logger.Info("kept existing file", "path", p)
					}
				}
				if err != nil {
					return fmt.Errorf("copying %s: %w", opts.TemplateDirectory, err)
				}
				return nil
			},
		},
		{
			Title:   TitleGit,
			Enabled: func() bool { return opts.Git },
			Action: func(ctx context.Context) error {
				return vcs.Init(ctx, r, opts.TargetDirectory)
			},
		},
		{
			Title: TitleInstall,
			Skip: func() string {
				if opts.Install {
					return ""
				}
				return InstallSkipReason
			},
			Action: func(ctx context.Context) error {
				m, err := pkgmgr.Detect(opts.TargetDirectory, opts.PackageManager)
				if err != nil {
					return err
				}
				logger.Debug("using package manager", "manager", m.Name, "command", m.String())
				result.PackageManager = m.Name
				return pkgmgr.Install(ctx, r, opts.TargetDirectory, m)
			},
		},
	}
}

func copyOptions(tmpl *Template) copier.Options {
	opts := copier.Options{Exclude: []string{ManifestFile}}
	if tmpl.Manifest != nil {
		opts.Ignore = tmpl.Manifest.Ignore
		opts.Renames = tmpl.Manifest.Renames
	}
	return opts
}

// loggingRunner logs every command line before running it.
type loggingRunner struct {
	runner runner.Runner
	logger *log.Logger
}

func (l *loggingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	l.logger.Debug("running", "cmd", runner.Command(name, args...), "dir", dir)
	return l.runner.Run(ctx, dir, name, args...)
}
