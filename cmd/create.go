package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/olimci/sprout/cmd/embed"
	"github.com/olimci/sprout/cmd/ui/tasks_ui"
	"github.com/olimci/sprout/pkg/config"
	"github.com/olimci/sprout/pkg/events"
	"github.com/olimci/sprout/pkg/runner"
	"github.com/olimci/sprout/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

var ErrMissingTemplate = errors.New("missing template name")

// settings are the create inputs after flags, environment and the config file
// have been merged.
type settings struct {
	templates      string
	git            bool
	install        bool
	packageManager string
}

// resolveSettings applies flag/env > config file > default.
func resolveSettings(cmd *cli.Command, cfg *config.Config) settings {
	s := settings{
		templates:      cfg.Templates,
		git:            cfg.Git,
		install:        cfg.Install,
		packageManager: cfg.PackageManager,
	}

	if cmd.IsSet("templates") {
		s.templates = cmd.String("templates")
	}
	if cmd.IsSet("git") {
		s.git = cmd.Bool("git")
	}
	if cmd.IsSet("install") {
		s.install = cmd.Bool("install")
	}
	if cmd.IsSet("package-manager") {
		s.packageManager = cmd.String("package-manager")
	}

	return s
}

func (a *app) loadSettings(cmd *cli.Command, logger *log.Logger) (settings, error) {
	cfg, path, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return settings{}, err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return resolveSettings(cmd, cfg), nil
}

// source opens the templates root; an empty location means the built-in
// templates.
func (a *app) source(location string, r runner.Runner) (scaffold.Source, error) {
	if location == "" {
		return scaffold.NewFSSource(embed.Templates, embed.Root, "built-in templates"), nil
	}
	return scaffold.Resolve(location, r)
}

func (a *app) create(ctx context.Context, cmd *cli.Command) error {
	verbose := cmd.Bool("verbose")
	live := !cmd.Bool("plain") && isTerminal(a.stdout)

	// while the live view owns the terminal, log lines wait in a buffer
	var logBuf bytes.Buffer
	logOut := a.stderr
	if live {
		logOut = &logBuf
	}
	logger := newLogger(logOut, verbose)
	defer func() {
		if logBuf.Len() > 0 {
			a.stderr.Write(logBuf.Bytes())
		}
	}()

	s, err := a.loadSettings(cmd, logger)
	if err != nil {
		return err
	}

	r := a.runner
	if r == nil {
		execRunner := runner.NewExecRunner()
		if verbose && !live {
			execRunner.Stdout, execRunner.Stderr = a.stderr, a.stderr
		}
		r = execRunner
	}

	src, err := a.source(s.templates, r)
	if err != nil {
		return err
	}
	defer src.Close()

	opts := scaffold.Options{
		Template:        cmd.Args().Get(0),
		TargetDirectory: cmd.Args().Get(1),
		Git:             s.git,
		Install:         s.install,
		PackageManager:  s.packageManager,
	}

	if opts.Template == "" {
		if !a.interactive || cmd.Bool("yes") {
			return fmt.Errorf("%w (usage: sprout [flags] <template> [directory])", ErrMissingTemplate)
		}

		answers, err := a.prompt(ctx, src, opts.Git, cmd.IsSet("git"))
		if err != nil {
			return err
		}
		opts.Template = answers.template
		opts.Git = answers.git
	}

	var result *scaffold.Result
	work := func(ctx context.Context, handler events.Handler) error {
		scaffolder := scaffold.NewScaffolder(src,
			scaffold.WithRunner(r),
			scaffold.WithHandler(handler),
			scaffold.WithLogger(logger),
		)
		res, err := scaffolder.Create(ctx, opts)
		result = res
		return err
	}

	if live {
		err = tasks_ui.Run(ctx, a.stdin, a.stdout, work)
	} else {
		err = work(ctx, newLinePrinter(a.stdout))
	}
	if err != nil {
		return err
	}

	printDone(a.stdout, result)
	return nil
}

// relativeTarget renders target relative to the working directory for hints.
func relativeTarget(target string) string {
	wd, err := os.Getwd()
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(wd, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return rel
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "sprout",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
