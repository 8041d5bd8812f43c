package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/olimci/sprout/pkg/pkgmgr"
	"github.com/olimci/sprout/pkg/runner"
	"github.com/urfave/cli/v3"
)

// app carries the process environment so commands can be run against
// buffers and fakes.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// runner is nil outside tests; an ExecRunner is built per run.
	runner runner.Runner

	// interactive is true when both stdin and stdout are terminals.
	interactive bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: isTerminal(stdin) && isTerminal(stdout),
	}
}

// Execute runs the command line in args, os.Args style. Errors are reported
// on stderr before being returned.
func Execute(ctx context.Context, args []string) error {
	return newApp(os.Stdin, os.Stdout, os.Stderr).run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	if err := a.command().Run(ctx, args); err != nil {
		printError(a.stderr, err)
		return err
	}
	return nil
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "sprout",
		Usage:     "Create a new project from a template",
		ArgsUsage: "<template> [directory]",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags:     createFlags(),
		Action:    a.create,
		Commands: []*cli.Command{
			{
				Name:      "create",
				Aliases:   []string{"new"},
				Usage:     "Create a new project from a template",
				ArgsUsage: "<template> [directory]",
				Action:    a.create,
			},
			{
				Name:   "list",
				Usage:  "List available templates",
				Action: a.list,
			},
			{
				Name:   "version",
				Usage:  "print version",
				Action: a.version,
			},
		},
	}
}

// createFlags are declared on the root and inherited by every subcommand.
func createFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "git",
			Aliases: []string{"g"},
			Usage:   "Initialize a git repository",
			Sources: cli.EnvVars("SPROUT_GIT"),
		},
		&cli.BoolFlag{
			Name:    "install",
			Aliases: []string{"i"},
			Usage:   "Install dependencies",
			Sources: cli.EnvVars("SPROUT_INSTALL"),
		},
		&cli.StringFlag{
			Name:    "templates",
			Aliases: []string{"T"},
			Usage:   "Templates root (local directory or git URL; defaults to the built-in templates)",
			Sources: cli.EnvVars("SPROUT_TEMPLATES"),
		},
		&cli.StringFlag{
			Name:    "package-manager",
			Aliases: []string{"p"},
			Usage:   "Package manager to install with (" + strings.Join(pkgmgr.Names(), "|") + ")",
			Sources: cli.EnvVars("SPROUT_PACKAGE_MANAGER"),
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Never prompt; use defaults",
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "Print one line per task instead of the live view",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (.toml, .yaml, .yml, .json)",
			Sources: cli.EnvVars("SPROUT_CONFIG"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug output and command output to stderr",
		},
	}
}
