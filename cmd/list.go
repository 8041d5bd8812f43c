package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/olimci/sprout/pkg/runner"
	"github.com/olimci/sprout/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

func (a *app) list(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(a.stderr, cmd.Bool("verbose"))

	s, err := a.loadSettings(cmd, logger)
	if err != nil {
		return err
	}

	r := a.runner
	if r == nil {
		r = runner.NewExecRunner()
	}

	src, err := a.source(s.templates, r)
	if err != nil {
		return err
	}
	defer src.Close()

	infos, err := scaffold.List(ctx, src)
	if err != nil {
		return err
	}

	printTemplates(a.stdout, src, infos)
	return nil
}

func printTemplates(out io.Writer, src scaffold.Source, infos []scaffold.Info) {
	if len(infos) == 0 {
		fmt.Fprintf(out, "No templates found in %s\n", src)
		return
	}

	fmt.Fprintf(out, "Available templates (%s):\n", src)
	fmt.Fprintln(out)

	for _, info := range infos {
		line := fmt.Sprintf("  %-12s  %s", info.Name, info.Description)
		if !info.Compatible {
			line += fmt.Sprintf(" (requires sprout %s)", info.Requires)
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use: sprout <template> [directory]")
}
