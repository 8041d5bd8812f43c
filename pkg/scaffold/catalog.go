package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/olimci/sprout/pkg/version"
	"golang.org/x/sync/errgroup"
)

// Info summarizes one template for listings and prompts.
type Info struct {
	Name        string
	Description string
	Requires    string
	Compatible  bool
}

// List returns every template directory under src in name order. Hidden
// directories are ignored. Manifests are read concurrently.
func List(ctx context.Context, src Source) ([]Info, error) {
	root, err := src.FS(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening templates %s: %w", src, err)
	}

	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("reading templates %s: %w", src, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}

	infos := make([]Info, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sub, err := fs.Sub(root, name)
			if err != nil {
				return fmt.Errorf("template %q: %w", name, err)
			}

			m, err := readManifest(sub)
			if err != nil {
				return fmt.Errorf("template %q: %w", name, err)
			}

			info := Info{Name: name, Compatible: true}
			if m != nil {
				info.Description = m.Description
				info.Requires = m.Requires
				ok, err := version.CurrentSatisfies(m.Requires)
				if err != nil {
					return fmt.Errorf("template %q: %w", name, err)
				}
				info.Compatible = ok
			}

			infos[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return infos, nil
}
