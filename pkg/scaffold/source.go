package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/olimci/sprout/pkg/runner"
	"github.com/olimci/sprout/pkg/vcs"
)

// Source is a templates root: a tree whose top-level directories are templates.
type Source interface {
	FS(context.Context) (fs.FS, error)
	// String describes the root for messages, e.g. a path or a URL.
	String() string
	Close() error
}

// localSource is a Source backed by a directory on disk.
type localSource interface {
	Source
	Path() string
}

var gitKnownHosts = []string{
	"github.com/",
	"gitlab.com/",
	"bitbucket.org/",
	"codeberg.org/",
}

// Resolve picks a Source for target: a git URL or host shorthand is cloned, any
// other value is a local directory.
func Resolve(target string, r runner.Runner) (Source, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("empty templates location")
	}

	if isRemoteURL(target) {
		return NewRemoteSource(target, r), nil
	}

	info, err := os.Stat(target)
	if err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("templates location %s is not a directory", target)
		}
		return NewOSSource(target), nil
	}

	if looksLikeGitShorthand(target) {
		return NewRemoteSource("https://"+target, r), nil
	}

	return nil, fmt.Errorf("cannot resolve templates location %s: %w", target, err)
}

// FSSource wraps any io/fs.FS, optionally rooted at a subdirectory.
func NewFSSource(fsys fs.FS, root, name string) *FSSource {
	return &FSSource{fs: fsys, root: root, name: name}
}

type FSSource struct {
	fs   fs.FS
	root string
	name string
}

func (f *FSSource) FS(ctx context.Context) (fs.FS, error) {
	if f.root == "" || f.root == "." {
		return f.fs, nil
	}
	return fs.Sub(f.fs, f.root)
}

func (f *FSSource) String() string {
	return f.name
}

func (f *FSSource) Close() error {
	return nil
}

// OSSource wraps a local directory with os.DirFS. Relative paths are made
// absolute against the working directory.
func NewOSSource(path string) *OSSource {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &OSSource{path: path}
}

type OSSource struct {
	path string
}

func (o *OSSource) FS(ctx context.Context) (fs.FS, error) {
	return os.DirFS(o.path), nil
}

func (o *OSSource) String() string {
	return o.path
}

// Path returns the absolute directory on disk.
func (o *OSSource) Path() string {
	return o.path
}

func (o *OSSource) Close() error {
	return nil
}

// RemoteSource shallow-clones a git repository into a temporary directory on
// first use. Close removes the clone.
func NewRemoteSource(url string, r runner.Runner) *RemoteSource {
	if r == nil {
		r = runner.NewExecRunner()
	}
	return &RemoteSource{url: url, runner: r}
}

type RemoteSource struct {
	url    string
	runner runner.Runner

	tempDir string
	once    sync.Once
	err     error
}

func (r *RemoteSource) FS(ctx context.Context) (fs.FS, error) {
	r.once.Do(func() {
		r.tempDir, r.err = r.clone(ctx)
	})

	if r.err != nil {
		return nil, r.err
	}

	return os.DirFS(r.tempDir), nil
}

func (r *RemoteSource) String() string {
	return r.url
}

func (r *RemoteSource) Close() error {
	if r.tempDir != "" {
		return os.RemoveAll(r.tempDir)
	}
	return nil
}

func (r *RemoteSource) clone(ctx context.Context) (string, error) {
	tempDir, err := os.MkdirTemp("", "sprout-templates-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}

	if err := r.runner.Run(ctx, "", vcs.Binary, "clone", "--depth", "1", r.url, tempDir); err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("cloning templates from %s: %w", r.url, err)
	}

	return tempDir, nil
}

func isRemoteURL(target string) bool {
	return strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "git://") ||
		strings.HasPrefix(target, "ssh://") ||
		strings.HasPrefix(target, "git@")
}

func looksLikeGitShorthand(target string) bool {
	for _, host := range gitKnownHosts {
		if strings.HasPrefix(target, host) {
			return true
		}
	}

	return false
}
