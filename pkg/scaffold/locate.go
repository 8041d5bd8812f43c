package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyName    = errors.New("template name is empty")
	ErrInvalidName  = errors.New("template name must be a path inside the templates root")
	ErrNotDirectory = errors.New("not a directory")
)

// TemplateNotFoundError is returned by Locate before any step runs.
type TemplateNotFoundError struct {
	Name string
	Dir  string
	Err  error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found at %s: %v", e.Name, e.Dir, e.Err)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return e.Err
}

// Template is a located template directory.
type Template struct {
	Name string
	// Dir is the absolute template directory for local sources. Embedded and
	// cloned sources have no lasting path on disk, so Dir is the source name
	// followed by the template name.
	Dir string
	// FS is rooted at the template directory.
	FS fs.FS
	// Manifest is nil when the template has no ManifestFile.
	Manifest *Manifest
}

// Description returns the manifest description, if any.
func (t *Template) Description() string {
	if t.Manifest == nil {
		return ""
	}
	return t.Manifest.Description
}

// Locate resolves name to a directory under the templates root and checks
// that it can be listed. A template manifest is decoded and its version
// constraint checked.
func Locate(ctx context.Context, src Source, name string) (*Template, error) {
	name = strings.TrimSpace(name)
	dir := templateDir(src, name)

	if name == "" {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: ErrEmptyName}
	}
	if name == "." || !fs.ValidPath(name) {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: ErrInvalidName}
	}

	root, err := src.FS(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening templates %s: %w", src, err)
	}

	info, err := fs.Stat(root, name)
	if err != nil {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: ErrNotDirectory}
	}

	if _, err := fs.ReadDir(root, name); err != nil {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: err}
	}

	var sub fs.FS
	if _, ok := src.(localSource); ok {
		// rooted directly on disk so symlinks can still be read
		sub = os.DirFS(dir)
	} else if sub, err = fs.Sub(root, name); err != nil {
		return nil, &TemplateNotFoundError{Name: name, Dir: dir, Err: err}
	}

	manifest, err := readManifest(sub)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	if err := manifest.CheckVersion(); err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	return &Template{
		Name:     name,
		Dir:      dir,
		FS:       sub,
		Manifest: manifest,
	}, nil
}

// Exists is a non-fatal probe for name under src.
func Exists(ctx context.Context, src Source, name string) bool {
	if !fs.ValidPath(name) || name == "." {
		return false
	}
	root, err := src.FS(ctx)
	if err != nil {
		return false
	}
	_, err = fs.Stat(root, name)
	return err == nil
}

func templateDir(src Source, name string) string {
	if local, ok := src.(localSource); ok {
		return filepath.Join(local.Path(), filepath.FromSlash(name))
	}

	root := strings.TrimSuffix(src.String(), "/")
	if name == "" {
		return root
	}
	return root + "/" + name
}
