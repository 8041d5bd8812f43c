// Package copier copies a template tree onto disk without ever replacing a
// path that already exists at the destination.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

var ErrOutsideTarget = errors.New("path escapes target directory")

type Options struct {
	// Exclude lists exact slash-separated source paths that are never copied.
	Exclude []string
	// Ignore lists glob patterns; a pattern without "/" also matches base names.
	Ignore []string
	// Renames maps a source name to a destination name. It applies to every
	// segment of a path, so renaming a directory moves its contents too.
	Renames map[string]string
}

// Result contains destination paths relative to the target, slash-separated.
type Result struct {
	FilesCreated []string
	DirsCreated  []string
	LinksCreated []string

	// Skipped holds paths that already existed and were left untouched.
	Skipped []string
}

// CopyError reports the operation and path that failed.
type CopyError struct {
	Op   string
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	// os errors already name the operation and path
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	if errors.As(e.Err, &pathErr) || errors.As(e.Err, &linkErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Copy walks fsys from its root and recreates it under dest. Nothing is rolled
// back on failure; whatever was written before the error stays on disk.
func Copy(ctx context.Context, fsys fs.FS, dest string, opts Options) (*Result, error) {
	result := &Result{
		FilesCreated: make([]string, 0),
		DirsCreated:  make([]string, 0),
		LinksCreated: make([]string, 0),
		Skipped:      make([]string, 0),
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return result, &CopyError{Op: "create", Path: dest, Err: err}
	}

	err := fs.WalkDir(fsys, ".", func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return &CopyError{Op: "read", Path: src, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if src == "." {
			return nil
		}

		if slices.Contains(opts.Exclude, src) || matchesGlobs(src, opts.Ignore) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := transformPath(src, opts.Renames)
		local := filepath.FromSlash(rel)
		if !filepath.IsLocal(local) {
			return &CopyError{Op: "resolve", Path: src, Err: ErrOutsideTarget}
		}
		target := filepath.Join(dest, local)

		switch {
		case d.IsDir():
			return copyDir(target, rel, result)
		case d.Type()&fs.ModeSymlink != 0:
			return copyLink(fsys, src, target, rel, result)
		case d.Type().IsRegular():
			return copyFile(fsys, src, target, rel, result)
		default:
			// devices, sockets and pipes have no place in a template
			return nil
		}
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

func copyDir(target, rel string, result *Result) error {
	info, err := os.Lstat(target)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		result.Skipped = append(result.Skipped, rel)
		return fs.SkipDir
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &CopyError{Op: "stat", Path: target, Err: err}
	}

	if err := os.Mkdir(target, 0755); err != nil {
		return &CopyError{Op: "mkdir", Path: target, Err: err}
	}
	result.DirsCreated = append(result.DirsCreated, rel)
	return nil
}

func copyFile(fsys fs.FS, src, target, rel string, result *Result) error {
	if _, err := os.Lstat(target); err == nil {
		result.Skipped = append(result.Skipped, rel)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &CopyError{Op: "stat", Path: target, Err: err}
	}

	source, err := fsys.Open(src)
	if err != nil {
		return &CopyError{Op: "open", Path: src, Err: err}
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return &CopyError{Op: "stat", Path: src, Err: err}
	}
	if info.IsDir() {
		return nil
	}

	// embedded files report 0444; the owner always gets read and write
	perm := info.Mode().Perm() | 0o600

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if errors.Is(err, fs.ErrExist) {
		result.Skipped = append(result.Skipped, rel)
		return nil
	}
	if err != nil {
		return &CopyError{Op: "create", Path: target, Err: err}
	}

	if _, err := io.Copy(dst, source); err != nil {
		dst.Close()
		return &CopyError{Op: "write", Path: target, Err: err}
	}
	if err := dst.Close(); err != nil {
		return &CopyError{Op: "write", Path: target, Err: err}
	}

	result.FilesCreated = append(result.FilesCreated, rel)
	return nil
}

func copyLink(fsys fs.FS, src, target, rel string, result *Result) error {
	if _, ok := fsys.(fs.ReadLinkFS); !ok {
		return copyFile(fsys, src, target, rel, result)
	}

	if _, err := os.Lstat(target); err == nil {
		result.Skipped = append(result.Skipped, rel)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &CopyError{Op: "stat", Path: target, Err: err}
	}

	link, err := fs.ReadLink(fsys, src)
	if err != nil {
		return &CopyError{Op: "readlink", Path: src, Err: err}
	}

	if err := os.Symlink(link, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			result.Skipped = append(result.Skipped, rel)
			return nil
		}
		return &CopyError{Op: "symlink", Path: target, Err: err}
	}

	result.LinksCreated = append(result.LinksCreated, rel)
	return nil
}

// transformPath applies renames to each segment of a slash path.
func transformPath(rel string, renames map[string]string) string {
	if len(renames) == 0 {
		return rel
	}
	segments := strings.Split(rel, "/")
	for i, segment := range segments {
		if newName, ok := renames[segment]; ok && newName != "" {
			segments[i] = newName
		}
	}
	return path.Join(segments...)
}
