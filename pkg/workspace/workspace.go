// Package workspace provides read access to a source tree through an afero filesystem.
//
// The locator needs only two things from a workspace: a recursive, deterministic
// listing of files that satisfy a predicate, and a bounded read of a file's first
// bytes. Tests swap the OS filesystem for afero.NewMemMapFs.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/croemmich/wpheader/pkg/log"
)

// DefaultPrefixSize is how many leading bytes of a candidate file are examined.
const DefaultPrefixSize = 8192

// Predicate decides whether a listed file is a candidate. rel is slash-separated
// and relative to the workspace root.
type Predicate func(rel string, info os.FileInfo) bool

// Workspace is a directory tree rooted at Root on an afero filesystem.
type Workspace struct {
	fs      afero.Fs
	root    string
	exclude []excludeRule
}

type excludeRule struct {
	pattern string
	glob    glob.Glob
}

// Option configures a Workspace.
type Option func(*Workspace) error

// WithExclude skips files and directories whose root-relative path matches any of
// the glob patterns. Patterns use / as separator; ** crosses directories.
func WithExclude(patterns ...string) Option {
	return func(w *Workspace) error {
		for _, p := range patterns {
			p = strings.TrimPrefix(strings.TrimSpace(p), "/")
			if p == "" {
				continue
			}
			g, err := glob.Compile(p, '/')
			if err != nil {
				return errors.Wrapf(err, "invalid exclude pattern %q", p)
			}
			w.exclude = append(w.exclude, excludeRule{pattern: p, glob: g})
		}
		return nil
	}
}

// New creates a workspace rooted at root. A nil fs means the OS filesystem.
func New(fs afero.Fs, root string, opts ...Option) (*Workspace, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if root == "" {
		root = "."
	}
	w := &Workspace{fs: fs, root: filepath.Clean(root)}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Root returns the workspace root as given (cleaned).
func (w *Workspace) Root() string { return w.root }

// Fs returns the underlying filesystem.
func (w *Workspace) Fs() afero.Fs { return w.fs }

// Excludes returns the configured exclude patterns.
func (w *Workspace) Excludes() []string {
	out := make([]string, len(w.exclude))
	for i, r := range w.exclude {
		out[i] = r.pattern
	}
	return out
}

func (w *Workspace) abs(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *Workspace) excluded(rel string) bool {
	for _, r := range w.exclude {
		if r.glob.Match(rel) {
			return true
		}
	}
	return false
}

// List walks the workspace in lexical order and returns the root-relative paths of
// regular files accepted by pred. A nil pred accepts every file. Symlinks to
// regular files are listed like the files themselves; symlinked directories are
// not descended and dangling links are skipped. Failing to read the root or any
// directory aborts the listing.
func (w *Workspace) List(ctx context.Context, pred Predicate) ([]string, error) {
	var files []string
	err := afero.Walk(w.fs, w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if w.excluded(rel) {
			log.Debug("Excluded from workspace listing", "path", rel)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := w.fs.Stat(path)
			if statErr != nil {
				log.Debug("Skipping dangling symlink", "path", rel, "error", statErr)
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if pred == nil || pred(rel, info) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to list workspace %s", w.root)
	}
	return files, nil
}

// Exists reports whether rel names a regular file in the workspace.
func (w *Workspace) Exists(rel string) (bool, error) {
	info, err := w.fs.Stat(w.abs(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to stat %s", rel)
	}
	return info.Mode().IsRegular(), nil
}

// HasExtension returns a predicate matching files whose lowercase name ends with
// any of exts. Extensions are lowercased and given a leading dot if missing.
func HasExtension(exts ...string) Predicate {
	normalized := NormalizeExtensions(exts)
	return func(_ string, info os.FileInfo) bool {
		name := strings.ToLower(info.Name())
		for _, ext := range normalized {
			if strings.HasSuffix(name, ext) {
				return true
			}
		}
		return false
	}
}

// NormalizeExtensions lowercases, dot-prefixes and de-duplicates extensions,
// dropping blanks.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
