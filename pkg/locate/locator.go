// Package locate finds the file that declares a WordPress plugin or theme in a
// workspace and returns its header metadata.
//
// Plugin detection walks every file with a plugin source extension (".php" by
// default) in lexical order and stops at the first one whose headers carry a
// non-empty Name. Theme detection only looks at the stylesheet at the workspace
// root. Neither keeps state between calls: each call lists and reads again.
package locate

import (
	"context"
	"errors"
	"fmt"

	"github.com/croemmich/wpheader/pkg/header"
	"github.com/croemmich/wpheader/pkg/log"
	"github.com/croemmich/wpheader/pkg/workspace"
)

const (
	// DefaultStylesheet is the theme file examined at the workspace root.
	DefaultStylesheet = "style.css"
	// DefaultPluginExtension is the plugin source extension used when none is configured.
	DefaultPluginExtension = ".php"
)

// Option configures a Locator.
type Option func(*Locator)

// WithExtensions sets the plugin source extensions. Empty input keeps the default.
func WithExtensions(exts ...string) Option {
	return func(l *Locator) {
		if normalized := workspace.NormalizeExtensions(exts); len(normalized) > 0 {
			l.extensions = normalized
		}
	}
}

// WithPrefixSize sets how many leading bytes of each candidate are read.
// Non-positive values keep the default.
func WithPrefixSize(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.prefixSize = n
		}
	}
}

// WithPatterns replaces the pattern set used for kind, e.g. to add extra fields.
func WithPatterns(kind header.Kind, set *header.PatternSet) Option {
	return func(l *Locator) {
		if set != nil {
			l.patterns[kind] = set
		}
	}
}

// WithStylesheet changes the theme stylesheet name.
func WithStylesheet(name string) Option {
	return func(l *Locator) {
		if name != "" {
			l.stylesheet = name
		}
	}
}

// Locator scans one workspace. It is not modified after NewLocator returns, so
// one Locator may be shared by concurrent callers.
type Locator struct {
	ws         *workspace.Workspace
	extensions []string
	prefixSize int
	stylesheet string
	patterns   map[header.Kind]*header.PatternSet
}

// NewLocator returns a locator over ws with default settings adjusted by opts.
func NewLocator(ws *workspace.Workspace, opts ...Option) *Locator {
	l := &Locator{
		ws:         ws,
		extensions: []string{DefaultPluginExtension},
		prefixSize: workspace.DefaultPrefixSize,
		stylesheet: DefaultStylesheet,
		patterns: map[header.Kind]*header.PatternSet{
			header.KindPlugin: header.Patterns(header.KindPlugin),
			header.KindTheme:  header.Patterns(header.KindTheme),
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the configured plugin extensions.
func (l *Locator) Extensions() []string {
	out := make([]string, len(l.extensions))
	copy(out, l.extensions)
	return out
}

// ScanState is the terminal state of a scan.
type ScanState string

const (
	StateScanning  ScanState = "scanning"
	StateFound     ScanState = "found"
	StateExhausted ScanState = "exhausted"
)

// CandidateFailure records a candidate that could not be read.
type CandidateFailure struct {
	Path string
	Err  error
}

// ScanResult describes one scan. It is informational only.
type ScanResult struct {
	Kind       header.Kind
	State      ScanState
	Candidates []string
	Examined   int
	Match      string
	Failures   []CandidateFailure
}

// LocatePlugin returns the first plugin file in listing order whose headers
// have a Name. It returns ErrNotFound when no candidate qualifies and an
// *IOError when the workspace could not be listed, or when nothing qualified
// and at least one candidate could not be read.
func (l *Locator) LocatePlugin(ctx context.Context) (*Plugin, error) {
	p, _, err := l.locatePlugin(ctx)
	return p, err
}

// LocateTheme reads the stylesheet at the workspace root and returns its
// metadata if it has a Name. A missing stylesheet is ErrNotFound; an
// unreadable one is an *IOError.
func (l *Locator) LocateTheme(ctx context.Context) (*Theme, error) {
	t, _, err := l.locateTheme(ctx)
	return t, err
}

// Detect tries the theme stylesheet first, then plugin sources. I/O failures
// from the theme step are returned immediately.
func (l *Locator) Detect(ctx context.Context) (Artifact, error) {
	a, _, err := l.DetectTrace(ctx)
	return a, err
}

// Locate dispatches on kind.
func (l *Locator) Locate(ctx context.Context, kind header.Kind) (Artifact, error) {
	a, _, err := l.LocateTrace(ctx, kind)
	return a, err
}

// LocateTrace is Locate that also returns the trace of the scan. The trace is
// nil only for an unknown kind.
func (l *Locator) LocateTrace(ctx context.Context, kind header.Kind) (Artifact, *ScanResult, error) {
	switch kind {
	case header.KindPlugin:
		p, scan, err := l.locatePlugin(ctx)
		if err != nil {
			return nil, scan, err
		}
		return p, scan, nil
	case header.KindTheme:
		t, scan, err := l.locateTheme(ctx)
		if err != nil {
			return nil, scan, err
		}
		return t, scan, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", header.ErrUnknownKind, kind)
	}
}

// DetectTrace is Detect that also returns the trace of the last scan it ran.
func (l *Locator) DetectTrace(ctx context.Context) (Artifact, *ScanResult, error) {
	theme, scan, err := l.locateTheme(ctx)
	if err == nil {
		return theme, scan, nil
	}
	if !IsNotFound(err) {
		return nil, scan, err
	}
	plugin, scan, err := l.locatePlugin(ctx)
	if err != nil {
		return nil, scan, err
	}
	return plugin, scan, nil
}

func (l *Locator) locatePlugin(ctx context.Context) (*Plugin, *ScanResult, error) {
	scan := &ScanResult{Kind: header.KindPlugin, State: StateScanning}

	candidates, err := l.ws.List(ctx, workspace.HasExtension(l.extensions...))
	if err != nil {
		scan.State = StateExhausted
		if isContextErr(err) {
			return nil, scan, err
		}
		return nil, scan, &IOError{Op: "list", Path: l.ws.Root(), Err: err}
	}
	scan.Candidates = candidates
	log.Debug("Plugin candidates listed", "workspace", l.ws.Root(), "count", len(candidates), "extensions", l.extensions)

	h, path, err := l.scan(ctx, scan, candidates)
	if err != nil {
		return nil, scan, err
	}
	p, err := NewPlugin(path, h)
	return p, scan, err
}

func (l *Locator) locateTheme(ctx context.Context) (*Theme, *ScanResult, error) {
	scan := &ScanResult{Kind: header.KindTheme, State: StateScanning}

	exists, err := l.ws.Exists(l.stylesheet)
	if err != nil {
		scan.State = StateExhausted
		return nil, scan, &IOError{Op: "read", Path: l.stylesheet, Err: err}
	}
	if !exists {
		scan.State = StateExhausted
		log.Debug("Theme stylesheet not present", "workspace", l.ws.Root(), "file", l.stylesheet)
		return nil, scan, fmt.Errorf("%w: no %s in %s", ErrNotFound, l.stylesheet, l.ws.Root())
	}
	scan.Candidates = []string{l.stylesheet}

	h, path, err := l.scan(ctx, scan, scan.Candidates)
	if err != nil {
		return nil, scan, err
	}
	t, err := NewTheme(path, h)
	return t, scan, err
}

// scan runs the linear first-match loop shared by both kinds. Cancellation is
// checked between candidates only.
func (l *Locator) scan(ctx context.Context, scan *ScanResult, candidates []string) (header.Headers, string, error) {
	set := l.patterns[scan.Kind]

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			scan.State = StateExhausted
			return nil, "", err
		}
		scan.Examined++

		buf, err := l.ws.ReadPrefix(path, l.prefixSize)
		if err != nil {
			log.Warn("Skipping unreadable candidate", "kind", scan.Kind, "path", path, "error", err)
			scan.Failures = append(scan.Failures, CandidateFailure{Path: path, Err: err})
			continue
		}

		h := header.Extract(buf, set)
		if h.Value(header.FieldName) == "" {
			log.Debug("Candidate has no Name header", "kind", scan.Kind, "path", path, "fields", h.Fields())
			continue
		}

		scan.State = StateFound
		scan.Match = path
		log.Debug("Artifact header found", "kind", scan.Kind, "path", path, "name", h.Value(header.FieldName))
		return h, path, nil
	}

	scan.State = StateExhausted
	if len(scan.Failures) > 0 {
		errs := make([]error, 0, len(scan.Failures))
		for _, f := range scan.Failures {
			errs = append(errs, f.Err)
		}
		return nil, "", &IOError{Op: "read", Path: scan.Failures[0].Path, Err: errors.Join(errs...)}
	}
	return nil, "", fmt.Errorf("%w: no %s header among %d candidate(s) in %s", ErrNotFound, scan.Kind, len(candidates), l.ws.Root())
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
