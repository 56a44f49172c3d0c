package inject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"

	"github.com/mithrel/catalogsync/pkg/api"
)

type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

var DefaultExtensions = []string{".md", ".html", ".htm"}

// FileIOError reports a target document that could not be read or written.
// The file is skipped and the run continues.
type FileIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }

// FileResult is the outcome for one document.
type FileResult struct {
	Path        string
	Status      Status
	Report      Report
	Fingerprint string
	Err         error
}

// API converts the result to its serialisable form.
func (r FileResult) API() api.FileReport {
	out := api.FileReport{
		Path:        r.Path,
		Status:      string(r.Status),
		Blocks:      r.Report.Blocks,
		Unresolved:  r.Report.Unresolved,
		Fingerprint: r.Fingerprint,
	}
	for _, w := range r.Report.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// Summary collects the results of a batch in processing order.
type Summary struct {
	Results []FileResult
}

// Count returns the number of results with status s.
func (s Summary) Count(st Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

func (s Summary) API() api.SyncSummary {
	out := api.SyncSummary{
		Updated:   s.Count(StatusUpdated),
		Unchanged: s.Count(StatusUnchanged),
		Skipped:   s.Count(StatusSkipped),
		Failed:    s.Count(StatusFailed),
	}
	out.Files = make([]api.FileReport, 0, len(s.Results))
	for _, r := range s.Results {
		out.Files = append(out.Files, r.API())
	}
	return out
}

type ProcessorOption func(*Processor)

// WithExtensions limits directory processing to files with these
// extensions (case-insensitive, leading dot optional).
func WithExtensions(exts []string) ProcessorOption {
	return func(p *Processor) {
		p.exts = map[string]bool{}
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			p.exts[e] = true
		}
	}
}

// WithDryRun computes results without writing any file.
func WithDryRun(on bool) ProcessorOption { return func(p *Processor) { p.dryRun = on } }

func WithProcessorLogger(l *zap.Logger) ProcessorOption {
	return func(p *Processor) { p.log = l }
}

// Processor applies an Injector to files on disk, one at a time.
type Processor struct {
	inj    *Injector
	exts   map[string]bool
	dryRun bool
	log    *zap.Logger
}

func NewProcessor(inj *Injector, opts ...ProcessorOption) *Processor {
	p := &Processor{inj: inj}
	WithExtensions(DefaultExtensions)(p)
	for _, o := range opts {
		o(p)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// ProcessFile injects one document and writes it back when it changed.
func (p *Processor) ProcessFile(path string) FileResult {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return p.fail(res, &FileIOError{Op: "stat", Path: path, Err: err})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p.fail(res, &FileIOError{Op: "read", Path: path, Err: err})
	}
	if optedOut(data) {
		res.Status = StatusSkipped
		res.Fingerprint = api.Fingerprint(data)
		p.log.Debug("skipping document", zap.String("path", path), zap.String("reason", "catalog_sync: false"))
		return res
	}

	out, rep := p.inj.Inject(string(data))
	res.Report = rep
	res.Fingerprint = api.FingerprintString(out)
	if res.Fingerprint == api.Fingerprint(data) {
		res.Status = StatusUnchanged
		return res
	}

	res.Status = StatusUpdated
	if p.dryRun {
		return res
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return p.fail(res, &FileIOError{Op: "write", Path: path, Err: err})
	}
	p.log.Info("document updated", zap.String("path", path), zap.Int("blocks", rep.Blocks))
	return res
}

// ProcessDir processes every matching file under root in lexical order.
// Hidden directories are not descended. Per-file failures are recorded in
// the summary; the returned error is reserved for an unusable root or a
// cancelled context.
func (p *Processor) ProcessDir(ctx context.Context, root string) (Summary, error) {
	var sum Summary
	info, err := os.Stat(root)
	if err != nil {
		return sum, &FileIOError{Op: "stat", Path: root, Err: err}
	}
	if !info.IsDir() {
		return sum, &FileIOError{Op: "walk", Path: root, Err: errors.New("not a directory")}
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			sum.Results = append(sum.Results, p.fail(FileResult{Path: path}, &FileIOError{Op: "read", Path: path, Err: walkErr}))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !p.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		sum.Results = append(sum.Results, p.ProcessFile(path))
		return nil
	})
	return sum, err
}

func (p *Processor) fail(res FileResult, err error) FileResult {
	res.Status = StatusFailed
	res.Err = err
	p.log.Warn("document failed", zap.String("path", res.Path), zap.Error(err))
	return res
}

type documentMeta struct {
	CatalogSync *bool `yaml:"catalog_sync" toml:"catalog_sync" json:"catalog_sync"`
}

// optedOut reports whether the document's front matter disables syncing.
// Documents without front matter, or with front matter that does not parse,
// are processed.
func optedOut(data []byte) bool {
	var meta documentMeta
	if _, err := frontmatter.Parse(bytes.NewReader(data), &meta); err != nil {
		return false
	}
	return meta.CatalogSync != nil && !*meta.CatalogSync
}
