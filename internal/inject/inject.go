// Package inject rewrites previously marked blocks in target documents.
//
// A block is delimited by a wrapper element whose id attribute is the marker
// prefix plus a catalog identifier, e.g. <div id="service-1.2">…</div>. The
// closing tag is found by counting nested wrapper elements by hand; this is
// not a markup parser. It relies on the scanned region being our own earlier
// output: well formed, no self-closing wrappers, no commented-out tags.
package inject

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/render"
)

const (
	DefaultElement = "div"
	DefaultPrefix  = "service-"
)

// Resolver finds the node for an identifier.
type Resolver interface {
	Resolve(raw string) (*catalog.Node, bool)
}

// Renderer renders a node, or an error fragment for a nil node.
type Renderer interface {
	Render(n *catalog.Node, requested string) render.Fragments
}

// UnmatchedBlockError is the warning raised when a wrapper has no matching
// close. Only the open tag is replaced in that case.
type UnmatchedBlockError struct {
	ID     string
	Offset int
	Line   int
}

func (e *UnmatchedBlockError) Error() string {
	return fmt.Sprintf("no closing tag for block %q at line %d", e.ID, e.Line)
}

// Report summarises one Inject call.
type Report struct {
	// Blocks is the number of wrapper occurrences rewritten.
	Blocks     int
	Warnings   []*UnmatchedBlockError
	Unresolved []string
}

type Option func(*Injector)

// WithElement sets the wrapper element name.
func WithElement(name string) Option { return func(in *Injector) { in.element = name } }

// WithPrefix sets the id attribute prefix of wrapper markers.
func WithPrefix(p string) Option { return func(in *Injector) { in.prefix = p } }

// WithMarkerDiscovery makes Inject also rewrite marker ids found in the
// document that are not catalog ids, so that stale references render as
// visible errors instead of being left alone.
func WithMarkerDiscovery(on bool) Option { return func(in *Injector) { in.discover = on } }

func WithLogger(l *zap.Logger) Option { return func(in *Injector) { in.log = l } }

type Injector struct {
	ids      []string
	resolver Resolver
	renderer Renderer
	element  string
	prefix   string
	discover bool
	log      *zap.Logger

	patterns map[string]*regexp.Regexp
	markers  *regexp.Regexp
}

// New builds an injector for every identifier in idx.
func New(idx *catalog.Index, res Resolver, rnd Renderer, opts ...Option) *Injector {
	in := &Injector{
		ids:      idx.IDs(),
		resolver: res,
		renderer: rnd,
		element:  DefaultElement,
		prefix:   DefaultPrefix,
		patterns: map[string]*regexp.Regexp{},
	}
	for _, o := range opts {
		o(in)
	}
	if in.log == nil {
		in.log = zap.NewNop()
	}
	return in
}

// Inject rewrites every marked block in doc. Running it again on its own
// output with the same catalog returns the same bytes.
func (in *Injector) Inject(doc string) (string, Report) {
	var rep Report
	ids := in.ids
	if in.discover {
		ids = append(append([]string(nil), ids...), in.discoverIDs(doc)...)
	}
	for _, id := range ids {
		doc = in.injectID(doc, id, &rep)
	}
	return doc, rep
}

func (in *Injector) injectID(doc, id string, rep *Report) string {
	locs := in.openTag(id).FindAllStringIndex(doc, -1)
	if len(locs) == 0 {
		return doc
	}

	node, ok := in.resolver.Resolve(id)
	if !ok {
		rep.Unresolved = append(rep.Unresolved, id)
		in.log.Warn("unresolved block id", zap.String("id", id))
	}
	block := in.wrap(id, in.renderer.Render(node, id))

	// Last match first, so earlier offsets stay valid.
	for i := len(locs) - 1; i >= 0; i-- {
		start, openEnd := locs[i][0], locs[i][1]
		end, found := in.matchClose(doc, openEnd)
		if !found {
			w := &UnmatchedBlockError{ID: id, Offset: start, Line: 1 + strings.Count(doc[:start], "\n")}
			rep.Warnings = append(rep.Warnings, w)
			in.log.Warn("unmatched block end", zap.String("id", id), zap.Int("line", w.Line))
			end = openEnd
		}
		doc = doc[:start] + block + doc[end:]
		rep.Blocks++
	}
	return doc
}

// matchClose scans forward from pos with depth 1 and returns the offset just
// past the close tag that brings the depth back to zero.
func (in *Injector) matchClose(doc string, pos int) (int, bool) {
	open := "<" + in.element
	closing := "</" + in.element
	depth := 1
	for pos < len(doc) {
		lt := strings.IndexByte(doc[pos:], '<')
		if lt < 0 {
			return 0, false
		}
		pos += lt
		rest := doc[pos:]
		switch {
		case hasTagPrefix(rest, closing):
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				return 0, false
			}
			depth--
			if depth == 0 {
				return pos + gt + 1, true
			}
			pos += gt + 1
		case hasTagPrefix(rest, open):
			depth++
			pos += len(open)
		default:
			pos++
		}
	}
	return 0, false
}

// hasTagPrefix reports whether s starts with tag followed by whitespace or
// '>', so that "<div" does not match "<divider".
func hasTagPrefix(s, tag string) bool {
	if !strings.HasPrefix(s, tag) || len(s) == len(tag) {
		return false
	}
	switch s[len(tag)] {
	case '>', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (in *Injector) wrap(id string, f render.Fragments) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s id=\"%s%s\">\n", in.element, in.prefix, id)
	b.WriteString(f.String())
	fmt.Fprintf(&b, "</%s>", in.element)
	return b.String()
}

func (in *Injector) openTag(id string) *regexp.Regexp {
	if re, ok := in.patterns[id]; ok {
		return re
	}
	re := regexp.MustCompile(`<` + regexp.QuoteMeta(in.element) + `\s(?:[^>]*?\s)?id\s*=\s*["']` +
		regexp.QuoteMeta(in.prefix+id) + `["'][^>]*>`)
	in.patterns[id] = re
	return re
}

// discoverIDs returns marker ids present in doc that are not catalog ids,
// in document order.
func (in *Injector) discoverIDs(doc string) []string {
	known := make(map[string]bool, len(in.ids))
	for _, id := range in.ids {
		known[id] = true
	}
	var out []string
	for _, id := range in.scanMarkers(doc) {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

// Markers lists the distinct marker ids present in doc, sorted.
func (in *Injector) Markers(doc string) []string {
	out := in.scanMarkers(doc)
	sort.Strings(out)
	return out
}

func (in *Injector) scanMarkers(doc string) []string {
	if in.markers == nil {
		in.markers = regexp.MustCompile(`<` + regexp.QuoteMeta(in.element) + `\s(?:[^>]*?\s)?id\s*=\s*["']` +
			regexp.QuoteMeta(in.prefix) + `([^"'\s>]+)["'][^>]*>`)
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range in.markers.FindAllStringSubmatch(doc, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
