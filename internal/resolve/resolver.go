// Package resolve maps loosely written identifiers to catalog nodes.
package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mithrel/catalogsync/internal/catalog"
)

const (
	DefaultPrefix      = "service-"
	DefaultCategoryMax = 3
)

// Strategy names, in the order they are tried.
const (
	StrategyCategoryNumber = "category-number"
	StrategyCompositeKey   = "composite-key"
	StrategyNumericPath    = "numeric-path"
	StrategyCategoryName   = "category-name"
)

var numericPath = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// Resolution is the outcome of resolving one identifier.
type Resolution struct {
	Requested  string
	Normalized string
	Node       *catalog.Node
	Strategy   string
}

// Found reports whether a node was matched.
func (r Resolution) Found() bool { return r.Node != nil }

type Option func(*Resolver)

// WithPrefix sets the marker prefix stripped before matching.
func WithPrefix(p string) Option { return func(r *Resolver) { r.prefix = p } }

// WithCategoryMax sets the upper bound for bare category numbers.
func WithCategoryMax(n int) Option { return func(r *Resolver) { r.categoryMax = n } }

// WithLogger attaches a logger for ambiguity diagnostics.
func WithLogger(l *zap.Logger) Option { return func(r *Resolver) { r.log = l } }

// Resolver holds a read-only reference to a catalog index.
type Resolver struct {
	idx         *catalog.Index
	prefix      string
	categoryMax int
	log         *zap.Logger
	title       cases.Caser
}

func New(idx *catalog.Index, opts ...Option) *Resolver {
	r := &Resolver{
		idx:         idx,
		prefix:      DefaultPrefix,
		categoryMax: DefaultCategoryMax,
		title:       cases.Title(language.Und),
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Normalize trims raw and strips the marker prefix.
func (r *Resolver) Normalize(raw string) string {
	id := strings.TrimSpace(raw)
	if r.prefix != "" {
		id = strings.TrimPrefix(id, r.prefix)
	}
	return strings.TrimSpace(id)
}

// Resolve returns the node for raw, or false when no strategy matches.
func (r *Resolver) Resolve(raw string) (*catalog.Node, bool) {
	res := r.Explain(raw)
	return res.Node, res.Found()
}

// Explain resolves raw and reports which strategy matched. The strategies
// run in a fixed order and the first hit wins; callers rely on that order
// to break ties between ids that match more than one way.
func (r *Resolver) Explain(raw string) Resolution {
	res := Resolution{Requested: raw, Normalized: r.Normalize(raw)}
	if res.Normalized == "" {
		return res
	}

	steps := []struct {
		name string
		fn   func(string) *catalog.Node
	}{
		{StrategyCategoryNumber, r.byCategoryNumber},
		{StrategyCompositeKey, r.byCompositeKey},
		{StrategyNumericPath, r.byNumericPath},
		{StrategyCategoryName, r.byCategoryName},
	}
	for _, s := range steps {
		if n := s.fn(res.Normalized); n != nil {
			res.Node = n
			res.Strategy = s.name
			return res
		}
	}
	return res
}

func (r *Resolver) byCategoryNumber(id string) *catalog.Node {
	if !isDigits(id) {
		return nil
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > r.categoryMax {
		return nil
	}
	return r.category(id)
}

// byCompositeKey matches a container whose declared key is the id under its
// kind prefix ("category-design") or under the marker prefix ("service-web").
func (r *Resolver) byCompositeKey(id string) *catalog.Node {
	for _, n := range r.idx.Nodes() {
		if !n.IsContainer() {
			continue
		}
		wants := []string{n.KeyPrefix() + "-" + id}
		if r.prefix != "" {
			wants = append(wants, r.prefix+id)
		}
		for _, want := range wants {
			if n.Key == want || n.ID == want {
				return n
			}
		}
	}
	return nil
}

func (r *Resolver) byNumericPath(id string) *catalog.Node {
	if !numericPath.MatchString(id) {
		return nil
	}
	segs := strings.Split(id, ".")
	switch len(segs) {
	case 1:
		return r.category(id)
	case 2:
		parent := r.category(segs[0])
		if parent == nil {
			return nil
		}
		return childByID(parent, id)
	case 3:
		parent := r.bundle(segs[0] + "." + segs[1])
		if parent == nil {
			return nil
		}
		return childByID(parent, id)
	default:
		return nil
	}
}

// byCategoryName only ever matches categories. When two names normalise to
// the same string the first category in document order wins.
func (r *Resolver) byCategoryName(id string) *catalog.Node {
	want := r.title.String(strings.ReplaceAll(id, "-", " "))
	var first *catalog.Node
	matches := 0
	for _, c := range r.idx.Categories() {
		if strings.EqualFold(c.Name, want) {
			if first == nil {
				first = c
			}
			matches++
		}
	}
	if matches > 1 {
		r.log.Debug("ambiguous category name", zap.String("id", id), zap.Int("matches", matches), zap.String("chosen", first.ID))
	}
	return first
}

func (r *Resolver) category(id string) *catalog.Node {
	for _, c := range r.idx.Categories() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *Resolver) bundle(id string) *catalog.Node {
	segs := strings.SplitN(id, ".", 2)
	parent := r.category(segs[0])
	if parent == nil {
		return nil
	}
	return childByID(parent, id)
}

func childByID(parent *catalog.Node, id string) *catalog.Node {
	for _, c := range parent.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
