// Package render turns catalog nodes into HTML fragments.
//
// Every node renders to three independent pieces: a banner label, a body,
// and an optional call-to-action. Rendering is a pure function of the node,
// which is what lets the injector rewrite its own output without drift.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/slug"
)

// Fragments is the rendered form of one node.
type Fragments struct {
	Banner  string
	Body    string
	Explore string
}

// String concatenates the fragments in display order.
func (f Fragments) String() string {
	return f.Banner + f.Body + f.Explore
}

// Labels are the banner texts for each kind of node.
type Labels struct {
	Category string
	Package  string
	Retainer string
	Tier     string
	Module   string
}

func DefaultLabels() Labels {
	return Labels{
		Category: "Service Category",
		Package:  "Package",
		Retainer: "Retainer",
		Tier:     "Tier",
		Module:   "Module",
	}
}

// NotFoundError describes an identifier that resolved to nothing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("service not found: %s", e.ID)
}

type Option func(*Renderer)

// WithLabels overrides banner labels. Empty fields keep their defaults.
func WithLabels(l Labels) Option {
	return func(r *Renderer) {
		def := r.labels
		if l.Category != "" {
			def.Category = l.Category
		}
		if l.Package != "" {
			def.Package = l.Package
		}
		if l.Retainer != "" {
			def.Retainer = l.Retainer
		}
		if l.Tier != "" {
			def.Tier = l.Tier
		}
		if l.Module != "" {
			def.Module = l.Module
		}
		r.labels = def
	}
}

// WithMarkdownDescriptions renders descriptions as Markdown, sanitized with
// bluemonday's UGC policy.
func WithMarkdownDescriptions(on bool) Option {
	return func(r *Renderer) {
		if !on {
			r.md = nil
			return
		}
		r.md = goldmark.New()
		r.policy = bluemonday.UGCPolicy()
	}
}

type Renderer struct {
	labels Labels
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New(opts ...Option) *Renderer {
	r := &Renderer{labels: DefaultLabels()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render produces the fragments for n. A nil node renders a visible error
// naming requested; broken references are never dropped silently.
func (r *Renderer) Render(n *catalog.Node, requested string) Fragments {
	if n == nil {
		return r.notFound(requested)
	}
	switch n.Kind {
	case catalog.KindCategory:
		return r.category(n)
	case catalog.KindBundle:
		return r.bundle(n)
	case catalog.KindPricedUnit:
		return r.unit(n)
	default:
		return r.notFound(requested)
	}
}

func (r *Renderer) notFound(id string) Fragments {
	return Fragments{
		Body: fmt.Sprintf("<div class=\"service-error\">Service not found: <code>%s</code></div>\n", esc(id)),
	}
}

func (r *Renderer) category(n *catalog.Node) Fragments {
	var b strings.Builder
	r.writeDescription(&b, n.Description)
	if len(n.Children) > 0 {
		b.WriteString("<ul class=\"service-list\">\n")
		for _, c := range n.Children {
			fmt.Fprintf(&b, "<li class=\"service-item\"><a href=\"%s\"><span class=\"service-name\">%s</span>", slug.Anchor(c.Name), esc(c.Name))
			if c.Description != "" {
				fmt.Fprintf(&b, " <span class=\"service-summary\">%s</span>", esc(c.Description))
			}
			b.WriteString("</a></li>\n")
		}
		b.WriteString("</ul>\n")
	}

	f := Fragments{Banner: banner(r.labels.Category), Body: b.String()}
	if len(n.Children) > 0 {
		f.Explore = fmt.Sprintf("<p class=\"service-explore\"><a href=\"%s\">Explore %s</a></p>\n", slug.Anchor(n.Name), esc(n.Name))
	}
	return f
}

func (r *Renderer) bundle(n *catalog.Node) Fragments {
	label := r.labels.Package
	if n.Subkind == catalog.SubkindRetainer {
		label = r.labels.Retainer
	}

	var b strings.Builder
	r.writeDescription(&b, n.Description)
	if len(n.Children) > 0 {
		for _, u := range n.Children {
			writeUnit(&b, u)
		}
	} else {
		writeOwnItems(&b, n)
	}
	return Fragments{Banner: banner(label), Body: b.String()}
}

func (r *Renderer) unit(n *catalog.Node) Fragments {
	label := r.labels.Tier
	if n.Subkind == catalog.SubkindModule {
		label = r.labels.Module
	}
	var b strings.Builder
	writeOwnItems(&b, n)
	return Fragments{Banner: banner(label), Body: b.String()}
}

func writeUnit(b *strings.Builder, u *catalog.Node) {
	b.WriteString("<div class=\"service-unit\">\n")
	fmt.Fprintf(b, "<h4 class=\"service-unit-name\">%s</h4>\n", esc(u.Name))
	if price := PriceLine(u.Pricing); price != "" {
		fmt.Fprintf(b, "<p class=\"service-price\">%s</p>\n", esc(price))
	}
	writeOwnItems(b, u)
	if len(u.Discounts) > 0 {
		b.WriteString("<ul class=\"service-discounts\">\n")
		for _, d := range u.Discounts {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(joinDiscount(d)))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n")
}

// writeOwnItems writes the deliverables list, or the included services when
// there are no deliverables.
func writeOwnItems(b *strings.Builder, n *catalog.Node) {
	switch {
	case len(n.Deliverables) > 0:
		writeList(b, "service-deliverables", n.Deliverables)
	case len(n.IncludedServices) > 0:
		writeList(b, "service-includes", n.IncludedServices)
	}
}

func writeList(b *strings.Builder, class string, items []string) {
	fmt.Fprintf(b, "<ul class=\"%s\">\n", class)
	for _, it := range items {
		fmt.Fprintf(b, "<li>%s</li>\n", esc(it))
	}
	b.WriteString("</ul>\n")
}

func (r *Renderer) writeDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	if r.md == nil {
		fmt.Fprintf(b, "<p class=\"service-description\">%s</p>\n", esc(desc))
		return
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(desc), &buf); err != nil {
		fmt.Fprintf(b, "<p class=\"service-description\">%s</p>\n", esc(desc))
		return
	}
	clean := strings.TrimSpace(string(r.policy.SanitizeBytes(buf.Bytes())))
	fmt.Fprintf(b, "<section class=\"service-description\">\n%s\n</section>\n", clean)
}

func joinDiscount(d catalog.Discount) string {
	switch {
	case d.Condition != "" && d.Amount != "":
		return d.Condition + ": " + d.Amount
	case d.Amount != "":
		return d.Amount
	default:
		return d.Condition
	}
}

func banner(label string) string {
	return fmt.Sprintf("<div class=\"service-banner\">%s</div>\n", esc(label))
}

func esc(s string) string { return html.EscapeString(s) }
