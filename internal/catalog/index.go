// Package catalog loads the service catalog document into an immutable tree.
//
// The document's namespace prefix, whatever it is, is ignored: every lookup
// goes through the element's local name, so `<svc:category>`, `<category>`
// and `<x:category>` are the same thing to the rest of the program.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var categoryExpr = xpath.MustCompile("/*/*[local-name()='category']")

// Index owns the parsed catalog tree.
type Index struct {
	path       string
	categories []*Node
	nodes      []*Node
}

// Load reads and parses the catalog at path. ctx is checked before the
// file is read and again before it is parsed.
func Load(ctx context.Context, path string) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, err := Parse(bytes.NewReader(data))
	if err != nil {
		if mce, ok := err.(*MalformedCatalogError); ok {
			mce.Path = path
		}
		return nil, err
	}
	idx.path = path
	return idx, nil
}

// Parse builds an Index from an XML catalog document.
func Parse(r io.Reader) (*Index, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &MalformedCatalogError{Err: err}
	}
	if rootElement(doc) == nil {
		return nil, &MalformedCatalogError{Message: "document has no root element"}
	}

	idx := &Index{}
	for _, el := range xmlquery.QuerySelectorAll(doc, categoryExpr) {
		cat := buildNode(el, KindCategory, SubkindNone)
		for _, bundleEl := range groupedChildren(el, bundleGroups) {
			bundle := buildNode(bundleEl, KindBundle, bundleSubkind(bundleEl.Data))
			for _, unitEl := range groupedChildren(bundleEl, unitGroups) {
				bundle.Children = append(bundle.Children, buildNode(unitEl, KindPricedUnit, unitSubkind(unitEl.Data)))
			}
			cat.Children = append(cat.Children, bundle)
		}
		idx.categories = append(idx.categories, cat)
	}
	idx.nodes = flatten(idx.categories)
	return idx, nil
}

// Path is the file the index was loaded from, if any.
func (idx *Index) Path() string { return idx.path }

// Categories returns the top-level nodes in document order.
func (idx *Index) Categories() []*Node { return idx.categories }

// Nodes returns every node, each category followed by its bundles and each
// bundle followed by its units.
func (idx *Index) Nodes() []*Node { return idx.nodes }

// IDs returns the identifier of every node in Nodes order.
func (idx *Index) IDs() []string {
	ids := make([]string, 0, len(idx.nodes))
	for _, n := range idx.nodes {
		if n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func flatten(categories []*Node) []*Node {
	var out []*Node
	for _, c := range categories {
		out = append(out, c)
		for _, b := range c.Children {
			out = append(out, b)
			out = append(out, b.Children...)
		}
	}
	return out
}

// collection element -> member element
var (
	bundleGroups = map[string]string{"packages": "package", "retainers": "retainer"}
	unitGroups   = map[string]string{"tiers": "tier", "modules": "module"}
)

func bundleSubkind(local string) Subkind {
	if local == "retainer" {
		return SubkindRetainer
	}
	return SubkindPackage
}

func unitSubkind(local string) Subkind {
	if local == "module" {
		return SubkindModule
	}
	return SubkindTier
}

// groupedChildren returns the members of every collection child of el, in
// document order across collections.
func groupedChildren(el *xmlquery.Node, groups map[string]string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for _, group := range elementChildren(el) {
		member, ok := groups[group.Data]
		if !ok {
			continue
		}
		out = append(out, children(group, member)...)
	}
	return out
}

func buildNode(el *xmlquery.Node, kind Kind, sub Subkind) *Node {
	n := &Node{
		Kind:        kind,
		Subkind:     sub,
		ID:          strings.TrimSpace(attr(el, "id")),
		Key:         childText(el, "id"),
		Name:        childText(el, "name"),
		Description: childText(el, "description"),
	}
	n.Deliverables = items(child(el, "deliverables"))
	n.IncludedServices = items(child(el, "included-services"))
	n.Pricing = parsePricing(el)
	if d := child(el, "discounts"); d != nil {
		for _, de := range children(d, "discount") {
			n.Discounts = append(n.Discounts, Discount{
				Condition: field(de, "condition"),
				Amount:    field(de, "amount"),
			})
		}
	}
	return n
}

func parsePricing(el *xmlquery.Node) Pricing {
	src := child(el, "pricing")
	if src == nil {
		src = el
	}

	var p Pricing
	if f := child(src, "fixed"); f != nil {
		p.Fixed = &Money{Amount: field(f, "amount"), Currency: field(f, "currency")}
	} else if f := child(el, "price"); f != nil {
		p.Fixed = &Money{Amount: amountOrText(f), Currency: field(f, "currency")}
	}
	if r := child(src, "recurring"); r != nil {
		p.Recurring = &Recurring{
			Money:     Money{Amount: field(r, "amount"), Currency: field(r, "currency")},
			Frequency: field(r, "frequency"),
		}
	}
	if s := child(src, "per-session"); s != nil {
		p.PerSession = &Money{Amount: field(s, "amount"), Currency: field(s, "currency")}
	}
	if r := child(src, "ranged"); r != nil {
		p.Ranged = &Range{
			Min:      field(r, "min"),
			Max:      field(r, "max"),
			Currency: field(r, "currency"),
			Basis:    field(r, "basis"),
		}
	}
	if q := child(src, "custom-quote"); q != nil {
		basis := field(q, "basis")
		if basis == "" && len(elementChildren(q)) == 0 {
			basis = strings.TrimSpace(q.InnerText())
		}
		p.CustomQuote = &Quote{Basis: basis}
	}
	return p
}

func items(list *xmlquery.Node) []string {
	if list == nil {
		return nil
	}
	var out []string
	for _, it := range elementChildren(list) {
		if text := strings.TrimSpace(it.InnerText()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// Namespace-agnostic element helpers. xmlquery keeps the local name in Data
// and the prefix in Prefix, so matching on Data alone ignores namespaces.

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func elementChildren(el *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func children(el *xmlquery.Node, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			out = append(out, c)
		}
	}
	return out
}

func child(el *xmlquery.Node, local string) *xmlquery.Node {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

func childText(el *xmlquery.Node, local string) string {
	if c := child(el, local); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}

func attr(el *xmlquery.Node, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// field reads a value given either as an attribute or as a child element.
func field(el *xmlquery.Node, local string) string {
	if v := strings.TrimSpace(attr(el, local)); v != "" {
		return v
	}
	return childText(el, local)
}

func amountOrText(el *xmlquery.Node) string {
	if v := field(el, "amount"); v != "" {
		return v
	}
	if len(elementChildren(el)) == 0 {
		return strings.TrimSpace(el.InnerText())
	}
	return ""
}
