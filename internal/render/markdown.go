package render

import (
	"fmt"
	"strings"

	"github.com/mithrel/catalogsync/internal/catalog"
)

// Markdown renders a node as a Markdown detail document for terminal display.
// Unlike Render it includes pricing for every node and descends one level.
func Markdown(n *catalog.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.Name)
	kind := n.Kind.String()
	if n.Subkind != catalog.SubkindNone {
		kind = n.Subkind.String()
	}
	fmt.Fprintf(&b, "> **ID:** %s | **Kind:** %s", n.ID, kind)
	if n.Key != "" {
		fmt.Fprintf(&b, " | **Key:** %s", n.Key)
	}
	b.WriteString("\n\n")

	if d := strings.TrimSpace(n.Description); d != "" {
		b.WriteString(d + "\n\n")
	}
	writeMarkdownDetails(&b, n)

	for _, c := range n.Children {
		fmt.Fprintf(&b, "## %s `%s`\n\n", c.Name, c.ID)
		if d := strings.TrimSpace(c.Description); d != "" {
			b.WriteString(d + "\n\n")
		}
		writeMarkdownDetails(&b, c)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMarkdownDetails(b *strings.Builder, n *catalog.Node) {
	if price := PriceLine(n.Pricing); price != "" {
		fmt.Fprintf(b, "**Price:** %s\n\n", price)
	}
	writeMarkdownList(b, "Deliverables", n.Deliverables)
	writeMarkdownList(b, "Included", n.IncludedServices)
	if len(n.Discounts) > 0 {
		b.WriteString("**Discounts:**\n\n")
		for _, d := range n.Discounts {
			b.WriteString("- " + joinDiscount(d) + "\n")
		}
		b.WriteString("\n")
	}
}

func writeMarkdownList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", title)
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	b.WriteString("\n")
}
