package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/catalogsync/pkg/api"
)

// TSV columns: id, kind, name, price, children
var nodeHeader = "id\tkind\tname\tprice\tchildren\n"

// TSV columns: status, path, blocks, detail
var fileHeader = "status\tpath\tblocks\tdetail\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func kindLabel(n api.NodeSummary) string {
	if n.Subkind != "" {
		return n.Subkind
	}
	return n.Kind
}

func WritePlainNodes(w io.Writer, nodes []api.NodeSummary, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, nodeHeader)
	}
	for _, n := range nodes {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%d\n",
			esc(n.ID), esc(kindLabel(n)), esc(n.Name), esc(n.Price), n.Children)
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainFragments writes the fragments of one node in display order.
func WritePlainFragments(w io.Writer, f api.Fragments) error {
	_, err := io.WriteString(w, f.Banner+f.Body+f.Explore)
	return err
}

// WritePlainSummary writes one line per file followed by the totals.
func WritePlainSummary(w io.Writer, s api.SyncSummary, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, fileHeader)
	}
	for _, f := range s.Files {
		line := fmt.Sprintf("%s\t%s\t%d\t%s\n", f.Status, esc(f.Path), f.Blocks, esc(fileDetail(f)))
		_, _ = io.WriteString(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d updated, %d unchanged, %d skipped, %d failed\n",
		s.Updated, s.Unchanged, s.Skipped, s.Failed)
	return err
}

func fileDetail(f api.FileReport) string {
	var parts []string
	if f.Error != "" {
		parts = append(parts, f.Error)
	}
	parts = append(parts, f.Warnings...)
	if len(f.Unresolved) > 0 {
		parts = append(parts, "unresolved: "+strings.Join(f.Unresolved, ","))
	}
	return strings.Join(parts, "; ")
}
