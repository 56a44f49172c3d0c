package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/present"
	"github.com/mithrel/catalogsync/internal/render"
	"github.com/mithrel/catalogsync/pkg/api"
)

func summarize(n *catalog.Node) api.NodeSummary {
	return api.NodeSummary{
		ID:          n.ID,
		Kind:        n.Kind.String(),
		Subkind:     n.Subkind.String(),
		Name:        n.Name,
		Description: n.Description,
		Price:       render.PriceLine(n.Pricing),
		Children:    len(n.Children),
	}
}

func newListCmd() *cobra.Command {
	var indent, headers bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			mode, err := outputMode(cmd, app)
			if err != nil {
				return err
			}

			nodes := app.Catalog.Nodes()
			rows := make([]api.NodeSummary, 0, len(nodes))
			for _, n := range nodes {
				rows = append(rows, summarize(n))
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: indent,
				Headers:    headers,
				Detail: func(id string) string {
					if n, ok := app.Resolver.Resolve(id); ok {
						return render.Markdown(n)
					}
					return ""
				},
			}

			if mode == present.ModeTUI {
				return present.RenderNodes(cmd.Context(), cmd.OutOrStdout(), rows, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderNodes(cmd.Context(), w, rows, opts)
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "output: plain|json|ndjson|yaml|tui")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent JSON output")
	cmd.Flags().BoolVar(&headers, "headers", true, "print column headers")
	return cmd
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "css",
		Short:       "Print the stylesheet for rendered fragments",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{standalone: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), render.Stylesheet())
			return err
		},
	}
}
