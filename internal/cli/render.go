package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/catalogsync/internal/present"
	"github.com/mithrel/catalogsync/internal/present/format"
	"github.com/mithrel/catalogsync/internal/render"
	"github.com/mithrel/catalogsync/internal/slug"
	"github.com/mithrel/catalogsync/internal/util"
	"github.com/mithrel/catalogsync/internal/wire"
	"github.com/mithrel/catalogsync/pkg/api"
)

func newRenderCmd() *cobra.Command {
	var part string
	var indent bool
	cmd := &cobra.Command{
		Use:               "render <id>",
		Short:             "Render the HTML fragments for a catalog id",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			mode, err := outputMode(cmd, app)
			if err != nil {
				return err
			}

			res := app.Resolver.Explain(args[0])
			frags := app.Renderer.Render(res.Node, res.Requested)
			if !res.Found() {
				hintNotFound(cmd, app, res.Normalized)
			}

			out := api.Fragments{ID: res.Normalized, Found: res.Found(), Strategy: res.Strategy}
			switch part {
			case "", "all":
				out.Banner, out.Body, out.Explore = frags.Banner, frags.Body, frags.Explore
			case "banner":
				out.Banner = frags.Banner
			case "body":
				out.Body = frags.Body
			case "explore":
				out.Explore = frags.Explore
			default:
				return fmt.Errorf("unknown --part %q: want banner, body, explore or all", part)
			}
			return present.RenderFragments(cmd.OutOrStdout(), out, present.Options{Mode: mode, JSONIndent: indent})
		},
	}
	cmd.Flags().StringVar(&part, "part", "all", "fragment to print: banner, body, explore or all")
	cmd.Flags().StringP("output", "o", "plain", "output: plain|json|yaml")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent JSON output")
	return cmd
}

func newShowCmd() *cobra.Command {
	var raw bool
	var style string
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a catalog entry in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			n, ok := app.Resolver.Resolve(args[0])
			if !ok {
				id := app.Resolver.Normalize(args[0])
				hintNotFound(cmd, app, id)
				return &render.NotFoundError{ID: id}
			}
			md := render.Markdown(n)
			out := cmd.OutOrStdout()
			if raw {
				_, err := fmt.Fprint(out, md)
				return err
			}
			return withPager(cmd.Context(), out, cmd.ErrOrStderr(), func(w io.Writer) error {
				return format.WritePrettyMarkdown(w, md, style, terminalWidth(out))
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source instead of rendering it")
	cmd.Flags().StringVar(&style, "style", "dracula", "glamour style (dark, light, dracula, notty, ...)")
	return cmd
}

// hintNotFound prints close matches for an unresolved id to stderr.
func hintNotFound(cmd *cobra.Command, app *wire.App, id string) {
	hints := util.Suggest(id, idCandidates(app), 3)
	if len(hints) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "service not found: %s\n", id)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "service not found: %s (did you mean %s?)\n", id, strings.Join(hints, ", "))
}

// idCandidates lists everything the resolver accepts: dotted ids, declared
// keys and category name slugs.
func idCandidates(app *wire.App) []string {
	out := append([]string(nil), app.Catalog.IDs()...)
	for _, n := range app.Catalog.Nodes() {
		if n.Key != "" {
			out = append(out, n.Key)
		}
	}
	for _, c := range app.Catalog.Categories() {
		if s := slug.Make(c.Name); s != "" {
			out = append(out, s)
		}
	}
	return out
}
