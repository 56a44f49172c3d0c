package present

import (
	"context"
	"io"

	"github.com/mithrel/catalogsync/internal/present/format"
	"github.com/mithrel/catalogsync/internal/present/tui"
	"github.com/mithrel/catalogsync/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeYAML
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Detail renders the Markdown document for a node id, used by the TUI
	// when a row is opened.
	Detail func(id string) string
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "yaml", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "yaml":
		return ModeYAML, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// RenderNodes renders a catalog listing according to options.
func RenderNodes(ctx context.Context, w io.Writer, nodes []api.NodeSummary, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, nodes, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNodes(w, nodes)
	case ModeYAML:
		return format.WriteYAML(w, nodes)
	case ModeTUI:
		return tui.RenderTable(ctx, w, nodes, opts.Headers, opts.Detail)
	default:
		return format.WritePlainNodes(w, nodes, opts.Headers)
	}
}

// RenderSummary renders the outcome of a sync run according to options.
func RenderSummary(w io.Writer, s api.SyncSummary, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, s, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONFiles(w, s.Files)
	case ModeYAML:
		return format.WriteYAML(w, s)
	case ModePretty, ModeTUI:
		return format.WritePrettySummary(w, s)
	default:
		return format.WritePlainSummary(w, s, opts.Headers)
	}
}

// RenderFragments renders one node's HTML fragments according to options.
func RenderFragments(w io.Writer, f api.Fragments, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, f, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModeYAML:
		return format.WriteYAML(w, f)
	default:
		return format.WritePlainFragments(w, f)
	}
}
