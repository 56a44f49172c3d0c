package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/catalogsync/pkg/api"
)

// WriteNDJSONNodes writes nodes as newline-delimited JSON objects.
func WriteNDJSONNodes(w io.Writer, nodes []api.NodeSummary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, n := range nodes {
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONFiles writes one JSON line per processed file.
func WriteNDJSONFiles(w io.Writer, files []api.FileReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range files {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
