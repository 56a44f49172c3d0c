package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/catalog/catalogtest"
	"github.com/mithrel/catalogsync/pkg/api"
)

// writeTestConfig writes the sample catalog and a config pointing at it.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	catPath := filepath.Join(dir, "catalog.xml")
	if err := os.WriteFile(catPath, []byte(catalogtest.SampleXML), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	content := "[catalog]\npath = \"" + strings.ReplaceAll(catPath, "\\", "\\\\") + "\"\n\n[log]\nlevel = \"warn\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCLIRender(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, _, err := run(t, "--config", cfg, "render", "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `<div class="service-banner">Service Category</div>`) {
		t.Fatalf("unexpected render output: %q", out)
	}
	if !strings.Contains(out, "Explore Design") {
		t.Fatalf("missing explore fragment: %q", out)
	}

	out, _, err = run(t, "--config", cfg, "render", "service-1.2", "--part", "banner")
	if err != nil {
		t.Fatalf("render part: %v", err)
	}
	if out != "<div class=\"service-banner\">Package</div>\n" {
		t.Fatalf("unexpected banner: %q", out)
	}

	out, _, err = run(t, "--config", cfg, "render", "category-design", "-o", "json")
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var f api.Fragments
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !f.Found || f.Strategy != "composite-key" || f.ID != "category-design" {
		t.Fatalf("unexpected fragments: %+v", f)
	}
}

func TestCLIRenderNotFound(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, errOut, err := run(t, "--config", cfg, "render", "desgn")
	if err != nil {
		t.Fatalf("not found must not fail the command: %v", err)
	}
	if !strings.Contains(out, "Service not found: <code>desgn</code>") {
		t.Fatalf("missing error fragment: %q", out)
	}
	if !strings.Contains(errOut, "did you mean") || !strings.Contains(errOut, "design") {
		t.Fatalf("missing hint: %q", errOut)
	}

	out, _, err = run(t, "--config", cfg, "render", "service-foo", "--part", "body")
	if err != nil {
		t.Fatalf("render service-foo: %v", err)
	}
	if !strings.Contains(out, "<code>service-foo</code>") {
		t.Fatalf("error fragment must name the requested id: %q", out)
	}

	_, _, err = run(t, "--config", cfg, "render", "1", "--part", "footer")
	if err == nil {
		t.Fatalf("expected error for unknown part")
	}
}

func TestCLIShowRaw(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, _, err := run(t, "--config", cfg, "show", "1.2", "--raw")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out, "# Brand Kit\n") || !strings.Contains(out, "## Basic `1.2.1`") {
		t.Fatalf("unexpected show output: %q", out)
	}

	_, _, err = run(t, "--config", cfg, "show", "nope")
	if err == nil {
		t.Fatalf("expected show of unknown id to fail")
	}
}

func TestCLIInjectAndSync(t *testing.T) {
	cfg, dir := writeTestConfig(t)
	docs := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	page := filepath.Join(docs, "page.md")
	original := "# Services\n<div id=\"service-2\">old</div>\n"
	if err := os.WriteFile(page, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "--config", cfg, "inject", page, "--stdout")
	if err != nil {
		t.Fatalf("inject --stdout: %v", err)
	}
	if !strings.Contains(out, "Web Development") {
		t.Fatalf("stdout missing rendered block: %q", out)
	}
	if got, _ := os.ReadFile(page); string(got) != original {
		t.Fatalf("--stdout must not write the file")
	}

	out, _, err = run(t, "--config", cfg, "inject", page, "--dry-run")
	if err != nil {
		t.Fatalf("inject --dry-run: %v", err)
	}
	if !strings.HasPrefix(out, "updated ") {
		t.Fatalf("unexpected dry-run output: %q", out)
	}
	if got, _ := os.ReadFile(page); string(got) != original {
		t.Fatalf("--dry-run must not write the file")
	}

	out, _, err = run(t, "--config", cfg, "sync", docs, "-o", "json")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	var sum api.SyncSummary
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("decode sync: %v\n%s", err, out)
	}
	if sum.Updated != 1 || len(sum.Files) != 1 || sum.Files[0].Blocks != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	out, _, err = run(t, "--config", cfg, "sync", docs, "-o", "plain")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !strings.Contains(out, "0 updated, 1 unchanged, 0 skipped, 0 failed") {
		t.Fatalf("second sync should be a no-op: %q", out)
	}
}

func TestCLIList(t *testing.T) {
	cfg, _ := writeTestConfig(t)

	out, _, err := run(t, "--config", cfg, "list", "-o", "ndjson")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 14 {
		t.Fatalf("expected 14 nodes, got %d:\n%s", len(lines), out)
	}
	var first api.NodeSummary
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.ID != "1" || first.Kind != "category" || first.Children != 3 {
		t.Fatalf("unexpected first node: %+v", first)
	}

	out, _, err = run(t, "--config", cfg, "list")
	if err != nil {
		t.Fatalf("list plain: %v", err)
	}
	if !strings.HasPrefix(out, "id") || !strings.Contains(out, "Brand Kit") {
		t.Fatalf("unexpected plain list: %q", out)
	}
}

func TestCLIMalformedCatalog(t *testing.T) {
	cfg, dir := writeTestConfig(t)
	if err := os.WriteFile(filepath.Join(dir, "catalog.xml"), []byte("<catalog><category>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "--config", cfg, "render", "1")
	if !errors.Is(err, catalog.ErrMalformedCatalog) {
		t.Fatalf("expected malformed catalog error, got %v", err)
	}

	// Standalone commands still work without a usable catalog.
	out, _, err := run(t, "--config", cfg, "css")
	if err != nil || !strings.Contains(out, ".service-banner") {
		t.Fatalf("css: %v %q", err, out)
	}
}

func TestCLICatalogFlag(t *testing.T) {
	cfg, dir := writeTestConfig(t)
	other := filepath.Join(dir, "other.xml")
	doc := `<catalog><category id="1"><name>Only</name></category></catalog>`
	if err := os.WriteFile(other, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "--config", cfg, "--catalog", other, "render", "only")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Service Category") || strings.Contains(out, "not found") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCLIConfigGenerate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.toml")

	out, _, err := run(t, "config", "generate", "-o", path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, _, err := run(t, "config", "generate", "-o", path); err == nil {
		t.Fatalf("expected refusal to overwrite without a flag")
	}
	out, _, err = run(t, "config", "generate", "-o", path, "--update")
	if err != nil || !strings.Contains(out, "already up to date") {
		t.Fatalf("update: %v %q", err, out)
	}
	out, _, err = run(t, "config", "generate", "-o", path, "--overwrite")
	if err != nil || !strings.Contains(out, "Backup: "+path+".bak") {
		t.Fatalf("overwrite: %v %q", err, out)
	}
}

func TestCLICompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	if err != nil || !strings.Contains(out, "catalogsync") {
		t.Fatalf("completion: %v", err)
	}

	cfg, _ := writeTestConfig(t)
	out, _, err = run(t, "__complete", "render", "--config", cfg, "1.2")
	if err != nil {
		t.Fatalf("__complete: %v", err)
	}
	if !strings.Contains(out, "1.2.1") {
		t.Fatalf("expected id completions, got %q", out)
	}
}
