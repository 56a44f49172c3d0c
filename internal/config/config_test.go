package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("catalog.path", "")
	v.Set("catalog.id_prefix", " ")
	v.Set("catalog.category_max", 0)
	v.Set("inject.wrapper_element", "di v")
	v.Set("inject.extensions", []string{".md", "a/b"})
	v.Set("log.level", "loud")
	v.Set("log.format", "xml")
	v.Set("output.mode", "csv")

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		"catalog.path is required",
		"catalog.id_prefix is required",
		"catalog.category_max must be greater than 0",
		`inject.wrapper_element "di v"`,
		`inject.extensions entry "a/b"`,
		`log.level "loud"`,
		`log.format "xml"`,
		`output.mode "csv"`,
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[catalog]\npath = \"from-file.xml\"\ncategory_max = 5\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOGSYNC_LOG_LEVEL", "warn")
	t.Setenv("CATALOGSYNC_INJECT_EXTENSIONS", ".md, .txt")

	v := viper.New()
	v.SetConfigFile(path)
	if err := Load(context.Background(), v); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := v.GetString("catalog.path"); got != "from-file.xml" {
		t.Fatalf("catalog.path = %q, want file value", got)
	}
	if got := v.GetInt("catalog.category_max"); got != 5 {
		t.Fatalf("catalog.category_max = %d, want 5", got)
	}
	if got := v.GetString("log.level"); got != "warn" {
		t.Fatalf("log.level = %q, want env value", got)
	}
	if got := v.GetString("catalog.id_prefix"); got != "service-" {
		t.Fatalf("catalog.id_prefix = %q, want default", got)
	}
	if got := v.GetStringSlice("inject.extensions"); len(got) != 2 || got[1] != ".txt" {
		t.Fatalf("inject.extensions = %v", got)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[catalog\npath = "), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := Load(context.Background(), v); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRenderDefaultTOMLRoundTrip(t *testing.T) {
	out := RenderDefaultTOML()
	for _, want := range []string{"[catalog]", "path = \"catalog.xml\"", "labels.tier = \"Tier\"", "extensions = [\".md\", \".html\", \".htm\"]", "category_max = 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected rendered config to contain %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("rendered config does not parse: %v", err)
	}
	if got := v.GetString("render.labels.category"); got != "Service Category" {
		t.Fatalf("render.labels.category = %q", got)
	}

	if _, changed := UpdateTOML(out); changed {
		t.Fatalf("update of a complete default config should be a no-op")
	}
}

func TestUpdateTOML(t *testing.T) {
	existing := "[catalog]\npath = \"mine.xml\"\nlegacy = 1\n"
	out, changed := UpdateTOML(existing)
	if !changed {
		t.Fatalf("expected changes")
	}
	if !strings.Contains(out, "path = \"mine.xml\"") {
		t.Fatalf("existing value lost:\n%s", out)
	}
	if !strings.Contains(out, "# OUTDATED: option removed from config schema\n# legacy = 1") {
		t.Fatalf("unknown key not commented out:\n%s", out)
	}
	if !strings.Contains(out, "# Added by config update") || !strings.Contains(out, "[log]") {
		t.Fatalf("missing defaults not appended:\n%s", out)
	}
	if strings.Count(out, "path = ") != 1 {
		t.Fatalf("catalog.path appended twice:\n%s", out)
	}
}
