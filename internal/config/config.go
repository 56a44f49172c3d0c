package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "catalogsync"

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options, their defaults and meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "catalog.path", Default: "catalog.xml", Comment: "Path to the service catalog XML document"},
		{Key: "catalog.id_prefix", Default: "service-", Comment: "Prefix stripped from identifiers and used for composite keys"},
		{Key: "catalog.category_max", Default: 3, Comment: "Highest bare number resolved as a category position"},

		{Key: "render.markdown_descriptions", Default: false, Comment: "Render descriptions as sanitized Markdown instead of escaped text"},
		{Key: "render.labels.category", Default: "Service Category", Comment: "Banner label for categories"},
		{Key: "render.labels.package", Default: "Package", Comment: "Banner label for packages"},
		{Key: "render.labels.retainer", Default: "Retainer", Comment: "Banner label for retainers"},
		{Key: "render.labels.tier", Default: "Tier", Comment: "Banner label for tiers"},
		{Key: "render.labels.module", Default: "Module", Comment: "Banner label for modules"},

		{Key: "inject.wrapper_element", Default: "div", Comment: "Element name of injected block wrappers"},
		{Key: "inject.extensions", Default: []string{".md", ".html", ".htm"}, Comment: "File extensions processed by sync"},
		{Key: "inject.resolve_markers", Default: true, Comment: "Rewrite marker ids that are not catalog ids as visible errors"},
		{Key: "inject.dry_run", Default: false, Comment: "Report changes without writing files"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},

		{Key: "output.mode", Default: "plain", Comment: "Default output mode: plain, json, ndjson, yaml, tui"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
// A missing config file is fine; one that exists but does not parse is not.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// CATALOGSYNC_CATALOG_PATH and friends
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow comma-separated env override for list values
	if s := strings.TrimSpace(os.Getenv("CATALOGSYNC_INJECT_EXTENSIONS")); s != "" {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		v.Set("inject.extensions", out)
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// ResolveCatalogPath expands a leading ~ in catalog.path.
func ResolveCatalogPath(v *viper.Viper) string {
	p := v.GetString("catalog.path")
	if len(p) > 0 && p[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
	validModes   = map[string]bool{"plain": true, "json": true, "ndjson": true, "yaml": true, "tui": true}
)

// CheckConfigValidity reports every problem found in v in a single error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(v.GetString("catalog.path")) == "" {
		add("catalog.path is required")
	}
	if strings.TrimSpace(v.GetString("catalog.id_prefix")) == "" {
		add("catalog.id_prefix is required")
	}
	if v.GetInt("catalog.category_max") < 1 {
		add("catalog.category_max must be greater than 0")
	}

	el := v.GetString("inject.wrapper_element")
	if el == "" || strings.ContainsAny(el, " \t\n<>/\"'=") {
		add("inject.wrapper_element %q is not a valid element name", el)
	}
	for _, ext := range v.GetStringSlice("inject.extensions") {
		if strings.TrimSpace(ext) == "" || strings.ContainsAny(ext, `/\`) {
			add("inject.extensions entry %q is not a file extension", ext)
		}
	}

	if lvl := strings.ToLower(v.GetString("log.level")); !validLevels[lvl] {
		add("log.level %q must be one of debug, info, warn, error", lvl)
	}
	if f := strings.ToLower(v.GetString("log.format")); !validFormats[f] {
		add("log.format %q must be console or json", f)
	}
	if m := strings.ToLower(v.GetString("output.mode")); !validModes[m] {
		add("output.mode %q must be one of plain, json, ndjson, yaml, tui", m)
	}
	return errors.Join(errs...)
}
