package config

import (
	"fmt"
	"strings"
)

// section splits a dotted option key into its TOML table and the key inside it.
// Options without a dot live at the top level.
func section(key string) (string, string) {
	if i := strings.Index(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// groupOptions keeps the order in which tables first appear.
func groupOptions(opts []ConfigOption) ([]ConfigOption, []string, map[string][]ConfigOption) {
	var top []ConfigOption
	var order []string
	tables := make(map[string][]ConfigOption)
	for _, o := range opts {
		sec, key := section(o.Key)
		if sec == "" {
			top = append(top, o)
			continue
		}
		if _, ok := tables[sec]; !ok {
			order = append(order, sec)
		}
		tables[sec] = append(tables[sec], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, order, tables
}

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var lines []string
	lines = append(lines, "# catalogsync configuration (TOML)", "")

	top, order, tables := groupOptions(GetConfigOptions())
	for _, o := range top {
		appendOption(&lines, o)
	}
	for _, sec := range order {
		lines = append(lines, "["+sec+"]")
		for _, o := range tables[sec] {
			appendOption(&lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML appends missing defaults to an existing TOML string and comments
// out keys that are no longer known. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	current := ""
	var out []string
	changed := false

	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if current != "" {
			full = current + "." + key
		}
		seen[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}

	var missing []ConfigOption
	for _, o := range opts {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	out = append(out, "", "# Added by config update")
	top, order, tables := groupOptions(missing)
	for _, o := range top {
		appendOption(&out, o)
	}
	for _, sec := range order {
		out = append(out, "["+sec+"]")
		for _, o := range tables[sec] {
			appendOption(&out, o)
		}
	}
	return strings.Join(out, "\n"), true
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func appendOption(lines *[]string, o ConfigOption) {
	if o.Comment != "" {
		*lines = append(*lines, "# "+o.Comment)
	}
	*lines = append(*lines, o.Key+" = "+tomlValue(o.Default), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
