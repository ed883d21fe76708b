package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/highlight"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("QLINE_CONFIG_HOME", "/tmp/qline-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/qline-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/qline-config")
	}

	t.Setenv("QLINE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/qline" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/qline")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("QLINE_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Prompt != "> " {
		t.Fatalf("Prompt = %q, want %q", cfg.Editor.Prompt, "> ")
	}
	if !cfg.Editor.AutoPair || !cfg.Editor.SurroundSelection || !cfg.Editor.History {
		t.Fatalf("default booleans not set: %+v", cfg.Editor)
	}
	if cfg.Keymap["ctrl+a"] != "select_all" {
		t.Fatalf("keymap ctrl+a = %q, want select_all", cfg.Keymap["ctrl+a"])
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QLINE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
hint-foreground = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
prompt = "$ "
input-filter = "digit"
highlighter = "chroma"
history-limit = 50
pairs = ["()"]

[theme]
theme = "test"
selection-background = "#123456"

[keymap]
"ctrl+a" = "line_start"
"ctrl+x" = "none"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Prompt != "$ " {
		t.Fatalf("Prompt = %q, want %q", cfg.Editor.Prompt, "$ ")
	}
	if cfg.Editor.InputFilter != "digit" {
		t.Fatalf("InputFilter = %q, want digit", cfg.Editor.InputFilter)
	}
	if cfg.Editor.Highlighter != "chroma" {
		t.Fatalf("Highlighter = %q, want chroma", cfg.Editor.Highlighter)
	}
	if cfg.Editor.HistoryLimit != 50 {
		t.Fatalf("HistoryLimit = %d, want 50", cfg.Editor.HistoryLimit)
	}
	if len(cfg.Editor.Pairs) != 1 || cfg.Editor.Pairs[0] != "()" {
		t.Fatalf("Pairs = %v, want [()]", cfg.Editor.Pairs)
	}
	if !cfg.Editor.AutoPair {
		t.Fatalf("AutoPair switched off by an unrelated key")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.HintForeground != "#333333" {
		t.Fatalf("HintForeground = %q, want %q", cfg.Theme.HintForeground, "#333333")
	}
	if cfg.Theme.SelectionBackground != "#123456" {
		t.Fatalf("SelectionBackground = %q, want %q", cfg.Theme.SelectionBackground, "#123456")
	}
	if cfg.Theme.SyntaxString != DefaultTheme().SyntaxString {
		t.Fatalf("SyntaxString = %q, want default", cfg.Theme.SyntaxString)
	}
	if cfg.Keymap["ctrl+a"] != "line_start" {
		t.Fatalf("keymap ctrl+a = %q, want line_start", cfg.Keymap["ctrl+a"])
	}
	if cfg.Keymap["ctrl+x"] != "none" {
		t.Fatalf("keymap ctrl+x = %q, want none", cfg.Keymap["ctrl+x"])
	}
	if cfg.Keymap["ctrl+v"] != "paste" {
		t.Fatalf("keymap ctrl+v = %q, want paste", cfg.Keymap["ctrl+v"])
	}
}

func TestLoadDisablesBooleans(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
auto-pair = false
surround-selection = false
history = false
git-branches = false
debug = true
`)
	cfg, err := LoadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Editor.AutoPair || cfg.Editor.SurroundSelection || cfg.Editor.History || cfg.Editor.GitBranches {
		t.Fatalf("booleans not disabled: %+v", cfg.Editor)
	}
	if !cfg.Editor.Debug {
		t.Fatalf("Debug not enabled")
	}
}

func TestLoadMissingTheme(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QLINE_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[theme]
theme = "absent"
`)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing theme file")
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\nprompt = 1")
	cfg, err := LoadFile(filepath.Join(dir, "config.toml"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg.Editor.Prompt != "> " {
		t.Fatalf("Prompt = %q, want defaults on error", cfg.Editor.Prompt)
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QLINE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("QLINE_CONFIG_HOME", "/tmp/qline-config")
	cfg := Default()
	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath error: %v", err)
	}
	if path != filepath.Join("/tmp/qline-config", "history.db") {
		t.Fatalf("HistoryPath = %q", path)
	}
	cfg.Editor.HistoryFile = "/var/tmp/h.db"
	if path, _ = cfg.HistoryPath(); path != "/var/tmp/h.db" {
		t.Fatalf("HistoryPath = %q, want /var/tmp/h.db", path)
	}
}

func TestParseColor(t *testing.T) {
	if got := ParseColor("#ff0000", tcell.ColorBlack); got != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("ParseColor hex = %v", got)
	}
	if got := ParseColor("red", tcell.ColorBlack); got != tcell.ColorRed {
		t.Fatalf("ParseColor name = %v, want red", got)
	}
	if got := ParseColor("default", tcell.ColorBlack); got != tcell.ColorDefault {
		t.Fatalf("ParseColor default = %v", got)
	}
	if got := ParseColor("#zzzzzz", tcell.ColorBlack); got != tcell.ColorBlack {
		t.Fatalf("ParseColor invalid = %v, want fallback", got)
	}
	if got := ParseColor("", tcell.ColorGreen); got != tcell.ColorGreen {
		t.Fatalf("ParseColor empty = %v, want fallback", got)
	}
}

func TestThemeStyles(t *testing.T) {
	th := DefaultTheme()
	_, bg, _ := th.SelectionStyle().Decompose()
	if bg != tcell.NewRGBColor(0x27, 0x42, 0x5A) {
		t.Fatalf("selection background = %v", bg)
	}
	styles := th.SyntaxStyles()
	fg, _, attrs := styles["keyword"].Decompose()
	if fg != tcell.NewRGBColor(0xFF, 0xA7, 0x59) {
		t.Fatalf("keyword foreground = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("keyword not bold")
	}
	th.SyntaxString = "bogus"
	if th.SyntaxStyles()["string"] != highlight.DefaultStyles()["string"] {
		t.Fatalf("invalid color did not fall back to the default string style")
	}
}
