package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/qline/internal/keybindings"
)

// Keymap maps chords such as "ctrl+a" to action names. User entries are
// merged over the defaults; an empty action or "none" unbinds the chord.
type Keymap map[string]string

type EditorOptions struct {
	Prompt            string   `toml:"prompt"`
	InputFilter       string   `toml:"input-filter"`
	SurroundSelection bool     `toml:"surround-selection"`
	AutoPair          bool     `toml:"auto-pair"`
	Pairs             []string `toml:"pairs"`
	Highlighter       string   `toml:"highlighter"`
	Language          string   `toml:"language"`
	ChromaLexer       string   `toml:"chroma-lexer"`
	ChromaStyle       string   `toml:"chroma-style"`
	Keywords          []string `toml:"keywords"`
	CompletionWords   []string `toml:"completion-words"`
	GitBranches       bool     `toml:"git-branches"`
	History           bool     `toml:"history"`
	HistoryLimit      int      `toml:"history-limit"`
	HistoryFile       string   `toml:"history-file"`
	CursorStyle       string   `toml:"cursor-style"`
	Debug             bool     `toml:"debug"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Prompt:            "> ",
			InputFilter:       "text",
			SurroundSelection: true,
			AutoPair:          true,
			Pairs:             []string{"()", "[]", "{}", "<>", `""`, "''", "``"},
			Highlighter:       "treesitter",
			Language:          "bash",
			ChromaLexer:       "bash",
			ChromaStyle:       "monokai",
			Keywords: []string{
				"if", "then", "else", "elif", "fi", "for", "while", "do", "done",
				"case", "esac", "in", "function", "return", "export", "local",
			},
			GitBranches:  true,
			History:      true,
			HistoryLimit: 1000,
			CursorStyle:  "bar",
		},
		Theme:  DefaultTheme(),
		Keymap: Keymap(keybindings.DefaultKeymap()),
	}
}

// Load reads config.toml from ConfigDir and merges it over Default. A
// missing file is not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	mergeEditor(&cfg.Editor, userCfg.Editor, md)

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	return cfg, nil
}

// mergeEditor copies user values that are set. Booleans are taken
// whenever the key is present so they can be switched off.
func mergeEditor(dst *EditorOptions, src EditorOptions, md toml.MetaData) {
	if src.Prompt != "" {
		dst.Prompt = src.Prompt
	}
	if src.InputFilter != "" {
		dst.InputFilter = src.InputFilter
	}
	if md.IsDefined("editor", "surround-selection") {
		dst.SurroundSelection = src.SurroundSelection
	}
	if md.IsDefined("editor", "auto-pair") {
		dst.AutoPair = src.AutoPair
	}
	if src.Pairs != nil {
		dst.Pairs = src.Pairs
	}
	if src.Highlighter != "" {
		dst.Highlighter = src.Highlighter
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.ChromaLexer != "" {
		dst.ChromaLexer = src.ChromaLexer
	}
	if src.ChromaStyle != "" {
		dst.ChromaStyle = src.ChromaStyle
	}
	if src.Keywords != nil {
		dst.Keywords = src.Keywords
	}
	if src.CompletionWords != nil {
		dst.CompletionWords = src.CompletionWords
	}
	if md.IsDefined("editor", "git-branches") {
		dst.GitBranches = src.GitBranches
	}
	if md.IsDefined("editor", "history") {
		dst.History = src.History
	}
	if src.HistoryLimit > 0 {
		dst.HistoryLimit = src.HistoryLimit
	}
	if src.HistoryFile != "" {
		dst.HistoryFile = src.HistoryFile
	}
	if src.CursorStyle != "" {
		dst.CursorStyle = src.CursorStyle
	}
	if src.Debug {
		dst.Debug = true
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml, written either flat or under [theme].
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QLINE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the history database path: the configured file, or
// history.db in ConfigDir.
func (c Config) HistoryPath() (string, error) {
	if c.Editor.HistoryFile != "" {
		return c.Editor.HistoryFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
