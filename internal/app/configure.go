package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kobzarvs/qline/internal/autopair"
	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/completion"
	"github.com/kobzarvs/qline/internal/config"
	"github.com/kobzarvs/qline/internal/gitinfo"
	"github.com/kobzarvs/qline/internal/highlight"
	"github.com/kobzarvs/qline/internal/hint"
	"github.com/kobzarvs/qline/internal/history"
	"github.com/kobzarvs/qline/internal/input"
	"github.com/kobzarvs/qline/internal/keybindings"
	"github.com/kobzarvs/qline/internal/lineeditor"
	"github.com/kobzarvs/qline/internal/logger"
	"github.com/kobzarvs/qline/internal/view"
)

// configure builds a fresh line editor from cfg and swaps it in. The
// previous editor and its resources stay untouched until the new one is
// complete, so a failed configure leaves the running editor usable.
func (a *App) configure(cfg config.Config) (err error) {
	var closers []func()
	defer func() {
		if err != nil {
			closeAll(closers)
		}
	}()

	filter, err := input.ParseFilter(cfg.Editor.InputFilter)
	if err != nil {
		return err
	}
	pairs, err := autopair.ParsePairs(cfg.Editor.Pairs)
	if err != nil {
		return err
	}

	le := lineeditor.New(a.screen)
	if a.source != nil {
		le.SetEventSource(a.source)
	}
	theme := cfg.Theme
	le.SetPrompt(cfg.Editor.Prompt, theme.PromptStyle())
	le.Buffer().SetBaseStyle(theme.BaseStyle())
	le.View().SetHintStyle(theme.HintStyle())
	le.SetSelectionStyle(theme.SelectionStyle())
	le.SetFocusStyle(theme.AutocompleteFocusStyle())
	le.SetCursorStyle(view.ParseCursorStyle(cfg.Editor.CursorStyle))
	le.SetInputFilter(filter)

	kb := keybindings.New()
	if err := kb.Load(cfg.Keymap); err != nil {
		logger.Warn("keymap entries skipped", "error", err)
	}
	le.SetKeybindings(kb)

	le.SetSurroundPairs(pairs)
	le.EnableSurroundSelection(cfg.Editor.SurroundSelection)
	if cfg.Editor.AutoPair {
		le.SetAutoPair(autopair.New(pairs...))
	}

	list := completion.NewDropDown(a.screen)
	list.SetStyle(theme.AutocompleteStyle())
	le.SetAutoCompleteView(list)

	h, closeHighlighter, err := newHighlighter(cfg)
	if err != nil {
		return err
	}
	if h != nil {
		le.AddHighlighter(h)
	}
	if closeHighlighter != nil {
		closers = append(closers, closeHighlighter)
	}

	completers := completion.Chain{completion.NewWords(completionWords(cfg)...)}
	if cfg.Editor.GitBranches {
		if dir, err := os.Getwd(); err == nil {
			completers = append(completers, branchCompleter(dir))
		}
	}
	var store *history.Store
	if cfg.Editor.History {
		var closeStore func()
		store, closeStore, err = openHistory(cfg)
		if err != nil {
			logger.Warn("history disabled", "error", err)
			err = nil
		} else {
			closers = append(closers, closeStore)
		}
	}
	if store != nil {
		le.AddHinter(hint.NewHistory(store))
		completers = append(completers, completion.NewHistory(store, 0))
	}
	le.SetCompleter(completers)

	a.release()
	a.closers = closers
	a.history = store
	a.editor = le
	a.theme = theme
	a.prompt = cfg.Editor.Prompt
	return nil
}

func openHistory(cfg config.Config) (*history.Store, func(), error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(path, cfg.Editor.HistoryLimit)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("history close", "error", err)
		}
	}, nil
}

// release closes what the current editor opened.
func (a *App) release() {
	closeAll(a.closers)
	a.closers = nil
	a.history = nil
}

func closeAll(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

// newHighlighter returns the highlighter named by editor.highlighter and
// an optional close func. A tree-sitter language that fails to load falls
// back to chroma.
func newHighlighter(cfg config.Config) (highlight.Highlighter, func(), error) {
	styles := cfg.Theme.SyntaxStyles()
	switch strings.ToLower(cfg.Editor.Highlighter) {
	case "", "none":
		return nil, nil, nil
	case "keyword":
		style, _ := styles.For("keyword")
		return highlight.NewKeyword(cfg.Editor.Keywords, style), nil, nil
	case "json":
		return highlight.JSON(styles), nil, nil
	case "chroma":
		return highlight.NewChroma(cfg.Editor.ChromaLexer, cfg.Editor.ChromaStyle), nil, nil
	case "treesitter", "tree-sitter":
		ts, err := highlight.NewTreeSitter(cfg.Editor.Language, styles)
		if err != nil {
			logger.Warn("tree-sitter unavailable, using chroma", "language", cfg.Editor.Language, "error", err)
			return highlight.NewChroma(cfg.Editor.ChromaLexer, cfg.Editor.ChromaStyle), nil, nil
		}
		return ts, ts.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown highlighter %q", cfg.Editor.Highlighter)
}

// branchCompleter offers the local git branches of the repository
// containing dir, the checked out branch first. Branches are reread on
// every request.
func branchCompleter(dir string) completion.Completer {
	return completion.Func(func(buf *buffer.StyledBuffer) []completion.Suggestion {
		names, err := gitinfo.Branches(dir)
		if err != nil {
			return nil
		}
		out := completion.NewWords(names...).Complete(buf)
		current := gitinfo.Branch(dir)
		for i, s := range out {
			if s.Content == current {
				copy(out[1:i+1], out[:i])
				out[0] = s
				break
			}
		}
		return out
	})
}

// completionWords is the configured word list, or the keyword list when
// none is configured.
func completionWords(cfg config.Config) []string {
	if len(cfg.Editor.CompletionWords) > 0 {
		return cfg.Editor.CompletionWords
	}
	return cfg.Editor.Keywords
}
