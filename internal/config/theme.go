package config

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/highlight"
)

type Theme struct {
	Theme                       string `toml:"theme"`
	Foreground                  string `toml:"foreground"`
	Background                  string `toml:"background"`
	PromptForeground            string `toml:"prompt-foreground"`
	SelectionForeground         string `toml:"selection-foreground"`
	SelectionBackground         string `toml:"selection-background"`
	HintForeground              string `toml:"hint-foreground"`
	AutocompleteForeground      string `toml:"autocomplete-foreground"`
	AutocompleteBackground      string `toml:"autocomplete-background"`
	AutocompleteFocusForeground string `toml:"autocomplete-focus-foreground"`
	AutocompleteFocusBackground string `toml:"autocomplete-focus-background"`
	SyntaxKeyword               string `toml:"syntax-keyword"`
	SyntaxString                string `toml:"syntax-string"`
	SyntaxComment               string `toml:"syntax-comment"`
	SyntaxType                  string `toml:"syntax-type"`
	SyntaxFunction              string `toml:"syntax-function"`
	SyntaxNumber                string `toml:"syntax-number"`
	SyntaxConstant              string `toml:"syntax-constant"`
	SyntaxOperator              string `toml:"syntax-operator"`
	SyntaxPunctuation           string `toml:"syntax-punctuation"`
	SyntaxField                 string `toml:"syntax-field"`
	SyntaxBuiltin               string `toml:"syntax-builtin"`
	SyntaxVariable              string `toml:"syntax-variable"`
	SyntaxParameter             string `toml:"syntax-parameter"`
}

func DefaultTheme() Theme {
	return Theme{
		Foreground:                  "default",
		Background:                  "default",
		PromptForeground:            "#59C2FF",
		SelectionForeground:         "#B3B1AD",
		SelectionBackground:         "#27425A",
		HintForeground:              "#5C6773",
		AutocompleteForeground:      "#B3B1AD",
		AutocompleteBackground:      "#0F1419",
		AutocompleteFocusForeground: "#FFFFFF",
		AutocompleteFocusBackground: "#0000FF",
		SyntaxKeyword:               "#FFA759",
		SyntaxString:                "#BAE67E",
		SyntaxComment:               "#5C6773",
		SyntaxType:                  "#5CCFE6",
		SyntaxFunction:              "#FFD173",
		SyntaxNumber:                "#D4BFFF",
		SyntaxConstant:              "#FFDD8E",
		SyntaxOperator:              "#F29668",
		SyntaxPunctuation:           "#C0C0C0",
		SyntaxField:                 "#E6B673",
		SyntaxBuiltin:               "#73D0FF",
		SyntaxVariable:              "#B3B1AD",
		SyntaxParameter:             "#B3B1AD",
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.PromptForeground != "" {
		dst.PromptForeground = src.PromptForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.HintForeground != "" {
		dst.HintForeground = src.HintForeground
	}
	if src.AutocompleteForeground != "" {
		dst.AutocompleteForeground = src.AutocompleteForeground
	}
	if src.AutocompleteBackground != "" {
		dst.AutocompleteBackground = src.AutocompleteBackground
	}
	if src.AutocompleteFocusForeground != "" {
		dst.AutocompleteFocusForeground = src.AutocompleteFocusForeground
	}
	if src.AutocompleteFocusBackground != "" {
		dst.AutocompleteFocusBackground = src.AutocompleteFocusBackground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxType != "" {
		dst.SyntaxType = src.SyntaxType
	}
	if src.SyntaxFunction != "" {
		dst.SyntaxFunction = src.SyntaxFunction
	}
	if src.SyntaxNumber != "" {
		dst.SyntaxNumber = src.SyntaxNumber
	}
	if src.SyntaxConstant != "" {
		dst.SyntaxConstant = src.SyntaxConstant
	}
	if src.SyntaxOperator != "" {
		dst.SyntaxOperator = src.SyntaxOperator
	}
	if src.SyntaxPunctuation != "" {
		dst.SyntaxPunctuation = src.SyntaxPunctuation
	}
	if src.SyntaxField != "" {
		dst.SyntaxField = src.SyntaxField
	}
	if src.SyntaxBuiltin != "" {
		dst.SyntaxBuiltin = src.SyntaxBuiltin
	}
	if src.SyntaxVariable != "" {
		dst.SyntaxVariable = src.SyntaxVariable
	}
	if src.SyntaxParameter != "" {
		dst.SyntaxParameter = src.SyntaxParameter
	}
}

// BaseStyle is the style of unhighlighted line text.
func (t Theme) BaseStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(ParseColor(t.Foreground, tcell.ColorDefault)).
		Background(ParseColor(t.Background, tcell.ColorDefault))
}

func (t Theme) PromptStyle() tcell.Style {
	return t.BaseStyle().Foreground(ParseColor(t.PromptForeground, tcell.ColorDefault)).Bold(true)
}

func (t Theme) SelectionStyle() tcell.Style {
	return t.BaseStyle().
		Foreground(ParseColor(t.SelectionForeground, tcell.ColorDefault)).
		Background(ParseColor(t.SelectionBackground, tcell.ColorNavy))
}

func (t Theme) HintStyle() tcell.Style {
	return t.BaseStyle().Foreground(ParseColor(t.HintForeground, tcell.ColorGray))
}

func (t Theme) AutocompleteStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(ParseColor(t.AutocompleteForeground, tcell.ColorWhite)).
		Background(ParseColor(t.AutocompleteBackground, tcell.ColorDarkSlateGray))
}

func (t Theme) AutocompleteFocusStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(ParseColor(t.AutocompleteFocusForeground, tcell.ColorWhite)).
		Background(ParseColor(t.AutocompleteFocusBackground, tcell.ColorBlue))
}

// SyntaxStyles maps highlight capture kinds to styles. Unset or invalid
// colors keep the highlight package defaults.
func (t Theme) SyntaxStyles() highlight.Styles {
	base := t.BaseStyle()
	styles := highlight.DefaultStyles()
	for kind, color := range map[string]string{
		"keyword":     t.SyntaxKeyword,
		"string":      t.SyntaxString,
		"comment":     t.SyntaxComment,
		"type":        t.SyntaxType,
		"function":    t.SyntaxFunction,
		"number":      t.SyntaxNumber,
		"constant":    t.SyntaxConstant,
		"operator":    t.SyntaxOperator,
		"punctuation": t.SyntaxPunctuation,
		"field":       t.SyntaxField,
		"builtin":     t.SyntaxBuiltin,
		"variable":    t.SyntaxVariable,
		"parameter":   t.SyntaxParameter,
	} {
		c := ParseColor(color, tcell.ColorDefault)
		if c == tcell.ColorDefault {
			continue
		}
		st := base.Foreground(c)
		switch kind {
		case "keyword":
			st = st.Bold(true)
		case "comment":
			st = st.Italic(true)
		}
		styles[kind] = st
	}
	return styles
}

// ParseColor accepts "#rrggbb", a color name or "default". Anything else
// yields fallback.
func ParseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
