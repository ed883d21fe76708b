package event

import "sort"

// Action names used in the [keymap] section of the config file.
const (
	ActionMoveLeft           = "move_left"
	ActionMoveRight          = "move_right"
	ActionWordLeft           = "word_left"
	ActionWordRight          = "word_right"
	ActionLineStart          = "line_start"
	ActionLineEnd            = "line_end"
	ActionBackspace          = "backspace"
	ActionDeleteChar         = "delete_char"
	ActionDeleteWordLeft     = "delete_word_left"
	ActionKillLineStart      = "kill_line_start"
	ActionKillLineEnd        = "kill_line_end"
	ActionClearLine          = "clear_line"
	ActionEnter              = "enter"
	ActionUp                 = "up"
	ActionDown               = "down"
	ActionSelectLeft         = "select_left"
	ActionSelectRight        = "select_right"
	ActionSelectAll          = "select_all"
	ActionCut                = "cut"
	ActionCopy               = "copy"
	ActionPaste              = "paste"
	ActionToggleAutoComplete = "toggle_autocomplete"
	ActionInterrupt          = "interrupt"
	ActionEndSession         = "end_session"
)

var actions = map[string]Event{
	ActionMoveLeft:           Simple(KindLeft),
	ActionMoveRight:          Simple(KindRight),
	ActionWordLeft:           Movement(MoveLeftWord),
	ActionWordRight:          Movement(MoveRightWord),
	ActionLineStart:          Movement(MoveToStart),
	ActionLineEnd:            Movement(MoveToEnd),
	ActionBackspace:          Simple(KindBackspace),
	ActionDeleteChar:         Simple(KindDelete),
	ActionDeleteWordLeft:     Edit(EditCommand{Op: DeleteWordLeft}),
	ActionKillLineStart:      Edit(EditCommand{Op: DeleteToStart}),
	ActionKillLineEnd:        Edit(EditCommand{Op: DeleteToEnd}),
	ActionClearLine:          Edit(EditCommand{Op: Clear}),
	ActionEnter:              Simple(KindEnter),
	ActionUp:                 Simple(KindUp),
	ActionDown:               Simple(KindDown),
	ActionSelectLeft:         Simple(KindSelectLeft),
	ActionSelectRight:        Simple(KindSelectRight),
	ActionSelectAll:          Simple(KindSelectAll),
	ActionCut:                Simple(KindCutSelected),
	ActionCopy:               Simple(KindCopySelected),
	ActionPaste:              Simple(KindPaste),
	ActionToggleAutoComplete: Simple(KindToggleAutoComplete),
	ActionInterrupt:          Simple(KindInterrupt),
	ActionEndSession:         Simple(KindEndSession),
}

// FromAction returns the event bound to an action name.
func FromAction(name string) (Event, bool) {
	ev, ok := actions[name]
	if !ok {
		return Event{}, false
	}
	// copy slices so bindings never share backing arrays
	ev.Edits = append([]EditCommand(nil), ev.Edits...)
	ev.Movements = append([]MovementCommand(nil), ev.Movements...)
	return ev, true
}

// ActionNames returns every known action name, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
