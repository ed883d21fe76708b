// Package event defines the semantic events the line editor dispatches.
package event

import "fmt"

type Kind int

const (
	KindNone Kind = iota
	KindEdit
	KindMovement
	KindEnter
	KindUp
	KindDown
	KindLeft
	KindRight
	KindDelete
	KindBackspace
	KindSelectLeft
	KindSelectRight
	KindSelectAll
	KindCutSelected
	KindCopySelected
	KindPaste
	KindToggleAutoComplete
	KindInterrupt
	KindEndSession
)

var kindNames = map[Kind]string{
	KindNone:               "none",
	KindEdit:               "edit",
	KindMovement:           "movement",
	KindEnter:              "enter",
	KindUp:                 "up",
	KindDown:               "down",
	KindLeft:               "left",
	KindRight:              "right",
	KindDelete:             "delete",
	KindBackspace:          "backspace",
	KindSelectLeft:         "select_left",
	KindSelectRight:        "select_right",
	KindSelectAll:          "select_all",
	KindCutSelected:        "cut",
	KindCopySelected:       "copy",
	KindPaste:              "paste",
	KindToggleAutoComplete: "toggle_autocomplete",
	KindInterrupt:          "interrupt",
	KindEndSession:         "end_session",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type EditOp int

const (
	InsertChar EditOp = iota
	InsertString
	DeleteLeftChar
	DeleteRightChar
	DeleteSpan
	DeleteWordLeft
	DeleteToStart
	DeleteToEnd
	Clear
)

// EditCommand is one buffer mutation. Char is used by InsertChar, Text by
// InsertString and From/To by DeleteSpan.
type EditCommand struct {
	Op   EditOp
	Char rune
	Text string
	From int
	To   int
}

type MovementCommand int

const (
	MoveLeftChar MovementCommand = iota
	MoveRightChar
	MoveLeftWord
	MoveRightWord
	MoveToStart
	MoveToEnd
)

// Event is one semantic editing intent. Edits and Movements are only set
// for KindEdit and KindMovement.
type Event struct {
	Kind      Kind
	Edits     []EditCommand
	Movements []MovementCommand
}

func Edit(cmds ...EditCommand) Event {
	return Event{Kind: KindEdit, Edits: cmds}
}

func Movement(cmds ...MovementCommand) Event {
	return Event{Kind: KindMovement, Movements: cmds}
}

func Simple(kind Kind) Event {
	return Event{Kind: kind}
}

func InsertCharCommand(r rune) EditCommand {
	return EditCommand{Op: InsertChar, Char: r}
}

func InsertStringCommand(s string) EditCommand {
	return EditCommand{Op: InsertString, Text: s}
}

func DeleteSpanCommand(from, to int) EditCommand {
	return EditCommand{Op: DeleteSpan, From: from, To: to}
}

func (e Event) String() string {
	return e.Kind.String()
}
