package panel

import (
	"fmt"
	"strings"
)

// Action is a control the user can trigger from a button or key.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionPause
	ActionResume
	ActionReset
	ActionToggle
	ActionFocusNext
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionStart:     "start",
	ActionPause:     "pause",
	ActionResume:    "resume",
	ActionReset:     "reset",
	ActionToggle:    "toggle",
	ActionFocusNext: "focus",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a control name to its action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// KeyMap binds key names, as reported by bubbletea, to actions.
type KeyMap map[string]Action

func DefaultKeyMap() KeyMap {
	return KeyMap{
		"s":     ActionStart,
		"p":     ActionPause,
		"u":     ActionResume,
		"r":     ActionReset,
		" ":     ActionToggle,
		"space": ActionToggle,
		"tab":   ActionFocusNext,
	}
}

func (k KeyMap) Lookup(key string) Action {
	return k[key]
}
