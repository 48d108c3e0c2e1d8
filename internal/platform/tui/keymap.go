package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// DefaultHoldTicks is how long a flight key stays held after its last
// press or auto-repeat. Terminals send no key-up events, so a held key
// shows up as a stream of repeats and the latch bridges the gaps.
const DefaultHoldTicks = 10

// KeyMapper translates Bubble Tea key messages to game actions and keeps
// the hold latches for continuous actions.
type KeyMapper struct {
	holdTicks int
	latches   map[core.Action]int // ticks left per held action
}

// NewKeyMapper creates a key mapper. Non-positive holdTicks selects
// DefaultHoldTicks.
func NewKeyMapper(holdTicks int) *KeyMapper {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &KeyMapper{
		holdTicks: holdTicks,
		latches:   make(map[core.Action]int),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "f":
		return core.ActionShoot, false
	case "up", "w":
		return core.ActionBoost, false
	case "left", "a":
		return core.ActionTurnLeft, false
	case "right", "d":
		return core.ActionTurnRight, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// continuous reports whether a is held rather than triggered once.
func continuous(a core.Action) bool {
	switch a {
	case core.ActionShoot, core.ActionBoost, core.ActionTurnLeft, core.ActionTurnRight:
		return true
	}
	return false
}

// Press handles a key message. Continuous actions (re)arm their latch;
// one-shot actions go straight into frame. Returns true on a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	switch {
	case action == core.ActionNone:
	case continuous(action):
		km.latches[action] = km.holdTicks
		// Turning one way cancels the other.
		switch action {
		case core.ActionTurnLeft:
			delete(km.latches, core.ActionTurnRight)
		case core.ActionTurnRight:
			delete(km.latches, core.ActionTurnLeft)
		}
	default:
		frame.Set(action)
	}
	return false
}

// Apply copies the live latches into frame and ages them by one tick.
// Call once per simulation tick, before stepping the game.
func (km *KeyMapper) Apply(frame *core.InputFrame) {
	for action, left := range km.latches {
		frame.Set(action)
		if left <= 1 {
			delete(km.latches, action)
		} else {
			km.latches[action] = left - 1
		}
	}
}

// Held reports whether action currently has a live latch.
func (km *KeyMapper) Held(action core.Action) bool {
	return km.latches[action] > 0
}

// Release drops every latch.
func (km *KeyMapper) Release() {
	clear(km.latches)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
