package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-defender/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"a moves left", runeKey('a'), core.ActionLeft},
		{"left arrow moves left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d moves right", runeKey('d'), core.ActionRight},
		{"right arrow moves right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"w fires", runeKey('w'), core.ActionFire},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"r restarts", runeKey('r'), core.ActionRestart},
		{"q quits", runeKey('q'), core.ActionQuit},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound key", runeKey('x'), core.ActionNone},
		{"help is not an action", runeKey('?'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapHelpListsBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 6 {
		t.Errorf("FullHelp() lists %d bindings, expected 6", n)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := frameInterval(60); got.Milliseconds() != 16 {
		t.Errorf("frameInterval(60) = %v, expected ~16ms", got)
	}
	if frameInterval(0) != frameInterval(60) {
		t.Error("frameInterval(0) should fall back to 60 fps")
	}
}
