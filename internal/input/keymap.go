package input

import "github.com/fanzeyi/wezterm/internal/window"

// Entry is one binding in the key map.
type Entry struct {
	Key        window.KeyCode
	Mods       window.Modifiers
	Assignment Assignment
}

// KeyMap is an ordered binding table. Lookup returns the first matching
// entry, so earlier bindings shadow later ones.
type KeyMap struct {
	entries []Entry
}

// NewKeyMap returns the default binding table.
func NewKeyMap() *KeyMap {
	m := &KeyMap{}

	ctrlShift := window.ModCtrl | window.ModShift

	// Clipboard.
	m.Bind(window.CharKey('c'), window.ModSuper, Copy{})
	m.Bind(window.CharKey('v'), window.ModSuper, Paste{})
	m.Bind(window.CharKey('C'), ctrlShift, Copy{})
	m.Bind(window.CharKey('V'), ctrlShift, Paste{})
	m.Bind(window.KeyCode{Kind: window.KeyInsert}, window.ModShift, Paste{})

	// Tabs and windows.
	m.Bind(window.CharKey('t'), window.ModSuper, SpawnTab{})
	m.Bind(window.CharKey('T'), ctrlShift, SpawnTab{})
	m.Bind(window.CharKey('w'), window.ModSuper, CloseCurrentTab{})
	m.Bind(window.CharKey('W'), ctrlShift, CloseCurrentTab{})
	m.Bind(window.CharKey('n'), window.ModSuper, SpawnWindow{})
	m.Bind(window.CharKey('N'), ctrlShift, SpawnWindow{})
	m.Bind(window.KeyCode{Kind: window.KeyEnter}, window.ModAlt, ToggleFullScreen{})

	for i := 1; i <= 8; i++ {
		m.Bind(window.CharKey(rune('0'+i)), window.ModSuper, ActivateTab{Index: i - 1})
	}
	m.Bind(window.KeyCode{Kind: window.KeyPageUp}, window.ModCtrl, ActivateTabRelative{Delta: -1})
	m.Bind(window.KeyCode{Kind: window.KeyPageDown}, window.ModCtrl, ActivateTabRelative{Delta: 1})
	m.Bind(window.CharKey('{'), window.ModSuper|window.ModShift, ActivateTabRelative{Delta: -1})
	m.Bind(window.CharKey('}'), window.ModSuper|window.ModShift, ActivateTabRelative{Delta: 1})

	// Font scale.
	m.Bind(window.CharKey('-'), window.ModSuper, DecreaseFontSize{})
	m.Bind(window.CharKey('='), window.ModSuper, IncreaseFontSize{})
	m.Bind(window.CharKey('0'), window.ModSuper, ResetFontSize{})
	m.Bind(window.CharKey('-'), window.ModCtrl, DecreaseFontSize{})
	m.Bind(window.CharKey('='), window.ModCtrl, IncreaseFontSize{})
	m.Bind(window.CharKey('0'), window.ModCtrl, ResetFontSize{})

	return m
}

// EmptyKeyMap returns a table with no bindings.
func EmptyKeyMap() *KeyMap { return &KeyMap{} }

// Bind appends a binding. Earlier bindings win on conflicts.
func (m *KeyMap) Bind(key window.KeyCode, mods window.Modifiers, a Assignment) {
	m.entries = append(m.entries, Entry{Key: key, Mods: mods, Assignment: a})
}

// Lookup returns the first assignment bound to (key, mods).
func (m *KeyMap) Lookup(key window.KeyCode, mods window.Modifiers) (Assignment, bool) {
	for _, e := range m.entries {
		if e.Key == key && e.Mods == mods {
			return e.Assignment, true
		}
	}
	return nil, false
}

// Len returns the number of bindings.
func (m *KeyMap) Len() int { return len(m.entries) }
