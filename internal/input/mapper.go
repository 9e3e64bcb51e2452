package input

import "github.com/fanzeyi/wezterm/internal/window"

// KeyActionKind discriminates the outcomes of mapping a key event.
type KeyActionKind uint8

const (
	// KeyIgnored means the event has no effect (key-up, bare modifier).
	KeyIgnored KeyActionKind = iota
	// KeyComposed carries IME text to write to the transport verbatim.
	KeyComposed
	// KeyAssigned carries a bound action to dispatch.
	KeyAssigned
	// KeyForward carries encoded bytes to write to the transport.
	KeyForward
)

// KeyAction is the mapping result for one key event.
type KeyAction struct {
	Kind       KeyActionKind
	Assignment Assignment
	Bytes      []byte
}

// Mapper resolves key events against the binding table, falling back to
// terminal encoding for unbound chords.
type Mapper struct {
	keys *KeyMap
}

// NewMapper creates a mapper over the given binding table.
func NewMapper(keys *KeyMap) *Mapper {
	if keys == nil {
		keys = NewKeyMap()
	}
	return &Mapper{keys: keys}
}

// KeyMap returns the mapper's binding table.
func (m *Mapper) KeyMap() *KeyMap { return m.keys }

// MapKey resolves one key event. Only key-down events produce effects;
// composed text bypasses the binding table entirely.
func (m *Mapper) MapKey(ev *window.KeyEvent) KeyAction {
	if !ev.KeyDown {
		return KeyAction{Kind: KeyIgnored}
	}
	if ev.Composed != "" {
		return KeyAction{Kind: KeyComposed, Bytes: []byte(ev.Composed)}
	}
	if a, ok := m.keys.Lookup(ev.Key, ev.Modifiers); ok {
		return KeyAction{Kind: KeyAssigned, Assignment: a}
	}
	if encoded := EncodeKey(ev.Key, ev.Modifiers); encoded != nil {
		return KeyAction{Kind: KeyForward, Bytes: encoded}
	}
	return KeyAction{Kind: KeyIgnored}
}
