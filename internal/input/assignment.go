// Package input translates OS key and mouse events into either bound
// actions or terminal input for the active tab's transport.
package input

import "github.com/fanzeyi/wezterm/internal/mux"

// SpawnTabDomainKind discriminates where a new tab should spawn.
type SpawnTabDomainKind uint8

const (
	// SpawnDefaultDomain spawns in the session's default domain.
	SpawnDefaultDomain SpawnTabDomainKind = iota
	// SpawnCurrentTabDomain spawns in the domain of the active tab.
	SpawnCurrentTabDomain
	// SpawnDomainID spawns in the domain with the given id.
	SpawnDomainID
	// SpawnDomainName spawns in the domain with the given name.
	SpawnDomainName
)

// SpawnTabDomain selects the domain for a SpawnTab assignment.
type SpawnTabDomain struct {
	Kind SpawnTabDomainKind
	ID   mux.DomainID
	Name string
}

// Assignment is a bound action triggered by a key chord. The concrete
// types below are the full set; the window dispatches on them with a
// type switch.
type Assignment interface {
	isAssignment()
}

// SpawnTab opens a new tab in the selected domain.
type SpawnTab struct{ Domain SpawnTabDomain }

// SpawnWindow opens a new window with a tab in the default domain.
type SpawnWindow struct{}

// ToggleFullScreen toggles the window's fullscreen state.
type ToggleFullScreen struct{}

// Copy copies the selection. Selection text is published to the
// clipboard as it is made, so this is a no-op placeholder binding.
type Copy struct{}

// Paste writes the clipboard contents to the active tab's transport.
type Paste struct{}

// ActivateTab activates the tab at a fixed index.
type ActivateTab struct{ Index int }

// ActivateTabRelative activates the tab Delta positions away, wrapping.
type ActivateTabRelative struct{ Delta int }

// IncreaseFontSize scales the font up by one step.
type IncreaseFontSize struct{}

// DecreaseFontSize scales the font down by one step.
type DecreaseFontSize struct{}

// ResetFontSize restores the font scale to 1.0.
type ResetFontSize struct{}

// SendString writes a fixed string to the transport.
type SendString struct{ Text string }

// SendBytes writes fixed bytes to the transport.
type SendBytes struct{ Bytes []byte }

// Hide hides the window.
type Hide struct{}

// Show shows the window.
type Show struct{}

// CloseCurrentTab removes the active tab from the window and session.
type CloseCurrentTab struct{}

// Nop deliberately consumes a chord without effect.
type Nop struct{}

func (SpawnTab) isAssignment()            {}
func (SpawnWindow) isAssignment()         {}
func (ToggleFullScreen) isAssignment()    {}
func (Copy) isAssignment()                {}
func (Paste) isAssignment()               {}
func (ActivateTab) isAssignment()         {}
func (ActivateTabRelative) isAssignment() {}
func (IncreaseFontSize) isAssignment()    {}
func (DecreaseFontSize) isAssignment()    {}
func (ResetFontSize) isAssignment()       {}
func (SendString) isAssignment()          {}
func (SendBytes) isAssignment()           {}
func (Hide) isAssignment()                {}
func (Show) isAssignment()                {}
func (CloseCurrentTab) isAssignment()     {}
func (Nop) isAssignment()                 {}
