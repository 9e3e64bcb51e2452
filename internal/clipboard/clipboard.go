// Package clipboard abstracts the system clipboard. Access failures are
// best-effort by contract: callers log and carry on, rendering state is
// never affected.
package clipboard

import "github.com/atotto/clipboard"

// Clipboard reads and writes textual clipboard contents.
type Clipboard interface {
	GetContents() (string, error)
	SetContents(text string) error
}

// System is the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard handle.
func NewSystem() *System { return &System{} }

// GetContents implements Clipboard.
func (*System) GetContents() (string, error) {
	return clipboard.ReadAll()
}

// SetContents implements Clipboard.
func (*System) SetContents(text string) error {
	return clipboard.WriteAll(text)
}

// InMemory is a process-local clipboard for tests and headless use.
type InMemory struct {
	contents string
}

// NewInMemory returns an empty in-memory clipboard.
func NewInMemory() *InMemory { return &InMemory{} }

// GetContents implements Clipboard.
func (c *InMemory) GetContents() (string, error) { return c.contents, nil }

// SetContents implements Clipboard.
func (c *InMemory) SetContents(text string) error {
	c.contents = text
	return nil
}
