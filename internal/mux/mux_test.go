package mux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzeyi/wezterm/internal/term"
)

func newTab(t *testing.T, title string) *ScreenTab {
	t.Helper()
	return NewScreenTab(title, term.NewScreen(4, 10), &bytes.Buffer{})
}

func TestWindowTabOrderAndActive(t *testing.T) {
	m := New()
	id := m.NewEmptyWindow()
	win := m.GetWindow(id)
	require.NotNil(t, win)
	assert.True(t, win.IsEmpty())

	a, b, c := newTab(t, "a"), newTab(t, "b"), newTab(t, "c")
	require.NoError(t, m.AddTab(id, a))
	require.NoError(t, m.AddTab(id, b))
	require.NoError(t, m.AddTab(id, c))

	assert.Equal(t, 3, win.Len())
	assert.Equal(t, "a", win.GetActive().Title())

	win.SetActive(2)
	assert.Equal(t, "c", m.GetActiveTabForWindow(id).Title())

	// Out-of-range activation is ignored.
	win.SetActive(7)
	assert.Equal(t, 2, win.GetActiveIdx())
}

func TestRemoveByIDKeepsActiveValid(t *testing.T) {
	m := New()
	id := m.NewEmptyWindow()
	win := m.GetWindow(id)

	a, b := newTab(t, "a"), newTab(t, "b")
	require.NoError(t, m.AddTab(id, a))
	require.NoError(t, m.AddTab(id, b))
	win.SetActive(1)

	require.True(t, win.RemoveByID(b.ID()))
	assert.Equal(t, 0, win.GetActiveIdx())
	assert.Equal(t, "a", win.GetActive().Title())

	assert.False(t, win.RemoveByID(b.ID()), "second removal must fail")
}

func TestGetActiveTabForMissingWindow(t *testing.T) {
	m := New()
	assert.Nil(t, m.GetActiveTabForWindow(99))
}

func TestAddTabToMissingWindow(t *testing.T) {
	m := New()
	err := m.AddTab(42, newTab(t, "a"))
	assert.ErrorIs(t, err, ErrNoSuchWindow)
}

func TestDomainRegistry(t *testing.T) {
	m := New()
	assert.Nil(t, m.DefaultDomain())

	local := NewLocalDomain(1, "local", nil, func(rows, cols int) term.Renderable {
		return term.NewScreen(rows, cols)
	})
	m.AddDomain(local)

	assert.Same(t, Domain(local), m.DefaultDomain())

	d, err := m.GetDomain(1)
	require.NoError(t, err)
	assert.Equal(t, "local", d.Name())

	d, err = m.GetDomainByName("local")
	require.NoError(t, err)
	assert.Equal(t, DomainID(1), d.ID())

	_, err = m.GetDomain(9)
	assert.ErrorIs(t, err, ErrNoSuchDomain)
	_, err = m.GetDomainByName("remote")
	assert.ErrorIs(t, err, ErrNoSuchDomain)
}

func TestScreenTab(t *testing.T) {
	var input bytes.Buffer
	screen := term.NewScreen(4, 10)
	tab := NewScreenTab("shell", screen, &input)

	assert.Equal(t, "shell", tab.Title())
	assert.NotEqual(t, TabID{}, tab.ID())
	assert.Same(t, term.Renderable(screen), tab.Renderer())
	assert.NotNil(t, tab.Palette())

	_, err := tab.Writer().Write([]byte("ls\r"))
	require.NoError(t, err)
	assert.Equal(t, "ls\r", input.String())

	require.NoError(t, tab.Resize(PtySize{Rows: 6, Cols: 20, PixelWidth: 160, PixelHeight: 96}))
	rows, cols := screen.PhysicalDimensions()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 20, cols)
}

func TestScreenTabIDsAreUnique(t *testing.T) {
	a, b := newTab(t, "a"), newTab(t, "b")
	assert.NotEqual(t, a.ID(), b.ID())
}
