package mux

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/fanzeyi/wezterm/internal/term"
)

// RenderableFactory builds the terminal model for a freshly spawned tab.
// Parsing PTY output into the model is the embedding application's job;
// this layer only owns the transport.
type RenderableFactory func(rows, cols int) term.Renderable

// LocalDomain spawns child processes on this machine behind a PTY.
type LocalDomain struct {
	id          DomainID
	name        string
	shell       []string
	palette     *term.Palette
	newRenderer RenderableFactory
}

// NewLocalDomain creates a domain spawning the given default command
// (argv form). newRenderer supplies the terminal model per tab.
func NewLocalDomain(id DomainID, name string, shell []string, newRenderer RenderableFactory) *LocalDomain {
	if len(shell) == 0 {
		shell = []string{defaultShell()}
	}
	return &LocalDomain{
		id:          id,
		name:        name,
		shell:       shell,
		palette:     term.DefaultPalette(),
		newRenderer: newRenderer,
	}
}

// ID implements Domain.
func (d *LocalDomain) ID() DomainID { return d.id }

// Name implements Domain.
func (d *LocalDomain) Name() string { return d.name }

// Spawn implements Domain: it starts command (or the domain's default
// shell) on a new PTY sized to size.
func (d *LocalDomain) Spawn(size PtySize, command []string, _ WindowID) (Tab, error) {
	argv := command
	if len(argv) == 0 {
		argv = d.shell
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: size.Rows,
		Cols: size.Cols,
		X:    size.PixelWidth,
		Y:    size.PixelHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("mux: spawning %q: %w", argv[0], err)
	}

	return &localTab{
		id:       uuid.New(),
		title:    argv[0],
		domainID: d.id,
		cmd:      cmd,
		ptmx:     ptmx,
		renderer: d.newRenderer(int(size.Rows), int(size.Cols)),
		palette:  d.palette,
	}, nil
}

// localTab is a PTY-backed tab.
type localTab struct {
	id       TabID
	title    string
	domainID DomainID
	cmd      *exec.Cmd
	ptmx     *os.File
	renderer term.Renderable
	palette  *term.Palette
}

// ID implements Tab.
func (t *localTab) ID() TabID { return t.id }

// Title implements Tab.
func (t *localTab) Title() string { return t.title }

// Renderer implements Tab.
func (t *localTab) Renderer() term.Renderable { return t.renderer }

// Writer implements Tab.
func (t *localTab) Writer() io.Writer { return t.ptmx }

// Output returns the read side of the PTY, for the goroutine feeding the
// terminal model.
func (t *localTab) Output() io.Reader { return t.ptmx }

// Resize implements Tab: the PTY and the model both learn the new size.
func (t *localTab) Resize(size PtySize) error {
	if err := pty.Setsize(t.ptmx, &pty.Winsize{
		Rows: size.Rows,
		Cols: size.Cols,
		X:    size.PixelWidth,
		Y:    size.PixelHeight,
	}); err != nil {
		return fmt.Errorf("mux: resizing pty: %w", err)
	}
	t.renderer.Resize(int(size.Rows), int(size.Cols), int(size.PixelWidth), int(size.PixelHeight))
	return nil
}

// Palette implements Tab.
func (t *localTab) Palette() *term.Palette { return t.palette }

// DomainID implements Tab.
func (t *localTab) DomainID() DomainID { return t.domainID }

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
