// Command softrender renders a terminal screen offscreen and writes the
// result as a PNG. It exercises the whole paint path, from shaping
// through the glyph cache and atlas down to the software surface, with
// no OS windowing layer involved.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fanzeyi/wezterm/internal/clipboard"
	"github.com/fanzeyi/wezterm/internal/font"
	"github.com/fanzeyi/wezterm/internal/logging"
	"github.com/fanzeyi/wezterm/internal/mux"
	"github.com/fanzeyi/wezterm/internal/term"
	"github.com/fanzeyi/wezterm/internal/termwindow"
	"github.com/fanzeyi/wezterm/internal/window"
)

func main() {
	fontPath := pflag.String("font", "", "path to a TTF font file (required)")
	pointSize := pflag.Float64("size", font.DefaultPointSize, "font size in points")
	cols := pflag.Int("cols", 80, "screen width in columns")
	rows := pflag.Int("rows", 24, "screen height in rows")
	text := pflag.String("text", "", "text to render, newline separated rows (default: a style showcase)")
	out := pflag.String("out", "softrender.png", "output PNG path")
	verbose := pflag.Bool("verbose", false, "enable debug logging")
	pflag.Parse()

	if err := run(*fontPath, *pointSize, *cols, *rows, *text, *out, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "softrender:", err)
		os.Exit(1)
	}
}

func run(fontPath string, pointSize float64, cols, rows int, text, out string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if fontPath == "" {
		return errors.New("--font is required")
	}
	ttf, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}
	fonts, err := font.NewConfiguration(ttf, pointSize)
	if err != nil {
		return err
	}

	screen := term.NewScreen(rows, cols)
	if text != "" {
		for i, row := range strings.Split(text, "\n") {
			if i >= rows {
				break
			}
			screen.SetLine(i, term.LineFromText(row, term.CellAttributes{}, cols))
		}
	} else {
		showcase(screen, cols)
	}
	screen.SetCursor(0, 0)

	session := mux.New()
	windowID := session.NewEmptyWindow()
	tab := mux.NewScreenTab("softrender", screen, io.Discard)
	if err := session.AddTab(windowID, tab); err != nil {
		return err
	}

	platform := window.NewHeadless()
	cfg := termwindow.DefaultConfig()
	cfg.Title = "softrender"
	if _, err := termwindow.New(cfg, session, platform, fonts, clipboard.NewInMemory(), windowID); err != nil {
		return err
	}

	win := platform.Window(0)
	win.Paint()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, win.Surface().Image().ToNRGBA())
}

// showcase fills the screen with one row per text style.
func showcase(screen *term.Screen, cols int) {
	line := func(idx int, text string, attrs term.CellAttributes) {
		screen.SetLine(idx, term.LineFromText(text, attrs, cols))
	}

	line(0, "plain text", term.CellAttributes{})
	line(1, "bold text", term.CellAttributes{Intensity: term.IntensityBold})
	line(2, "italic text", term.CellAttributes{Italic: true})
	line(3, "underlined text", term.CellAttributes{Underline: term.UnderlineSingle})
	line(4, "double underlined text", term.CellAttributes{Underline: term.UnderlineDouble})
	line(5, "struck through text", term.CellAttributes{Strikethrough: true})
	line(6, "reverse video text", term.CellAttributes{Reverse: true})
	line(7, "red on default", term.CellAttributes{Foreground: term.PaletteIndex(1)})
	line(8, "bold red brightens", term.CellAttributes{
		Foreground: term.PaletteIndex(1),
		Intensity:  term.IntensityBold,
	})
	line(9, "true color", term.CellAttributes{Foreground: term.TrueColor(0xff, 0x8c, 0x00)})
	line(10, "wide glyphs: 日本語 テスト", term.CellAttributes{})
	line(11, "https://example.com/", term.CellAttributes{
		Hyperlink: &term.Hyperlink{URI: "https://example.com/"},
	})
	line(12, "selected region on this row", term.CellAttributes{})
	screen.SetSelection(12, term.Range{Start: 0, End: 8})
}
