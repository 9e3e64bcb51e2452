package termwindow

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"testing"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/fanzeyi/wezterm/internal/clipboard"
	"github.com/fanzeyi/wezterm/internal/font"
	"github.com/fanzeyi/wezterm/internal/mux"
	"github.com/fanzeyi/wezterm/internal/term"
	"github.com/fanzeyi/wezterm/internal/window"
)

// fakeFonts is a FontSource with fixed metrics: 8x16 cells with a
// descender of -4 at scale one, scaling linearly with font scale and
// DPI scale.
type fakeFonts struct {
	scale      float64
	dpiScale   float64
	rescales   int
	rasterized map[uint32]int

	glyphW, glyphH int
}

func newFakeFonts() *fakeFonts {
	return &fakeFonts{
		scale:      1,
		dpiScale:   1,
		rasterized: make(map[uint32]int),
		glyphW:     6,
		glyphH:     12,
	}
}

func (f *fakeFonts) factor() float64 { return f.scale * f.dpiScale }

func (f *fakeFonts) metrics() font.Metrics {
	k := f.factor()
	return font.Metrics{CellWidth: 8 * k, CellHeight: 16 * k, Descender: -4 * k}
}

func (f *fakeFonts) CachedFont(style font.Style) (font.Font, error) {
	return &fakeFont{fonts: f, style: style}, nil
}

func (f *fakeFonts) DefaultFontMetrics() (font.Metrics, error) { return f.metrics(), nil }

func (f *fakeFonts) FontScale() float64 { return f.scale }

func (f *fakeFonts) ChangeScaling(fontScale, dpiScale float64) {
	f.scale = fontScale
	f.dpiScale = dpiScale
	f.rescales++
}

// fakeFont shapes one glyph per rune and rasterizes every non-space
// glyph as a solid box with bearing (1, 12).
type fakeFont struct {
	fonts *fakeFonts
	style font.Style
}

func (f *fakeFont) Shape(text string) ([]font.GlyphInfo, error) {
	var out []font.GlyphInfo
	for i, r := range text {
		cells := runewidth.RuneWidth(r)
		if cells < 1 {
			cells = 1
		}
		out = append(out, font.GlyphInfo{
			Text:     string(r),
			GlyphPos: uint32(r),
			Cluster:  i,
			NumCells: cells,
			XAdvance: 8 * f.fonts.factor() * float64(cells),
		})
	}
	return out, nil
}

func (f *fakeFont) RasterizeGlyph(info font.GlyphInfo) (*font.RasterizedGlyph, error) {
	f.fonts.rasterized[info.GlyphPos]++
	r := []rune(info.Text)[0]
	if unicode.IsSpace(r) {
		return &font.RasterizedGlyph{}, nil
	}
	w, h := f.fonts.glyphW, f.fonts.glyphH
	data := make([]uint8, w*h*4)
	for i := range data {
		data[i] = 0xff
	}
	return &font.RasterizedGlyph{Data: data, Width: w, Height: h, BearingX: 1, BearingY: 12}, nil
}

func (f *fakeFont) Metrics() font.Metrics { return f.fonts.metrics() }

func (f *fakeFont) HasColor() bool { return false }

// imageOp records one DrawImage call.
type imageOp struct {
	dstX, dstY int
	src        image.Rectangle
	op         window.CompositeOp
}

// lineOp records one DrawLine call.
type lineOp struct {
	x0, y0, x1, y1 int
	color          window.Color
}

// recorder is a PaintContext that records draw calls instead of
// rasterizing them.
type recorder struct {
	width, height int
	clears        []image.Rectangle
	clearColors   []window.Color
	lines         []lineOp
	images        []imageOp
}

func (r *recorder) Width() int  { return r.width }
func (r *recorder) Height() int { return r.height }

func (r *recorder) ClearRect(rect image.Rectangle, c window.Color) {
	r.clears = append(r.clears, rect)
	r.clearColors = append(r.clearColors, c)
}

func (r *recorder) DrawLine(x0, y0, x1, y1 int, c window.Color) {
	r.lines = append(r.lines, lineOp{x0, y0, x1, y1, c})
}

func (r *recorder) DrawImage(dstX, dstY int, src image.Rectangle, _ window.ImageSource, op window.CompositeOp) {
	r.images = append(r.images, imageOp{dstX, dstY, src, op})
}

// fakeDomain spawns screen tabs.
type fakeDomain struct {
	id      mux.DomainID
	spawned int
}

func (d *fakeDomain) ID() mux.DomainID { return d.id }
func (d *fakeDomain) Name() string     { return "fake" }

func (d *fakeDomain) Spawn(size mux.PtySize, _ []string, _ mux.WindowID) (mux.Tab, error) {
	d.spawned++
	screen := term.NewScreen(int(size.Rows), int(size.Cols))
	return mux.NewScreenTab(fmt.Sprintf("spawn-%d", d.spawned), screen, io.Discard), nil
}

type fixture struct {
	tw       *TermWindow
	session  *mux.Mux
	windowID mux.WindowID
	tab      *mux.ScreenTab
	screen   *term.Screen
	input    *bytes.Buffer
	fonts    *fakeFonts
	platform *window.Headless
	win      *window.HeadlessWindow
	clip     *clipboard.InMemory
	domain   *fakeDomain
}

func newFixture(t *testing.T, rows, cols int) *fixture {
	t.Helper()

	f := &fixture{
		session:  mux.New(),
		screen:   term.NewScreen(rows, cols),
		input:    &bytes.Buffer{},
		fonts:    newFakeFonts(),
		platform: window.NewHeadless(),
		clip:     clipboard.NewInMemory(),
		domain:   &fakeDomain{id: 1},
	}
	f.session.AddDomain(f.domain)
	f.windowID = f.session.NewEmptyWindow()
	f.tab = mux.NewScreenTab("tab", f.screen, f.input)
	if err := f.session.AddTab(f.windowID, f.tab); err != nil {
		t.Fatalf("AddTab: %v", err)
	}

	cfg := DefaultConfig()
	cfg.AtlasSize = 256
	tw, err := New(cfg, f.session, f.platform, f.fonts, f.clip, f.windowID)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.tw = tw
	f.win = f.platform.Window(0)
	if f.win == nil {
		t.Fatal("no headless window opened")
	}
	return f
}

func (f *fixture) paintRecorded() *recorder {
	rec := &recorder{width: f.win.Surface().Width(), height: f.win.Surface().Height()}
	f.tw.DispatchEvent(window.Event{Kind: window.EventPaint, Paint: rec})
	return rec
}

func TestNewSizesWindowToGrid(t *testing.T) {
	f := newFixture(t, 4, 10)
	if w, h := f.win.Surface().Width(), f.win.Surface().Height(); w != 80 || h != 64 {
		t.Fatalf("surface = %dx%d, want 80x64", w, h)
	}
	if !f.win.Visible() {
		t.Fatal("window not shown after creation")
	}
	if cw, ch := f.tw.CellSize(); cw != 8 || ch != 16 {
		t.Fatalf("cell = %dx%d, want 8x16", cw, ch)
	}
}

func TestPaintOnlyTouchesDirtyRows(t *testing.T) {
	f := newFixture(t, 10, 4)
	f.win.Paint() // initial full paint

	if f.screen.HasDirtyLines() {
		t.Fatal("screen still dirty after first paint")
	}
	rec := f.paintRecorded()
	if len(rec.clears)+len(rec.images) != 0 {
		t.Fatalf("clean frame drew %d clears, %d images", len(rec.clears), len(rec.images))
	}

	f.screen.SetLine(2, term.LineFromText("ab", term.CellAttributes{}, 4))
	f.screen.SetLine(5, term.LineFromText("cd", term.CellAttributes{}, 4))
	rec = f.paintRecorded()
	if len(rec.clears) == 0 {
		t.Fatal("dirty rows painted nothing")
	}
	for _, r := range rec.clears {
		inRow2 := r.Min.Y >= 2*16 && r.Max.Y <= 3*16
		inRow5 := r.Min.Y >= 5*16 && r.Max.Y <= 6*16
		if !inRow2 && !inRow5 {
			t.Fatalf("clear %v outside the dirty rows", r)
		}
	}
	if f.screen.HasDirtyLines() {
		t.Fatal("dirty flags not cleared after paint")
	}
}

func TestGlyphPlacement(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.screen.SetLine(0, term.LineFromText(" A", term.CellAttributes{}, 2))
	// Cursor sits on the blank first cell.
	f.screen.SetCursor(0, 0)

	rec := f.paintRecorded()

	if len(rec.clears) != 2 {
		t.Fatalf("clears = %d, want one per cell", len(rec.clears))
	}
	palette := f.tab.Palette()
	if rec.clearColors[0] != window.RGB(palette.CursorBg.R, palette.CursorBg.G, palette.CursorBg.B) {
		t.Fatalf("cursor cell bg = %v, want cursor color", rec.clearColors[0])
	}

	if len(rec.images) != 1 {
		t.Fatalf("images = %d, want exactly one glyph blit", len(rec.images))
	}
	img := rec.images[0]
	// Bearing (1, 12) in a 16-tall cell with descender -4 puts the box
	// at x = cell + 1, y = 0.
	if img.dstX != 8+1 || img.dstY != 0 {
		t.Fatalf("glyph at %d,%d, want 9,0", img.dstX, img.dstY)
	}
	if img.src.Dx() != 6 || img.src.Dy() != 12 {
		t.Fatalf("glyph src = %v, want 6x12", img.src)
	}
	if img.op.Mode != window.CompositeTintedOver {
		t.Fatal("monochrome glyph not tinted")
	}
	fg := palette.Foreground
	if img.op.Tint != window.RGB(fg.R, fg.G, fg.B) {
		t.Fatalf("tint = %v, want default foreground", img.op.Tint)
	}
	if len(rec.lines) != 0 {
		t.Fatalf("unexpected decorations: %v", rec.lines)
	}
}

func TestUnderlineAndStrikethroughRows(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.screen.SetCursor(1, 0)
	line := term.NewLine(2)
	line.SetCell(0, term.Cell{Text: "a", Width: 1, Attrs: term.CellAttributes{
		Underline:     term.UnderlineDouble,
		Strikethrough: true,
	}})
	f.screen.SetLine(0, line)

	rec := f.paintRecorded()

	// Descender row 12, so the double underline sits at 12 and 14 and
	// the strikethrough at 6. The cell at column 1 is blank with default
	// attributes and draws nothing.
	rows := map[int]int{}
	for _, l := range rec.lines {
		if l.x0 >= 8 {
			t.Fatalf("decoration %v outside the styled cell", l)
		}
		rows[l.y0]++
	}
	for _, want := range []int{12, 14, 6} {
		if rows[want] != 1 {
			t.Fatalf("decoration rows = %v, want 12, 14 and 6", rows)
		}
	}
}

func TestHoveredHyperlinkForcesUnderline(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.screen.SetCursor(1, 0)
	link := &term.Hyperlink{URI: "https://example.com/"}
	f.screen.SetLine(0, term.LineFromText("a", term.CellAttributes{Hyperlink: link}, 2))

	rec := f.paintRecorded()
	if len(rec.lines) != 0 {
		t.Fatal("unhovered link drew an underline")
	}

	f.screen.SetHighlight(link)
	f.screen.MakeAllLinesDirty()
	rec = f.paintRecorded()
	found := false
	for _, l := range rec.lines {
		if l.y0 == 13 && l.x0 < 8 {
			found = true
		}
	}
	if !found {
		t.Fatalf("hovered link underline missing: %v", rec.lines)
	}
}

func TestSelectionAndBrightening(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.screen.SetCursor(0, 0)
	f.screen.SetLine(1, term.LineFromText("abcd", term.CellAttributes{
		Foreground: term.PaletteIndex(1),
		Intensity:  term.IntensityBold,
	}, 4))
	f.screen.SetSelection(1, term.Range{Start: 2, End: 4})

	rec := f.paintRecorded()
	palette := f.tab.Palette()

	selBg := window.RGB(palette.SelectionBg.R, palette.SelectionBg.G, palette.SelectionBg.B)
	bright := palette.Colors[9]
	sawSelection, sawBright := false, false
	for i, r := range rec.clears {
		if r.Min.Y < 16 {
			continue // row 0
		}
		if r.Min.X >= 2*8 && rec.clearColors[i] == selBg {
			sawSelection = true
		}
	}
	for _, img := range rec.images {
		if img.dstY >= 16 && img.dstX < 2*8 &&
			img.op.Tint == window.RGB(bright.R, bright.G, bright.B) {
			sawBright = true
		}
	}
	if !sawSelection {
		t.Fatal("selected cells not painted with the selection background")
	}
	if !sawBright {
		t.Fatal("bold indexed foreground not brightened")
	}
}

func TestReverseVideoSwapsColors(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.screen.SetCursor(1, 0)
	f.screen.SetLine(0, term.LineFromText("a", term.CellAttributes{
		Foreground: term.PaletteIndex(2),
		Background: term.PaletteIndex(4),
		Reverse:    true,
	}, 2))

	rec := f.paintRecorded()
	palette := f.tab.Palette()
	wantBg := palette.Colors[2]
	if rec.clearColors[0] != window.RGB(wantBg.R, wantBg.G, wantBg.B) {
		t.Fatalf("reversed bg = %v, want palette index 2", rec.clearColors[0])
	}
	wantFg := palette.Colors[4]
	if rec.images[0].op.Tint != window.RGB(wantFg.R, wantFg.G, wantFg.B) {
		t.Fatalf("reversed fg tint = %v, want palette index 4", rec.images[0].op.Tint)
	}
}

func TestBoldReverseBrightensThenSwaps(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.screen.SetCursor(1, 0)
	f.screen.SetLine(0, term.LineFromText("a", term.CellAttributes{
		Foreground: term.PaletteIndex(3),
		Background: term.PaletteIndex(0),
		Intensity:  term.IntensityBold,
		Reverse:    true,
	}, 2))

	rec := f.paintRecorded()
	palette := f.tab.Palette()

	// Bold lifts the index 3 foreground to 11 before reverse swaps the
	// resolved colors, so the bright yellow becomes the background and
	// the old background tints the glyph.
	wantBg := palette.Colors[11]
	if rec.clearColors[0] != window.RGB(wantBg.R, wantBg.G, wantBg.B) {
		t.Fatalf("bg = %v, want brightened palette index 11", rec.clearColors[0])
	}
	wantFg := palette.Colors[0]
	if rec.images[0].op.Tint != window.RGB(wantFg.R, wantFg.G, wantFg.B) {
		t.Fatalf("fg tint = %v, want palette index 0", rec.images[0].op.Tint)
	}
}

func TestClickOpensHoveredLink(t *testing.T) {
	f := newFixture(t, 2, 4)

	var opened []string
	cfg := DefaultConfig()
	cfg.AtlasSize = 256
	cfg.OnOpenLink = func(uri string) error {
		opened = append(opened, uri)
		return nil
	}
	if _, err := New(cfg, f.session, f.platform, f.fonts, f.clip, f.windowID); err != nil {
		t.Fatalf("New: %v", err)
	}
	win := f.platform.Window(1)

	click := window.MouseEvent{Kind: window.MouseDown, Press: window.MousePressLeft, X: 4, Y: 4}
	win.SendMouse(click)
	if len(opened) != 0 {
		t.Fatalf("click with no hovered link opened %v", opened)
	}

	f.screen.SetHighlight(&term.Hyperlink{URI: "https://example.com/"})
	win.SendMouse(click)
	if len(opened) != 1 || opened[0] != "https://example.com/" {
		t.Fatalf("opened = %v, want the hovered link", opened)
	}

	win.SendMouse(window.MouseEvent{Kind: window.MouseDown, Press: window.MousePressRight, X: 4, Y: 4})
	win.SendMouse(window.MouseEvent{Kind: window.MouseMove, X: 4, Y: 4})
	if len(opened) != 1 {
		t.Fatalf("non-left-click events opened %v", opened)
	}
}

func TestAtlasExhaustionRecovery(t *testing.T) {
	f := newFixture(t, 1, 10)
	// Wide solid glyphs: only a few fit into a 64 pixel atlas.
	f.fonts.glyphW = 60

	cfg := DefaultConfig()
	cfg.AtlasSize = 64
	tw, err := New(cfg, f.session, f.platform, f.fonts, f.clip, f.windowID)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f.screen.SetLine(0, term.LineFromText("abcdef", term.CellAttributes{}, 10))
	rec := &recorder{width: 80, height: 16}
	tw.DispatchEvent(window.Event{Kind: window.EventPaint, Paint: rec})

	if f.screen.HasDirtyLines() {
		t.Fatal("frame was abandoned instead of recovering")
	}
	if got := f.fonts.rasterized['a']; got != 2 {
		t.Fatalf("'a' rasterized %d times, want once per atlas generation", got)
	}
	if len(rec.images) < 6 {
		t.Fatalf("images = %d, want all six glyphs blitted", len(rec.images))
	}
}

func TestKeyForwardWritesToTab(t *testing.T) {
	f := newFixture(t, 2, 4)
	res := f.win.SendKey(window.KeyEvent{Key: window.CharKey('a'), KeyDown: true})
	if !res.KeyHandled {
		t.Fatal("plain key not handled")
	}
	if f.input.String() != "a" {
		t.Fatalf("input = %q, want a", f.input.String())
	}
}

func TestKeyUpIgnored(t *testing.T) {
	f := newFixture(t, 2, 4)
	res := f.win.SendKey(window.KeyEvent{Key: window.CharKey('a'), KeyDown: false})
	if res.KeyHandled {
		t.Fatal("key release reported handled")
	}
	if f.input.Len() != 0 {
		t.Fatal("key release wrote to the transport")
	}
}

func TestComposedTextBypassesBindings(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.SendKey(window.KeyEvent{
		Key:       window.CharKey('v'),
		Modifiers: window.ModSuper,
		Composed:  "本",
		KeyDown:   true,
	})
	if f.input.String() != "本" {
		t.Fatalf("input = %q, want the composed text", f.input.String())
	}
}

func TestPasteAssignment(t *testing.T) {
	f := newFixture(t, 2, 4)
	if err := f.clip.SetContents("hello"); err != nil {
		t.Fatalf("SetContents: %v", err)
	}
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('v'), Modifiers: window.ModSuper, KeyDown: true})
	if f.input.String() != "hello" {
		t.Fatalf("input = %q, want clipboard contents", f.input.String())
	}
}

func TestSpawnTabActivatesAndTitles(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('t'), Modifiers: window.ModSuper, KeyDown: true})

	win := f.session.GetWindow(f.windowID)
	if win.Len() != 2 {
		t.Fatalf("tabs = %d, want 2", win.Len())
	}
	if win.GetActiveIdx() != 1 {
		t.Fatalf("active = %d, want the new tab", win.GetActiveIdx())
	}
	if got := f.win.Title(); got != "[2/2] spawn-1" {
		t.Fatalf("title = %q", got)
	}
}

func TestActivateTabRelativeWraps(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('t'), Modifiers: window.ModSuper, KeyDown: true})
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('t'), Modifiers: window.ModSuper, KeyDown: true})

	win := f.session.GetWindow(f.windowID)
	if win.GetActiveIdx() != 2 {
		t.Fatalf("active = %d, want 2", win.GetActiveIdx())
	}

	// Forward from the last tab wraps to the first.
	f.win.SendKey(window.KeyEvent{
		Key:       window.KeyCode{Kind: window.KeyPageDown},
		Modifiers: window.ModCtrl,
		KeyDown:   true,
	})
	if win.GetActiveIdx() != 0 {
		t.Fatalf("active = %d, want wrap to 0", win.GetActiveIdx())
	}
	// Backward from the first wraps to the last.
	f.win.SendKey(window.KeyEvent{
		Key:       window.KeyCode{Kind: window.KeyPageUp},
		Modifiers: window.ModCtrl,
		KeyDown:   true,
	})
	if win.GetActiveIdx() != 2 {
		t.Fatalf("active = %d, want wrap to 2", win.GetActiveIdx())
	}
}

func TestFontSizeKeysRescale(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('='), Modifiers: window.ModSuper, KeyDown: true})

	if f.fonts.rescales != 1 {
		t.Fatalf("rescales = %d, want 1", f.fonts.rescales)
	}
	if f.fonts.scale != fontScaleStep {
		t.Fatalf("scale = %v, want %v", f.fonts.scale, fontScaleStep)
	}
	// 8 * 1.1 and 16 * 1.1, rounded up.
	if cw, ch := f.tw.CellSize(); cw != 9 || ch != 18 {
		t.Fatalf("cell = %dx%d, want 9x18", cw, ch)
	}

	f.win.SendKey(window.KeyEvent{Key: window.CharKey('0'), Modifiers: window.ModSuper, KeyDown: true})
	if f.fonts.scale != 1.0 {
		t.Fatalf("scale = %v after reset, want 1.0", f.fonts.scale)
	}
}

func TestDPIChangeRebuildsAndResizesTabs(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.Resize(128, 96, 192)

	if f.fonts.rescales != 1 {
		t.Fatalf("rescales = %d, want 1", f.fonts.rescales)
	}
	if f.fonts.dpiScale != 2.0 {
		t.Fatalf("dpiScale = %v, want 2.0", f.fonts.dpiScale)
	}
	if cw, ch := f.tw.CellSize(); cw != 16 || ch != 32 {
		t.Fatalf("cell = %dx%d, want 16x32", cw, ch)
	}
	rows, cols := f.screen.PhysicalDimensions()
	if rows != 3 || cols != 8 {
		t.Fatalf("grid = %dx%d, want 3x8", rows, cols)
	}
}

func TestSameScaleResizeSkipsRebuild(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.Resize(160, 64, 96)

	if f.fonts.rescales != 0 {
		t.Fatalf("rescales = %d, want 0", f.fonts.rescales)
	}
	rows, cols := f.screen.PhysicalDimensions()
	if rows != 4 || cols != 20 {
		t.Fatalf("grid = %dx%d, want 4x20", rows, cols)
	}
}

func TestMouseHoverSetsCursorShape(t *testing.T) {
	f := newFixture(t, 2, 4)

	f.win.SendMouse(window.MouseEvent{Kind: window.MouseMove, X: 4, Y: 4})
	if f.win.Cursor() != window.CursorText {
		t.Fatal("pointer over plain cells is not the text cursor")
	}

	f.screen.SetHighlight(&term.Hyperlink{URI: "https://example.com/"})
	f.win.SendMouse(window.MouseEvent{Kind: window.MouseMove, X: 4, Y: 4})
	if f.win.Cursor() != window.CursorHand {
		t.Fatal("pointer over a hovered link is not the hand cursor")
	}
}

func TestMouseClickInvalidates(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.Paint()

	f.win.SendMouse(window.MouseEvent{Kind: window.MouseMove, X: 1, Y: 1})
	if f.win.Invalidated() {
		t.Fatal("bare move requested a repaint")
	}
	f.win.SendMouse(window.MouseEvent{Kind: window.MouseDown, Press: window.MousePressLeft})
	if !f.win.Invalidated() {
		t.Fatal("click did not request a repaint")
	}
}

func TestDirtyPollTimer(t *testing.T) {
	f := newFixture(t, 2, 4)

	f.platform.Tick()
	if !f.win.Invalidated() {
		t.Fatal("dirty screen did not trigger an invalidate")
	}
	f.win.Paint()
	f.platform.Tick()
	if f.win.Invalidated() {
		t.Fatal("clean screen triggered an invalidate")
	}
}

func TestCloseProtocolClosesTabsFirst(t *testing.T) {
	f := newFixture(t, 2, 4)
	f.win.SendKey(window.KeyEvent{Key: window.CharKey('t'), Modifiers: window.ModSuper, KeyDown: true})

	if f.win.RequestClose() {
		t.Fatal("window closed while a second tab remained")
	}
	win := f.session.GetWindow(f.windowID)
	if win.Len() != 1 {
		t.Fatalf("tabs = %d after first close, want 1", win.Len())
	}

	if !f.win.RequestClose() {
		t.Fatal("window refused to close with its last tab")
	}
	if !f.win.Closed() {
		t.Fatal("window not closed")
	}
	if f.session.GetWindow(f.windowID) != nil {
		t.Fatal("session window not removed on teardown")
	}
}

func TestTimerClosesWindowWithoutTabs(t *testing.T) {
	f := newFixture(t, 2, 4)

	f.session.RemoveTab(f.tab.ID())
	f.session.GetWindow(f.windowID).RemoveByID(f.tab.ID())

	f.platform.Tick()
	if !f.win.Closed() {
		t.Fatal("window survived with no tabs")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.AtlasSize != 4096 || cfg.Title == "" || cfg.TimerInterval == 0 {
		t.Fatalf("defaults not filled: %+v", cfg)
	}

	bad := Config{AtlasSize: 32}
	if err := bad.Validate(); err == nil {
		t.Fatal("tiny atlas accepted")
	}
	worse := Config{TimerInterval: -1}
	if err := worse.Validate(); err == nil {
		t.Fatal("negative interval accepted")
	}
}
