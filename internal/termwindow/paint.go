package termwindow

import (
	"errors"
	"image"
	"time"

	"github.com/fanzeyi/wezterm/internal/atlas"
	"github.com/fanzeyi/wezterm/internal/font"
	"github.com/fanzeyi/wezterm/internal/glyphcache"
	"github.com/fanzeyi/wezterm/internal/logging"
	"github.com/fanzeyi/wezterm/internal/mux"
	"github.com/fanzeyi/wezterm/internal/term"
	"github.com/fanzeyi/wezterm/internal/window"
)

// maxAtlasRetries bounds the rebuild-and-retry protocol: one rebuild per
// paint. A second exhaustion in the same frame means the required size
// estimate was wrong; the frame is skipped and the next paint tries again
// from the larger atlas.
const maxAtlasRetries = 1

// paint renders one frame. Dirty lines are repainted against the current
// tab; a clean frame only clears the margins. Atlas exhaustion mid-frame
// triggers a rebuild at the reported size, invalidates the glyph cache
// and the whole grid, and retries once.
func (w *TermWindow) paint(ctx window.PaintContext) {
	if w.closing || ctx == nil {
		return
	}
	start := time.Now()

	tab := w.session.GetActiveTabForWindow(w.muxWindowID)
	if tab == nil {
		ctx.ClearRect(image.Rect(0, 0, ctx.Width(), ctx.Height()), window.RGB(0, 0, 0))
		return
	}

	for attempt := 0; ; attempt++ {
		err := w.paintTab(ctx, tab)
		if err == nil {
			break
		}

		var exhausted *atlas.OutOfTextureSpaceError
		if errors.As(err, &exhausted) && attempt < maxAtlasRetries {
			logging.Logger().Info("atlas exhausted, rebuilding",
				"current", w.atlas.Size(), "required", exhausted.RequiredSize)
			metrics, merr := w.fonts.DefaultFontMetrics()
			if merr != nil {
				logging.Logger().Error("font metrics during atlas rebuild", "error", merr)
				return
			}
			if rerr := w.recreateTextureAtlas(exhausted.RequiredSize, metrics); rerr != nil {
				logging.Logger().Error("atlas rebuild failed", "error", rerr)
				return
			}
			tab.Renderer().MakeAllLinesDirty()
			continue
		}

		// Dirty flags stay set, so the next frame repaints what this
		// one abandoned.
		logging.Logger().Error("paint failed", "error", err)
		return
	}

	w.updateTitle()
	logging.Logger().Debug("painted", "elapsed", time.Since(start))
}

// paintTab renders the dirty lines of one tab and clears the window
// margins. Dirty flags are cleared only after every line painted without
// error; an exhaustion error leaves them set for the retry.
func (w *TermWindow) paintTab(ctx window.PaintContext, tab mux.Tab) error {
	renderer := tab.Renderer()
	palette := tab.Palette()
	if palette == nil {
		palette = term.DefaultPalette()
	}

	rows, cols := renderer.PhysicalDimensions()
	cursor := renderer.CursorPosition()
	highlight := renderer.CurrentHighlight()

	for _, dirty := range renderer.DirtyLines() {
		if dirty.Index < 0 || dirty.Index >= rows {
			continue
		}
		if err := w.renderScreenLine(ctx, dirty, cols, palette, cursor, highlight); err != nil {
			return err
		}
	}
	renderer.CleanDirtyLines()

	// Margins not covered by the cell grid take the default background.
	bg := toColor(palette.Background)
	gridRight := cols * w.cellWidth
	gridBottom := rows * w.cellHeight
	if gridRight < ctx.Width() {
		ctx.ClearRect(image.Rect(gridRight, 0, ctx.Width(), ctx.Height()), bg)
	}
	if gridBottom < ctx.Height() {
		ctx.ClearRect(image.Rect(0, gridBottom, ctx.Width(), ctx.Height()), bg)
	}
	return nil
}

// renderScreenLine paints one dirty row: per attribute cluster it shapes
// the text, then paints every cell the shaped glyphs cover with the
// cursor, selection and cluster colors resolved in that priority order.
func (w *TermWindow) renderScreenLine(
	ctx window.PaintContext,
	dirty term.DirtyLine,
	cols int,
	palette *term.Palette,
	cursor term.CursorPosition,
	highlight *term.Hyperlink,
) error {
	line := dirty.Line
	if line == nil {
		return nil
	}
	rowY := dirty.Index * w.cellHeight

	for _, cluster := range line.Cluster() {
		attrs := cluster.Attrs
		style := font.Style{
			Bold:   attrs.Intensity == term.IntensityBold,
			Italic: attrs.Italic,
		}
		fnt, err := w.fonts.CachedFont(style)
		if err != nil {
			logging.Logger().Warn("loading styled font", "error", err)
			continue
		}

		fgColor, bgColor := w.resolveClusterColors(&attrs, palette)
		underline := attrs.Underline
		if underline == term.UnderlineNone &&
			attrs.Hyperlink != nil && attrs.Hyperlink.Equal(highlight) {
			// Hovered hyperlinks are underlined even when the cell
			// itself carries no underline attribute.
			underline = term.UnderlineSingle
		}

		glyphs, err := fnt.Shape(cluster.Text)
		if err != nil {
			logging.Logger().Warn("shaping cluster", "error", err)
			continue
		}

		for _, info := range glyphs {
			if info.Cluster < 0 || info.Cluster >= len(cluster.ByteToCellIdx) {
				continue
			}
			cellIdx := cluster.ByteToCellIdx[info.Cluster]

			key := glyphcache.Key{FontIdx: info.FontIdx, GlyphPos: info.GlyphPos, Style: style}
			cached, err := w.glyphs.GetOrCreate(key, info, func() (*font.RasterizedGlyph, error) {
				return fnt.RasterizeGlyph(info)
			})
			if err != nil {
				var exhausted *atlas.OutOfTextureSpaceError
				if errors.As(err, &exhausted) {
					return err
				}
				logging.Logger().Warn("rasterizing glyph",
					"glyph", info.GlyphPos, "error", err)
				continue
			}

			left := int(cached.XOffset + cached.BearingX)
			top := int(float64(w.cellHeight) + w.descender - (cached.YOffset + cached.BearingY))

			for glyphIdx := 0; glyphIdx < info.NumCells; glyphIdx++ {
				ci := cellIdx + glyphIdx
				if ci >= cols {
					break
				}
				cellX := ci * w.cellWidth
				fg, bg := cellColors(ci, dirty.Index, cursor, dirty.Selection, fgColor, bgColor, palette)

				ctx.ClearRect(
					image.Rect(cellX, rowY, cellX+w.cellWidth, rowY+w.cellHeight),
					toColor(bg))

				if cached.Sprite != nil {
					w.blitGlyphSlice(ctx, cached, glyphIdx, info.NumCells, cellX, rowY, left, top, fg)
				}

				lineColor := toColor(fg)
				switch underline {
				case term.UnderlineSingle:
					y := rowY + w.descenderPlusOne
					ctx.DrawLine(cellX, y, cellX+w.cellWidth-1, y, lineColor)
				case term.UnderlineDouble:
					y := rowY + w.descenderRow
					ctx.DrawLine(cellX, y, cellX+w.cellWidth-1, y, lineColor)
					y = rowY + w.descenderPlusTwo
					ctx.DrawLine(cellX, y, cellX+w.cellWidth-1, y, lineColor)
				}
				if attrs.Strikethrough {
					y := rowY + w.strikeRow
					ctx.DrawLine(cellX, y, cellX+w.cellWidth-1, y, lineColor)
				}
			}
		}
	}

	// Columns past the line content still honor cursor and selection.
	for ci := line.Len(); ci < cols; ci++ {
		cellX := ci * w.cellWidth
		_, bg := cellColors(ci, dirty.Index, cursor, dirty.Selection,
			palette.Foreground, palette.Background, palette)
		ctx.ClearRect(
			image.Rect(cellX, rowY, cellX+w.cellWidth, rowY+w.cellHeight),
			toColor(bg))
	}
	return nil
}

// blitGlyphSlice composites the portion of a glyph sprite that falls into
// one cell. The sprite spans numCells cells starting left pixels into the
// first one; each cell takes a cell-wide vertical slice, with the last
// cell absorbing the remainder.
func (w *TermWindow) blitGlyphSlice(
	ctx window.PaintContext,
	cached *glyphcache.CachedGlyph,
	glyphIdx, numCells, cellX, rowY, left, top int,
	fg term.RGBColor,
) {
	sprite := cached.Sprite

	srcStart := glyphIdx*w.cellWidth - left
	srcEnd := srcStart + w.cellWidth
	if glyphIdx == numCells-1 {
		srcEnd = sprite.Width
	}
	if srcStart < 0 {
		srcStart = 0
	}
	if srcEnd > sprite.Width {
		srcEnd = sprite.Width
	}
	if srcEnd <= srcStart {
		return
	}

	// Sprite x=0 lands at firstCellX+left; translate the slice start to
	// this cell's frame.
	dstX := cellX - glyphIdx*w.cellWidth + left + srcStart

	op := window.OpTinted(toColor(fg))
	if cached.HasColor {
		op = window.OpOver()
	}
	ctx.DrawImage(dstX, rowY+top,
		image.Rect(sprite.X+srcStart, sprite.Y, sprite.X+srcEnd, sprite.Y+sprite.Height),
		sprite.Surface(), op)
}

// resolveClusterColors resolves the cluster's foreground and background
// against the palette. Bold cells with a low indexed foreground take the
// bright variant, then reverse video swaps the resolved colors, so a
// bold reversed cell shows its brightened foreground as the background.
func (w *TermWindow) resolveClusterColors(attrs *term.CellAttributes, palette *term.Palette) (fg, bg term.RGBColor) {
	bg = palette.ResolveBg(attrs.Background)
	if idx, ok := attrs.Foreground.PaletteIdx(); ok && idx < 8 && attrs.Intensity == term.IntensityBold {
		fg = palette.Colors[idx+8]
	} else {
		fg = palette.ResolveFg(attrs.Foreground)
	}

	if attrs.Reverse {
		fg, bg = bg, fg
	}
	return fg, bg
}

// cellColors applies the per-cell overrides on top of the cluster colors.
// The cursor cell wins over selection, selection over the cluster.
func cellColors(
	cellIdx, lineIdx int,
	cursor term.CursorPosition,
	selection term.Range,
	fg, bg term.RGBColor,
	palette *term.Palette,
) (term.RGBColor, term.RGBColor) {
	if cursor.Y == lineIdx && cursor.X == cellIdx {
		return palette.CursorFg, palette.CursorBg
	}
	if selection.Contains(cellIdx) {
		return palette.SelectionFg, palette.SelectionBg
	}
	return fg, bg
}

func toColor(c term.RGBColor) window.Color {
	return window.RGB(c.R, c.G, c.B)
}
