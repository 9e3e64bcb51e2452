package font

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// styledFont is one font at a fixed style and scale. It shapes through
// go-text/typesetting's HarfBuzz port and rasterizes through
// x/image/font/opentype.
//
// The embedded HarfbuzzShaper has mutable internal state and is reused
// across sequential Shape calls; the single-threaded ownership model of
// the renderer makes that safe.
type styledFont struct {
	style     Style
	gtFont    *gtfont.Font
	gtFace    *gtfont.Face
	otFont    *opentype.Font
	pointSize float64
	dpi       float64
	ppem      float64
	metrics   Metrics
	shaper    *shaping.HarfbuzzShaper
}

// Shape implements Font. It shapes left-to-right cluster text into
// positioned glyphs with terminal cell spans.
func (f *styledFont) Shape(text string) ([]GlyphInfo, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)

	// Rune index -> byte offset, so glyph cluster offsets can be
	// reported in bytes (the line's byte-to-cell mapping is byte based).
	byteOff := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteOff[i] = off
		off += len(string(r))
	}
	byteOff[len(runes)] = off

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.gtFace,
		Size:      floatToFixed(f.ppem),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	output := f.shaper.Shape(input)

	glyphs := output.Glyphs
	infos := make([]GlyphInfo, 0, len(glyphs))
	for i, g := range glyphs {
		runeIdx := g.TextIndex()

		// The cluster's text runs up to the next distinct cluster
		// (LTR shaping keeps cluster indices non-decreasing).
		endRune := len(runes)
		for j := i + 1; j < len(glyphs); j++ {
			if next := glyphs[j].TextIndex(); next > runeIdx {
				endRune = next
				break
			}
		}
		segment := string(runes[runeIdx:endRune])

		numCells := runewidth.StringWidth(segment)
		if numCells < 1 {
			numCells = 1
		}

		infos = append(infos, GlyphInfo{
			Text:     segment,
			FontIdx:  0,
			GlyphPos: uint32(g.GlyphID),
			Cluster:  byteOff[runeIdx],
			NumCells: numCells,
			XAdvance: fixedToFloat(g.XAdvance),
			YAdvance: fixedToFloat(g.YAdvance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		})
	}
	return infos, nil
}

// Metrics implements Font.
func (f *styledFont) Metrics() Metrics { return f.metrics }

// HasColor implements Font. The opentype rasterizer produces alpha masks
// only, so glyphs are always tinted with the foreground color.
func (f *styledFont) HasColor() bool { return false }

// detectScript inspects the runes and returns the script of the first
// non-space character. Terminal clusters are split per attribute run, so
// mixed-script runs are rare enough for this heuristic.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 pixel size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// bytesReader adapts a byte slice for the typesetting parser.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
