package headless

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"overlayhijack/internal/gfx"
)

type textFactory struct {
	desk     *Desktop
	kind     gfx.TextFactoryType
	sources  map[string]*text.FontSource
	released bool
}

func (f *textFactory) Release() {
	if f.released {
		return
	}
	f.released = true
	f.desk.live.TextFactories--
	for name, src := range f.sources {
		_ = src.Close()
		delete(f.sources, name)
	}
}

func (f *textFactory) source(family string) (*text.FontSource, error) {
	if src, ok := f.sources[family]; ok {
		return src, nil
	}
	data, ok := f.desk.fonts[family]
	if !ok {
		data = goregular.TTF
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("%s: font %q: %w", OpTextFormat, family, err)
	}
	if f.sources == nil {
		f.sources = make(map[string]*text.FontSource)
	}
	f.sources[family] = src
	return src, nil
}

func (f *textFactory) CreateTextFormat(p gfx.TextFormatParams) (gfx.TextFormat, error) {
	if err := f.desk.fault(OpTextFormat); err != nil {
		return nil, err
	}
	if p.Size <= 0 {
		return nil, fmt.Errorf("%s: font size %v must be positive", OpTextFormat, p.Size)
	}
	src, err := f.source(p.FamilyName)
	if err != nil {
		return nil, err
	}
	f.desk.live.TextFormats++
	f.desk.created.TextFormats++
	return &TextFormat{
		desk:   f.desk,
		Params: p,
		face:   src.Face(float64(p.Size)),
	}, nil
}

func (f *textFactory) CreateTextLayout(s string, format gfx.TextFormat, maxWidth, maxHeight float32) (gfx.TextLayout, error) {
	if err := f.desk.fault(OpTextLayout); err != nil {
		return nil, err
	}
	tf, ok := format.(*TextFormat)
	if !ok || tf.released {
		return nil, fmt.Errorf("%s: invalid text format", OpTextLayout)
	}
	opts := text.LayoutOptions{MaxWidth: float64(maxWidth), LineSpacing: 1}
	layout := text.LayoutText(s, tf.face, tf.face.Size(), opts)
	f.desk.live.TextLayouts++
	f.desk.created.TextLayouts++
	return &TextLayout{
		desk:      f.desk,
		Text:      s,
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
		Width:     layout.Width,
		Height:    layout.Height,
		face:      tf.face,
		lines:     layoutLines(s, tf.face, opts, layout),
	}, nil
}

// layoutLine is one wrapped line and its baseline within the layout.
type layoutLine struct {
	text     string
	baseline float64
}

// layoutLines recovers the text of every line in layout. Glyph clusters are
// byte offsets into their paragraph, so each paragraph is laid out again on
// its own to map wrapped lines back to substrings.
func layoutLines(s string, face text.Face, opts text.LayoutOptions, layout *text.Layout) []layoutLine {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []layoutLine
	for _, para := range strings.Split(s, "\n") {
		var paraLines []text.Line
		if para == "" {
			paraLines = []text.Line{{}}
		} else {
			paraLines = text.LayoutText(para, face, face.Size(), opts).Lines
		}
		for i := range paraLines {
			start := lineStart(&paraLines[i], len(para))
			end := len(para)
			if i+1 < len(paraLines) {
				end = lineStart(&paraLines[i+1], len(para))
			}
			if start > end {
				start = end
			}
			out = append(out, layoutLine{text: strings.TrimSpace(para[start:end])})
		}
	}
	for i := range out {
		if i < len(layout.Lines) {
			out[i].baseline = layout.Lines[i].Y
		}
	}
	return out
}

func lineStart(l *text.Line, fallback int) int {
	if len(l.Glyphs) == 0 {
		return fallback
	}
	start := l.Glyphs[0].Cluster
	for _, g := range l.Glyphs[1:] {
		if g.Cluster < start {
			start = g.Cluster
		}
	}
	return start
}

// TextFormat is a font face at a fixed size.
type TextFormat struct {
	desk     *Desktop
	Params   gfx.TextFormatParams
	face     text.Face
	released bool
}

func (f *TextFormat) Release() {
	if f.released {
		return
	}
	f.released = true
	f.desk.live.TextFormats--
}

// TextLayout is text measured against a maximum box.
type TextLayout struct {
	desk      *Desktop
	Text      string
	MaxWidth  float32
	MaxHeight float32

	// Width and Height are the measured extent of the laid out text.
	Width  float64
	Height float64

	face     text.Face
	lines    []layoutLine
	released bool
}

// Lines returns the laid out lines, wrapped to MaxWidth.
func (l *TextLayout) Lines() []string {
	out := make([]string, len(l.lines))
	for i, line := range l.lines {
		out[i] = line.text
	}
	return out
}

func (l *TextLayout) Release() {
	if l.released {
		return
	}
	l.released = true
	l.desk.live.TextLayouts--
}

// Released reports whether Release has been called.
func (l *TextLayout) Released() bool { return l.released }
