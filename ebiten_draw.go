package cornellbox

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var clearColor = color.NRGBA{R: 8, G: 8, B: 10, A: 255}

// fontCache holds Go Regular faces keyed by pixel size.
type fontCache struct {
	source *text.GoTextFaceSource
	faces  map[float32]*text.GoTextFace
}

func newFontCache() (*fontCache, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &fontCache{source: source, faces: map[float32]*text.GoTextFace{}}, nil
}

func (f *fontCache) face(size float32) *text.GoTextFace {
	face, ok := f.faces[size]
	if !ok {
		face = &text.GoTextFace{
			Source:    f.source,
			Size:      float64(size),
			Direction: text.DirectionLeftToRight,
		}
		f.faces[size] = face
	}
	return face
}

func (f *fontCache) measure(s string, size float32) (float32, float32) {
	face := f.face(size)
	w, _ := text.Measure(s, face, 0)
	m := face.Metrics()
	return float32(w), float32(m.HAscent + m.HDescent)
}

func toNRGBA(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

func drawGizmosSystem(canvas *EbitenCanvas, frame *GizmoFrame) {
	if canvas.Screen == nil {
		return
	}
	for _, l := range frame.Lines {
		vector.StrokeLine(canvas.Screen, l.From.X(), l.From.Y(), l.To.X(), l.To.Y(), 1, toNRGBA(l.Color), true)
	}
	for _, m := range frame.Markers {
		vector.FillCircle(canvas.Screen, m.At.X(), m.At.Y(), m.Radius, toNRGBA(m.Color), true)
	}
}

func drawUiSystem(cmd *Commands, canvas *EbitenCanvas, fonts *fontCache) {
	if canvas.Screen == nil {
		return
	}
	screen := canvas.Screen
	for _, eid := range UiDrawOrder(cmd) {
		node, ok := GetComponent[UiNode](cmd, eid)
		if !ok {
			continue
		}
		r := node.Computed
		if node.Background[3] > 0 && r.W > 0 && r.H > 0 {
			vector.FillRect(screen, r.X, r.Y, r.W, r.H, toNRGBA(node.Background), false)
		}
		if node.BorderWidth > 0 && node.BorderColor[3] > 0 && r.W > 0 && r.H > 0 {
			vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, node.BorderWidth, toNRGBA(node.BorderColor), false)
		}

		label, ok := GetComponent[UiText](cmd, eid)
		if !ok || fonts == nil {
			continue
		}
		x := float64(r.X)
		for _, sec := range label.Sections {
			if sec.Value == "" {
				continue
			}
			face := fonts.face(sec.Size)
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, float64(r.Y))
			op.ColorScale.ScaleWithColor(toNRGBA(sec.Color))
			text.Draw(screen, sec.Value, face, op)
			w, _ := text.Measure(sec.Value, face, 0)
			x += w
		}
	}
}
