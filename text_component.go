package cornellbox

// TextSection is one run of text with its own size and colour.
type TextSection struct {
	Value string
	Size  float32 // Pixels
	Color [4]float32
}

// UiText is drawn inside its UiNode's computed rect, sections left to right on one line.
type UiText struct {
	Sections []TextSection
}

// String concatenates all section values.
func (t UiText) String() string {
	s := ""
	for _, sec := range t.Sections {
		s += sec.Value
	}
	return s
}

// TextMeasurer returns the advance width and line height of text at a pixel size.
type TextMeasurer func(text string, size float32) (w, h float32)

// approxMeasure is used until a host installs a font-backed measurer.
func approxMeasure(text string, size float32) (float32, float32) {
	n := 0
	for range text {
		n++
	}
	return float32(n) * size * 0.55, size * 1.2
}

func measureText(measure TextMeasurer, t *UiText) (w, h float32) {
	for _, sec := range t.Sections {
		sw, sh := measure(sec.Value, sec.Size)
		w += sw
		if sh > h {
			h = sh
		}
	}
	return w, h
}
