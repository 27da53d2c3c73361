package control

// Drag is true while the slider is being dragged.
type Drag struct {
	Active bool
}

// Pointer is one frame of primary pointer state. Coordinates are screen
// pixels with the origin at the top-left corner. Present is false when the
// cursor is outside the window.
type Pointer struct {
	X, Y         float32
	Present      bool
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

// Rect is an axis-aligned screen rectangle. Edges are inclusive.
type Rect struct {
	Left, Top, Right, Bottom float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

func (r Rect) Width() float32  { return r.Right - r.Left }
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Slider describes the on-screen track in pixels. The track is centered
// horizontally and anchored BottomMarginPx above the bottom window edge.
// GrabExtraYPx extends the hit region upwards so the thin track is easy to grab.
type Slider struct {
	WidthPx        float32 `yaml:"width_px"`
	HeightPx       float32 `yaml:"height_px"`
	KnobSizePx     float32 `yaml:"knob_size_px"`
	BottomMarginPx float32 `yaml:"bottom_margin_px"`
	GrabExtraYPx   float32 `yaml:"grab_extra_y_px"`
}

// HitRect returns the region that starts a drag for a window of the given size.
func (s Slider) HitRect(winW, winH float32) Rect {
	cx := winW * 0.5
	return Rect{
		Left:   cx - s.WidthPx*0.5,
		Right:  cx + s.WidthPx*0.5,
		Top:    winH - (s.BottomMarginPx + s.HeightPx + s.GrabExtraYPx),
		Bottom: winH - s.BottomMarginPx,
	}
}

// KnobLeft is the knob offset from the left edge of the track.
func (s Slider) KnobLeft(value float32) float32 {
	return (s.WidthPx - s.KnobSizePx) * Clamp01(value)
}

// Track advances the drag state by one frame and maps the cursor x position
// onto state.Value while a drag is active. Once grabbed the drag is sticky:
// only a release, or a missing cursor with the button up, ends it.
// It reports whether state.Value changed.
func Track(state *State, drag *Drag, p Pointer, hit Rect) bool {
	if !p.Present {
		if !p.Pressed {
			drag.Active = false
		}
		return false
	}

	if p.JustPressed {
		drag.Active = hit.Contains(p.X, p.Y)
	} else if p.JustReleased {
		drag.Active = false
	}

	if !drag.Active {
		return false
	}

	var v float32
	if w := hit.Width(); w > 0 {
		v = Clamp01((p.X - hit.Left) / w)
	}
	if v == state.Value {
		return false
	}
	state.Value = v
	return true
}
