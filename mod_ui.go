package cornellbox

import (
	"sort"
)

type ValKind uint8

const (
	ValAuto ValKind = iota
	ValPx
	ValPercent
)

// Val is a length in a UiNode: automatic, pixels or a percentage of the parent.
type Val struct {
	Kind  ValKind
	Value float32
}

var Auto = Val{}

func Px(v float32) Val      { return Val{Kind: ValPx, Value: v} }
func Percent(v float32) Val { return Val{Kind: ValPercent, Value: v} }

func (v Val) IsAuto() bool { return v.Kind == ValAuto }

func (v Val) resolve(parent float32) float32 {
	switch v.Kind {
	case ValPx:
		return v.Value
	case ValPercent:
		return parent * v.Value / 100
	default:
		return 0
	}
}

// UiRect is a resolved screen rectangle in window pixels, origin top-left.
type UiRect struct {
	X, Y, W, H float32
}

func (r UiRect) Right() float32  { return r.X + r.W }
func (r UiRect) Bottom() float32 { return r.Y + r.H }

// UiNode is an absolutely positioned box. Offsets are measured from the
// matching edge of the parent, or of the window for root nodes.
type UiNode struct {
	Left, Right, Top, Bottom Val
	Width, Height            Val

	Background  [4]float32
	BorderColor [4]float32
	BorderWidth float32

	// Filled by the layout system.
	Computed UiRect
	Depth    int
}

// Parent attaches a UiNode to another entity's UiNode.
type Parent struct {
	Entity EntityId
}

type UiState struct {
	Measure TextMeasurer
}

type UiModule struct{}

func (UiModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[UiState](app); !ok {
		cmd.AddResources(&UiState{Measure: approxMeasure})
	}
	app.UseSystem(System(uiLayoutSystem).InStage(PostUpdate))
}

type uiLayoutEntry struct {
	node   *UiNode
	text   *UiText
	parent EntityId
	hasPar bool
	done   bool
	busy   bool
}

func uiLayoutSystem(cmd *Commands, input *Input, state *UiState) {
	if input.WindowWidth == 0 || input.WindowHeight == 0 {
		return
	}
	window := UiRect{W: float32(input.WindowWidth), H: float32(input.WindowHeight)}

	entries := map[EntityId]*uiLayoutEntry{}
	MakeQuery1[UiNode](cmd).Map(func(eid EntityId, node *UiNode) bool {
		entries[eid] = &uiLayoutEntry{node: node}
		return true
	})
	MakeQuery1[UiText](cmd).Map(func(eid EntityId, text *UiText) bool {
		if e, ok := entries[eid]; ok {
			e.text = text
		}
		return true
	})
	MakeQuery1[Parent](cmd).Map(func(eid EntityId, p *Parent) bool {
		if e, ok := entries[eid]; ok {
			e.parent = p.Entity
			e.hasPar = true
		}
		return true
	})

	measure := state.Measure
	if measure == nil {
		measure = approxMeasure
	}

	var resolve func(eid EntityId)
	resolve = func(eid EntityId) {
		e := entries[eid]
		if e.done {
			return
		}
		parentRect, depth := window, 0
		// A missing or cyclic parent falls back to the window.
		if e.hasPar && !e.busy {
			if pe, ok := entries[e.parent]; ok && !pe.busy {
				e.busy = true
				resolve(e.parent)
				e.busy = false
				parentRect, depth = pe.node.Computed, pe.node.Depth+1
			}
		}
		e.node.Computed = layoutNode(e.node, e.text, parentRect, measure)
		e.node.Depth = depth
		e.done = true
	}

	ids := make([]EntityId, 0, len(entries))
	for eid := range entries {
		ids = append(ids, eid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, eid := range ids {
		resolve(eid)
	}
}

func layoutNode(node *UiNode, text *UiText, parent UiRect, measure TextMeasurer) UiRect {
	var contentW, contentH float32
	if text != nil {
		contentW, contentH = measureText(measure, text)
	}

	x, w := layoutAxis(node.Left, node.Right, node.Width, parent.X, parent.W, contentW)
	y, h := layoutAxis(node.Top, node.Bottom, node.Height, parent.Y, parent.H, contentH)
	return UiRect{X: x, Y: y, W: w, H: h}
}

// layoutAxis positions a span along one axis. start is the near edge offset
// (left or top) and end the far edge offset (right or bottom).
func layoutAxis(start, end, size Val, origin, extent, content float32) (pos, length float32) {
	switch {
	case !size.IsAuto():
		length = size.resolve(extent)
	case !start.IsAuto() && !end.IsAuto():
		length = extent - start.resolve(extent) - end.resolve(extent)
	default:
		length = content
	}
	if length < 0 {
		length = 0
	}

	switch {
	case !start.IsAuto():
		pos = origin + start.resolve(extent)
	case !end.IsAuto():
		pos = origin + extent - end.resolve(extent) - length
	default:
		pos = origin
	}
	return pos, length
}

// UiDrawOrder returns node entities sorted parents first, then by entity id.
func UiDrawOrder(cmd *Commands) []EntityId {
	type item struct {
		eid   EntityId
		depth int
	}
	var items []item
	MakeQuery1[UiNode](cmd).Map(func(eid EntityId, node *UiNode) bool {
		items = append(items, item{eid, node.Depth})
		return true
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth < items[j].depth
		}
		return items[i].eid < items[j].eid
	})
	out := make([]EntityId, len(items))
	for i, it := range items {
		out[i] = it.eid
	}
	return out
}
