// Statemachine visualization - renders compiled machines as SVG

package visualization

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/statec-xyz/go-statec/machine"
)

// SVGOptions controls machine rendering
type SVGOptions struct {
	StateWidth    float64
	StateHeight   float64
	StateSpacingX float64
	StateSpacingY float64
	Columns       int
	Padding       float64
	ShowEvents    bool
	ShowInitial   bool
}

// DefaultSVGOptions returns sensible defaults
func DefaultSVGOptions() *SVGOptions {
	return &SVGOptions{
		StateWidth:    110,
		StateHeight:   44,
		StateSpacingX: 190,
		StateSpacingY: 110,
		Columns:       3,
		Padding:       60,
		ShowEvents:    true,
		ShowInitial:   true,
	}
}

// statePosition holds x, y coordinates for a state box center
type statePosition struct {
	x, y float64
}

// MachineSVG renders a compiled machine as an SVG state diagram. States are
// laid out on a grid in declaration order, so the initial state is always
// the first box.
func MachineSVG(spec *machine.Spec, opts *SVGOptions) (string, error) {
	if opts == nil {
		opts = DefaultSVGOptions()
	}
	if spec.NumStates() == 0 {
		return "", fmt.Errorf("visualization: machine has no states")
	}

	layout := layoutStates(spec, opts)

	// Calculate bounds
	maxX, maxY := 0.0, 0.0
	for _, pos := range layout {
		if pos.x > maxX {
			maxX = pos.x
		}
		if pos.y > maxY {
			maxY = pos.y
		}
	}
	width := maxX + opts.StateWidth/2 + opts.Padding
	height := maxY + opts.StateHeight/2 + opts.Padding

	if width < 200 {
		width = 200
	}
	if height < 100 {
		height = 100
	}

	var buf bytes.Buffer

	// SVG header
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`,
		width, height, width, height))
	buf.WriteString("\n")

	// Styles
	buf.WriteString(`<defs>`)
	buf.WriteString(`<style>`)
	buf.WriteString(`.state { fill: #e3f2fd; stroke: #1976d2; stroke-width: 2; rx: 8; }`)
	buf.WriteString(`.state-initial { stroke-width: 3; }`)
	buf.WriteString(`.transition { stroke: #666; stroke-width: 1.5; fill: none; }`)
	buf.WriteString(`.transition-self { stroke: #999; }`)
	buf.WriteString(`.arrowhead { fill: #666; }`)
	buf.WriteString(`.initial-marker { fill: #333; }`)
	buf.WriteString(`.state-label { font-family: system-ui, Arial; font-size: 12px; fill: #333; text-anchor: middle; dominant-baseline: middle; }`)
	buf.WriteString(`.event-label { font-family: system-ui, Arial; font-size: 9px; fill: #666; text-anchor: middle; }`)
	buf.WriteString(`.chart-title { font-family: system-ui, Arial; font-size: 14px; font-weight: bold; fill: #333; }`)
	buf.WriteString(`</style>`)

	// Arrowhead marker
	buf.WriteString(`<marker id="sm-arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`)
	buf.WriteString(`<polygon points="0 0, 10 3.5, 0 7" class="arrowhead"/>`)
	buf.WriteString(`</marker>`)
	buf.WriteString(`</defs>`)
	buf.WriteString("\n")

	// Title
	if spec.Name != "" {
		buf.WriteString(fmt.Sprintf(`<text x="10" y="24" class="chart-title">%s</text>`,
			escapeXML(spec.Name)))
		buf.WriteString("\n")
	}

	// Draw transitions first (behind states)
	for _, trans := range spec.Transitions() {
		drawTransition(&buf, spec, trans, layout, opts)
	}

	// Draw states
	for id, name := range spec.States {
		drawState(&buf, name, layout[machine.StateID(id)], id == 0, opts)
	}

	// Initial marker
	if opts.ShowInitial {
		drawInitialMarker(&buf, layout[spec.InitialState()], opts)
	}

	buf.WriteString("</svg>\n")

	return buf.String(), nil
}

// SaveMachineSVG renders a machine to SVG and saves it to a file
func SaveMachineSVG(spec *machine.Spec, filename string, opts *SVGOptions) error {
	svgString, err := MachineSVG(spec, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(svgString), 0644)
}

// layoutStates places states on a grid in declaration order
func layoutStates(spec *machine.Spec, opts *SVGOptions) map[machine.StateID]statePosition {
	cols := opts.Columns
	if cols < 1 {
		cols = 1
	}
	layout := make(map[machine.StateID]statePosition, spec.NumStates())
	for i := 0; i < spec.NumStates(); i++ {
		col := i % cols
		row := i / cols
		layout[machine.StateID(i)] = statePosition{
			x: opts.Padding + opts.StateWidth/2 + float64(col)*opts.StateSpacingX,
			y: opts.Padding + opts.StateHeight/2 + float64(row)*opts.StateSpacingY,
		}
	}
	return layout
}

func drawState(buf *bytes.Buffer, name string, pos statePosition, initial bool, opts *SVGOptions) {
	class := "state"
	if initial {
		class = "state state-initial"
	}
	buf.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" class="%s"/>`,
		pos.x-opts.StateWidth/2, pos.y-opts.StateHeight/2, opts.StateWidth, opts.StateHeight, class))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="state-label">%s</text>`,
		pos.x, pos.y, escapeXML(name)))
	buf.WriteString("\n")
}

func drawInitialMarker(buf *bytes.Buffer, pos statePosition, opts *SVGOptions) {
	cx := pos.x - opts.StateWidth/2 - 24
	cy := pos.y
	buf.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" class="initial-marker"/>`, cx, cy))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="transition" marker-end="url(#sm-arrowhead)"/>`,
		cx+5, cy, pos.x-opts.StateWidth/2, cy))
	buf.WriteString("\n")
}

func drawTransition(buf *bytes.Buffer, spec *machine.Spec, trans machine.Transition, layout map[machine.StateID]statePosition, opts *SVGOptions) {
	fromID, _ := spec.StateIndex(trans.State)
	toID, _ := spec.StateIndex(trans.Target)
	from := layout[fromID]
	to := layout[toID]
	label := trans.Event

	if trans.State == trans.Target {
		// Self loop above the state box
		x := from.x
		top := from.y - opts.StateHeight/2
		buf.WriteString(fmt.Sprintf(`<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" class="transition transition-self" marker-end="url(#sm-arrowhead)"/>`,
			x-15, top, x-25, top-35, x+25, top-35, x+15, top))
		buf.WriteString("\n")
		if opts.ShowEvents {
			buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="event-label">%s</text>`,
				x, top-32, escapeXML(label)))
			buf.WriteString("\n")
		}
		return
	}

	x1, y1, x2, y2 := edgeEndpoints(from, to, opts)
	buf.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="transition" marker-end="url(#sm-arrowhead)"/>`,
		x1, y1, x2, y2))
	buf.WriteString("\n")
	if opts.ShowEvents {
		mx := (x1 + x2) / 2
		my := (y1+y2)/2 - 5
		buf.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="event-label">%s</text>`,
			mx, my, escapeXML(label)))
		buf.WriteString("\n")
	}
}

// edgeEndpoints clips a center-to-center line to the state box borders
func edgeEndpoints(from, to statePosition, opts *SVGOptions) (x1, y1, x2, y2 float64) {
	dx := to.x - from.x
	dy := to.y - from.y

	x1, y1 = clipToBox(from, dx, dy, opts)
	x2, y2 = clipToBox(to, -dx, -dy, opts)
	return
}

func clipToBox(pos statePosition, dx, dy float64, opts *SVGOptions) (float64, float64) {
	hw := opts.StateWidth / 2
	hh := opts.StateHeight / 2

	if dx == 0 && dy == 0 {
		return pos.x, pos.y
	}

	// Scale the direction vector to the nearest box edge
	scale := 1.0
	if dx != 0 {
		scale = hw / abs(dx)
	}
	if dy != 0 {
		if s := hh / abs(dy); s < scale || dx == 0 {
			scale = s
		}
	}
	return pos.x + dx*scale, pos.y + dy*scale
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// escapeXML escapes characters with special meaning in SVG text nodes
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
