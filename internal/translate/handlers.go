package translate

import (
	"fmt"
	"strings"

	"github.com/liscad/liscad/internal/dsl"
	"github.com/liscad/liscad/internal/emit"
)

// handlerFunc translates one command into a target-code block. Handlers for
// the mutating commands (layer/color/linetype) update st; geometry handlers
// only read it.
type handlerFunc func(cmd dsl.Command, st *State) (string, error)

// handlers is the dispatch table over the closed command enumeration.
var handlers = map[Kind]handlerFunc{
	KindLine:      translateLine,
	KindCircle:    translateCircle,
	KindArc:       translateArc,
	KindPolyline:  translatePolyline,
	KindRectangle: translateRectangle,
	KindText:      translateText,
	KindMText:     translateMText,
	KindDimension: translateDimension,
	KindLayer:     translateLayer,
	KindColor:     translateColor,
	KindLinetype:  translateLinetype,
	KindHatch:     translateHatch,
	KindSpline:    translateSpline,
	KindBlock:     translateBlock,
}

// geomAttribs renders the dxfattribs dict that tags geometry with the active
// drafting state. The linetype is only mentioned when it differs from the
// document default.
func geomAttribs(st *State) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"layer": %s, "color": %d`, emit.PyString(st.Layer), st.Color)
	if st.Linetype != emit.DefaultLinetype {
		fmt.Fprintf(&b, `, "linetype": %s`, emit.PyString(st.Linetype))
	}
	b.WriteByte('}')
	return b.String()
}

func translateLine(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("line", cmd.Params, 4); err != nil {
		return "", err
	}
	coords, err := coordPairs("line", cmd.Params[:4])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("msp.add_line(%s, %s, dxfattribs=%s)",
		emit.Point(coords[0], coords[1]), emit.Point(coords[2], coords[3]), geomAttribs(st)), nil
}

func translateCircle(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("circle", cmd.Params, 3); err != nil {
		return "", err
	}
	x, err := number("circle", "center x", cmd.Params[0])
	if err != nil {
		return "", err
	}
	y, err := number("circle", "center y", cmd.Params[1])
	if err != nil {
		return "", err
	}
	r, err := number("circle", "radius", cmd.Params[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("msp.add_circle(%s, radius=%s, dxfattribs=%s)",
		emit.Point(x, y), emit.Num(r), geomAttribs(st)), nil
}

func translateArc(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("arc", cmd.Params, 5); err != nil {
		return "", err
	}
	x, err := number("arc", "center x", cmd.Params[0])
	if err != nil {
		return "", err
	}
	y, err := number("arc", "center y", cmd.Params[1])
	if err != nil {
		return "", err
	}
	r, err := number("arc", "radius", cmd.Params[2])
	if err != nil {
		return "", err
	}
	// Angles are degrees, counter-clockwise from the positive X axis.
	a0, err := number("arc", "start angle", cmd.Params[3])
	if err != nil {
		return "", err
	}
	a1, err := number("arc", "end angle", cmd.Params[4])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("msp.add_arc(center=%s, radius=%s, start_angle=%s, end_angle=%s, dxfattribs=%s)",
		emit.Point(x, y), emit.Num(r), emit.Num(a0), emit.Num(a1), geomAttribs(st)), nil
}

func translatePolyline(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams(cmd.Name, cmd.Params, 4); err != nil {
		return "", err
	}
	coords, err := coordPairs(cmd.Name, cmd.Params)
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("msp.add_lwpolyline(%s, dxfattribs=%s)", emit.PointList(coords), geomAttribs(st))
	if cmd.Name == "lwpolyline" {
		// The lightweight alias only changes this marker, not the geometry.
		return "# lightweight polyline\n" + code, nil
	}
	return code, nil
}

func translateRectangle(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("rectangle", cmd.Params, 4); err != nil {
		return "", err
	}
	c, err := coordPairs("rectangle", cmd.Params[:4])
	if err != nil {
		return "", err
	}
	x1, y1, x2, y2 := c[0], c[1], c[2], c[3]
	corners := []float64{x1, y1, x2, y1, x2, y2, x1, y2}
	return fmt.Sprintf("msp.add_lwpolyline(%s, close=True, dxfattribs=%s)",
		emit.PointList(corners), geomAttribs(st)), nil
}

func translateText(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("text", cmd.Params, 4); err != nil {
		return "", err
	}
	x, err := number("text", "x", cmd.Params[0])
	if err != nil {
		return "", err
	}
	y, err := number("text", "y", cmd.Params[1])
	if err != nil {
		return "", err
	}
	h, err := number("text", "height", cmd.Params[2])
	if err != nil {
		return "", err
	}
	content, err := stringParam("text", "content", cmd.Params[3])
	if err != nil {
		return "", err
	}
	// Annotations always land on the dedicated text layer, whatever the
	// active layer is.
	return fmt.Sprintf("msp.add_text(%s, dxfattribs={\"layer\": %s, \"height\": %s}).set_placement(%s)",
		emit.PyString(content), emit.PyString(emit.TextLayer), emit.Num(h), emit.Point(x, y)), nil
}

func translateMText(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("mtext", cmd.Params, 5); err != nil {
		return "", err
	}
	x, err := number("mtext", "x", cmd.Params[0])
	if err != nil {
		return "", err
	}
	y, err := number("mtext", "y", cmd.Params[1])
	if err != nil {
		return "", err
	}
	w, err := number("mtext", "width", cmd.Params[2])
	if err != nil {
		return "", err
	}
	h, err := number("mtext", "height", cmd.Params[3])
	if err != nil {
		return "", err
	}
	content, err := stringParam("mtext", "content", cmd.Params[4])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("_mtext = msp.add_mtext(%s, dxfattribs={\"layer\": %s, \"char_height\": %s, \"width\": %s})\n_mtext.set_location(%s)",
		emit.PyString(content), emit.PyString(emit.TextLayer), emit.Num(h), emit.Num(w), emit.Point(x, y)), nil
}

func translateDimension(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams(cmd.Name, cmd.Params, 6); err != nil {
		return "", err
	}
	// The dimension path uses the safe number parser: its failure messages
	// carry remediation hints for the quoted-value-in-numeric-slot mistake.
	fields := []string{"x1", "y1", "x2", "y2", "base x", "base y"}
	vals := make([]float64, 6)
	for i, field := range fields {
		v, err := numberSafe(cmd.Name, field, cmd.Params[i])
		if err != nil {
			return "", err
		}
		vals[i] = v
	}

	override := ""
	if len(cmd.Params) >= 7 {
		text, err := stringParam(cmd.Name, "text override", cmd.Params[6])
		if err != nil {
			return "", err
		}
		override = fmt.Sprintf(", text=%s", emit.PyString(text))
	}

	return fmt.Sprintf("_d = msp.add_linear_dim(base=%s, p1=%s, p2=%s, dimstyle=%s%s, dxfattribs={\"layer\": %s})\n_d.render()",
		emit.Point(vals[4], vals[5]), emit.Point(vals[0], vals[1]), emit.Point(vals[2], vals[3]),
		emit.PyString(emit.DimStyle), override, emit.PyString(emit.DimensionLayer)), nil
}

func translateLayer(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("layer", cmd.Params, 1); err != nil {
		return "", err
	}
	name, err := stringParam("layer", "name", cmd.Params[0])
	if err != nil {
		return "", err
	}
	st.Layer = name
	// Idempotent creation guard, then the switch is just state.
	return fmt.Sprintf("if %s not in doc.layers:\n    doc.layers.add(%s)\n# active layer: %s",
		emit.PyString(name), emit.PyString(name), name), nil
}

func translateColor(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("color", cmd.Params, 1); err != nil {
		return "", err
	}
	v, err := number("color", "index", cmd.Params[0])
	if err != nil {
		return "", err
	}
	st.Color = int(v)
	// Colors are applied by later commands reading the state.
	return fmt.Sprintf("# active color: %d", st.Color), nil
}

func translateLinetype(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("linetype", cmd.Params, 1); err != nil {
		return "", err
	}
	name, err := stringParam("linetype", "name", cmd.Params[0])
	if err != nil {
		return "", err
	}
	st.Linetype = name
	return fmt.Sprintf("# active linetype: %s", name), nil
}

func translateHatch(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("hatch", cmd.Params, 3); err != nil {
		return "", err
	}
	pattern, err := stringParam("hatch", "pattern", cmd.Params[0])
	if err != nil {
		return "", err
	}
	x, err := number("hatch", "x", cmd.Params[1])
	if err != nil {
		return "", err
	}
	y, err := number("hatch", "y", cmd.Params[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# hatch %q at %s: boundary definition is not modeled by this translator",
		pattern, emit.Point(x, y)), nil
}

func translateSpline(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("spline", cmd.Params, 6); err != nil {
		return "", err
	}
	coords, err := coordPairs("spline", cmd.Params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("msp.add_spline(fit_points=%s, dxfattribs=%s)",
		emit.PointList(coords), geomAttribs(st)), nil
}

func translateBlock(cmd dsl.Command, st *State) (string, error) {
	if err := requireParams("block", cmd.Params, 3); err != nil {
		return "", err
	}
	name, err := stringParam("block", "name", cmd.Params[0])
	if err != nil {
		return "", err
	}
	x, err := number("block", "x", cmd.Params[1])
	if err != nil {
		return "", err
	}
	y, err := number("block", "y", cmd.Params[2])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# block insert %q at %s: block bodies are not modeled",
		name, emit.Point(x, y)), nil
}
