package emit

import (
	"fmt"
	"strconv"
	"strings"
)

// Drawing conventions shared by the preamble and every translated entity.
// Layer names and the dimension style mirror the professional setup of the
// drafting backend this code is executed against.
const (
	DefaultLayer   = "0"
	DimensionLayer = "2-DIMENSIONS-LINEAR"
	TextLayer      = "3-TEXT-ANNOTATIONS"
	DimStyle       = "STRUCTURAL"

	DefaultColor = 7   // white, the ACI default
	ByLayerColor = 256 // ACI "by layer"

	DefaultLinetype = "CONTINUOUS"
)

// Num renders a coordinate or size as a Python float literal without
// trailing zero noise (12000, 0.5, -3.25).
func Num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Point renders an (x, y) tuple literal.
func Point(x, y float64) string {
	return fmt.Sprintf("(%s, %s)", Num(x), Num(y))
}

// PointList renders a list of (x, y) tuples from a flat x1,y1,x2,y2,...
// coordinate slice. The caller guarantees an even length.
func PointList(coords []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i+1 < len(coords); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Point(coords[i], coords[i+1]))
	}
	b.WriteByte(']')
	return b.String()
}

// PyString renders s as a double-quoted Python string literal.
func PyString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
