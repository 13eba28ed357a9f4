package translate

// Kind identifies one supported DSL command. Command names are resolved to a
// Kind once, up front, so the set of supported commands lives in exactly one
// place and dispatch is a lookup over a closed enumeration rather than a
// switch on strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindLine
	KindCircle
	KindArc
	KindPolyline
	KindRectangle
	KindText
	KindMText
	KindDimension
	KindLayer
	KindColor
	KindLinetype
	KindHatch
	KindSpline
	KindBlock
)

// kindByName maps every accepted command name, aliases included, to its Kind.
var kindByName = map[string]Kind{
	"line":       KindLine,
	"circle":     KindCircle,
	"arc":        KindArc,
	"polyline":   KindPolyline,
	"lwpolyline": KindPolyline,
	"rectangle":  KindRectangle,
	"text":       KindText,
	"mtext":      KindMText,
	"dimension":  KindDimension,
	"dimlinear":  KindDimension,
	"layer":      KindLayer,
	"color":      KindColor,
	"linetype":   KindLinetype,
	"hatch":      KindHatch,
	"spline":     KindSpline,
	"block":      KindBlock,
}

// KindOf resolves a lowercased command name to its Kind. Unrecognized names
// resolve to KindUnknown; the caller records those as skipped.
func KindOf(name string) Kind {
	if k, ok := kindByName[name]; ok {
		return k
	}
	return KindUnknown
}

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindLine:      "line",
	KindCircle:    "circle",
	KindArc:       "arc",
	KindPolyline:  "polyline",
	KindRectangle: "rectangle",
	KindText:      "text",
	KindMText:     "mtext",
	KindDimension: "dimension",
	KindLayer:     "layer",
	KindColor:     "color",
	KindLinetype:  "linetype",
	KindHatch:     "hatch",
	KindSpline:    "spline",
	KindBlock:     "block",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}
