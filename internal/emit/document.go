package emit

import (
	"fmt"
	"strings"
)

// preamble is emitted exactly once at the top of every document: backend
// initialization, registration of the standard layers, and the dimension
// style used by all linear dimensions. The dimstyle constants follow the
// structural drafting setup of the execution backend.
const preamble = `import ezdxf
from ezdxf import units

doc = ezdxf.new("R2010", setup=True)
doc.units = units.MM
msp = doc.modelspace()

for _name, _color in (("0", 7), ("2-DIMENSIONS-LINEAR", 256), ("3-TEXT-ANNOTATIONS", 256)):
    if _name not in doc.layers:
        doc.layers.add(_name, color=_color)

if "STRUCTURAL" in doc.dimstyles:
    del doc.dimstyles["STRUCTURAL"]
_dim = doc.dimstyles.add("STRUCTURAL")
_dim.dxf.dimtxt = 3.5
_dim.dxf.dimasz = 3.0
_dim.dxf.dimexo = 1.25
_dim.dxf.dimexe = 2.5
_dim.dxf.dimtad = 1
_dim.dxf.dimgap = 1.0
_dim.dxf.dimblk = "_ARCHTICK"
_dim.dxf.dimscale = 1.0
_dim.dxf.dimdec = 0
_dim.dxf.dimlunit = 2`

// Preamble returns the fixed initialization block.
func Preamble() string {
	return preamble
}

// Closing returns the statement that persists the drawing under the given
// title.
func Closing(title string) string {
	return fmt.Sprintf("doc.saveas(%s)", PyString(SanitizeTitle(title)+".dxf"))
}

// Document assembles the complete output: preamble, then every successfully
// translated block in original order separated by blank lines, then the
// closing save call.
func Document(blocks []string, title string) string {
	parts := make([]string, 0, len(blocks)+2)
	parts = append(parts, preamble)
	for _, b := range blocks {
		if b != "" {
			parts = append(parts, b)
		}
	}
	parts = append(parts, Closing(title))
	return strings.Join(parts, "\n\n") + "\n"
}

// SanitizeTitle strips characters that would break a filename out of the
// drawing title. An empty result falls back to "drawing".
func SanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '\'', '<', '>', '|', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(title))

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "drawing"
	}
	return cleaned
}
