package generator

import (
	"fmt"
	"strings"
)

// systemPrompt teaches the model the command language the translator accepts.
// It is deliberately restrictive: one statement per line, nothing outside
// the documented command set.
const systemPrompt = `You are a CAD drafting assistant for construction drawings.
Respond ONLY with drawing commands, one per line, in this Lisp-style syntax:

(line x1 y1 x2 y2)
(circle x y radius)
(arc x y radius start_angle end_angle)
(polyline x1 y1 x2 y2 ...)
(rectangle x1 y1 x2 y2)
(text x y height "content")
(mtext x y width height "content")
(dimension x1 y1 x2 y2 base_x base_y "optional override text")
(layer "name")
(color aci_index)
(linetype "name")
(hatch "pattern" x y)
(spline x1 y1 x2 y2 x3 y3 ...)
(block "name" x y)

Rules:
- All coordinates and sizes are in the requested drawing units, unquoted.
- Quote text content and names; NEVER quote numbers.
- Lines starting with ; are comments.
- Organize entities on named layers and dimension every major measurement.
- Do not write anything that is not a command or a comment.`

// SystemPrompt returns the fixed instruction block sent with every call.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the requirement, the drawing settings and any
// conversational context into the user message.
func BuildUserPrompt(req *Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Drawing requirement:\n%s\n", strings.TrimSpace(req.Requirement))

	s := req.Settings
	b.WriteString("\nDrawing settings:\n")
	fmt.Fprintf(&b, "- scale 1:%g, units %s, paper %s\n", s.Scale, s.Units, s.PaperSize)
	fmt.Fprintf(&b, "- text height %g, dimension text height %g\n", s.TextHeight, s.DimensionTextHeight)
	fmt.Fprintf(&b, "- colors: lines %d, text %d, dimensions %d\n", s.LineColor, s.TextColor, s.DimensionColor)

	if c := req.Context; c != nil {
		if c.ProjectScope != "" {
			fmt.Fprintf(&b, "\nProject scope:\n%s\n", c.ProjectScope)
		}
		if len(c.PriorDesigns) > 0 {
			b.WriteString("\nEarlier drawings in this project:\n")
			for _, d := range c.PriorDesigns {
				fmt.Fprintf(&b, "---\n%s\n", strings.TrimSpace(d))
			}
		}
		if len(c.Discussion) > 0 {
			b.WriteString("\nDiscussion so far:\n")
			for _, turn := range c.Discussion {
				fmt.Fprintf(&b, "- %s\n", turn)
			}
		}
	}

	return b.String()
}

// ExtractDSL pulls the command statements out of a raw model response:
// markdown fences are removed and only lines that are commands or comments
// survive. Everything else is chatter.
func ExtractDSL(response string) string {
	var keep []string
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		if strings.HasPrefix(trimmed, "(") || strings.HasPrefix(trimmed, ";") {
			keep = append(keep, trimmed)
		}
	}
	return strings.Join(keep, "\n")
}
