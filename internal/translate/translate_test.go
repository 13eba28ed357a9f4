package translate

import (
	"context"
	"strings"
	"testing"

	"github.com/liscad/liscad/internal/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translateDoc(t *testing.T, input string) *Result {
	t.Helper()
	return Document(context.Background(), input, Options{Title: "test"})
}

func TestCommands_ArityErrors(t *testing.T) {
	t.Parallel()

	t.Run("short line yields one arity error naming the command", func(t *testing.T) {
		res := translateDoc(t, "(line 0 0)\n(circle 5 5 2)")

		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "line:")
		assert.Contains(t, res.Errors[0], "at least 4")
		assert.False(t, res.Success)

		// The bad statement never stops the rest of the document.
		assert.Equal(t, 1, res.Stats.Errored)
		assert.Equal(t, 1, res.Stats.Translated)
		assert.Contains(t, res.Code, "add_circle")
		assert.NotContains(t, res.Code, "add_line")
	})

	t.Run("every command enforces its documented minimum", func(t *testing.T) {
		cases := map[string]string{
			"line":      "(line 1 2 3)",
			"circle":    "(circle 1 2)",
			"arc":       "(arc 1 2 3 4)",
			"polyline":  "(polyline 1 2 3)",
			"rectangle": "(rectangle 1 2 3)",
			"text":      "(text 1 2 3)",
			"mtext":     "(mtext 1 2 3 4)",
			"dimension": "(dimension 1 2 3 4 5)",
			"layer":     "(layer)",
			"color":     "(color)",
			"linetype":  "(linetype)",
			"hatch":     `(hatch "ANSI31" 5)`,
			"spline":    "(spline 1 2 3 4 5)",
			"block":     `(block "DOOR" 5)`,
		}
		for name, stmt := range cases {
			t.Run(name, func(t *testing.T) {
				res := translateDoc(t, stmt)
				require.Len(t, res.Errors, 1, "statement %q", stmt)
				assert.Contains(t, res.Errors[0], name+":")
				assert.Contains(t, res.Errors[0], "requires at least")
			})
		}
	})
}

func TestCommands_StateOrdering(t *testing.T) {
	t.Parallel()

	input := "(layer \"A\")\n(line 0 0 1 1)\n(layer \"B\")\n(line 2 2 3 3)"
	res := translateDoc(t, input)
	require.True(t, res.Success)

	firstLine := strings.Index(res.Code, "msp.add_line((0, 0), (1, 1)")
	secondLine := strings.Index(res.Code, "msp.add_line((2, 2), (3, 3)")
	require.NotEqual(t, -1, firstLine)
	require.NotEqual(t, -1, secondLine)

	assert.Contains(t, res.Code[firstLine:secondLine], `"layer": "A"`)
	assert.Contains(t, res.Code[secondLine:], `"layer": "B"`)

	// Swapping the two layer statements swaps which line gets which layer.
	swapped := translateDoc(t, "(layer \"B\")\n(line 0 0 1 1)\n(layer \"A\")\n(line 2 2 3 3)")
	firstLine = strings.Index(swapped.Code, "msp.add_line((0, 0), (1, 1)")
	secondLine = strings.Index(swapped.Code, "msp.add_line((2, 2), (3, 3)")
	assert.Contains(t, swapped.Code[firstLine:secondLine], `"layer": "B"`)
	assert.Contains(t, swapped.Code[secondLine:], `"layer": "A"`)
}

func TestCommands_NumericCoercion(t *testing.T) {
	t.Parallel()

	t.Run("textual radius fails loudly and excludes the circle", func(t *testing.T) {
		res := translateDoc(t, `(circle 0 0 "R5000mm")`)

		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "circle:")
		assert.Contains(t, res.Errors[0], "radius must be numeric")
		assert.False(t, res.Success)
		assert.NotContains(t, res.Code, "add_circle")
	})

	t.Run("stray parentheses around a number are tolerated", func(t *testing.T) {
		res := translateDoc(t, "(circle (0) (0) (250))")
		require.True(t, res.Success, "errors: %v", res.Errors)
		assert.Contains(t, res.Code, "msp.add_circle((0, 0), radius=250")
	})

	t.Run("dimension errors carry a remediation hint", func(t *testing.T) {
		quoted := translateDoc(t, `(dimension "0" 0 12000 0 6000 -1000)`)
		require.Len(t, quoted.Errors, 1)
		assert.Contains(t, quoted.Errors[0], "quoted text")

		malformed := translateDoc(t, "(dimension abc 0 12000 0 6000 -1000)")
		require.Len(t, malformed.Errors, 1)
		assert.Contains(t, malformed.Errors[0], "not a valid number")
	})
}

func TestCommands_UnknownCommandTolerance(t *testing.T) {
	t.Parallel()

	res := translateDoc(t, "(line 0 0 1 1)\n(sparkle 1 2 3)\n(circle 0 0 5)")

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Skipped unsupported command: sparkle", res.Warnings[0])
	assert.Equal(t, Stats{Total: 3, Translated: 2, Skipped: 1}, res.Stats)
	assert.NotContains(t, res.Code, "sparkle")
}

func TestCommands_EndToEndScenario(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`(layer "CONSTRUCTION")`,
		`(color 1)`,
		`(rectangle 0 0 12000 8000)`,
		`(line 6000 0 6000 8000)`,
		`(dimension 0 0 12000 0 6000 -1000 "12000mm")`,
	}, "\n")

	res := translateDoc(t, input)

	require.Empty(t, res.Errors)
	require.True(t, res.Success)
	assert.Equal(t, 5, res.Stats.Translated)

	// Closed 4-point polygon through both corners.
	assert.Contains(t, res.Code, "msp.add_lwpolyline([(0, 0), (12000, 0), (12000, 8000), (0, 8000)], close=True")
	// The line picks up the active layer and color.
	assert.Contains(t, res.Code, `msp.add_line((6000, 0), (6000, 8000), dxfattribs={"layer": "CONSTRUCTION", "color": 1})`)
	// The dimension renders with the override text.
	assert.Contains(t, res.Code, `text="12000mm"`)
	assert.Contains(t, res.Code, "_d.render()")
}

func TestCommands_StatefulComments(t *testing.T) {
	t.Parallel()

	t.Run("color and linetype emit comments only", func(t *testing.T) {
		res := translateDoc(t, "(color 3)\n(linetype \"DASHED\")\n(line 0 0 1 1)")

		require.True(t, res.Success)
		assert.Contains(t, res.Code, "# active color: 3")
		assert.Contains(t, res.Code, "# active linetype: DASHED")
		// Both are visible on the subsequent geometry.
		assert.Contains(t, res.Code, `"color": 3`)
		assert.Contains(t, res.Code, `"linetype": "DASHED"`)
	})

	t.Run("layer creation guard is emitted once per layer command", func(t *testing.T) {
		res := translateDoc(t, `(layer "WALLS")`+"\n(line 0 0 1 1)")
		assert.Contains(t, res.Code, `if "WALLS" not in doc.layers:`)
		assert.Contains(t, res.Code, `doc.layers.add("WALLS")`)
	})

	t.Run("default linetype is not tagged on geometry", func(t *testing.T) {
		res := translateDoc(t, "(line 0 0 1 1)")
		assert.NotContains(t, res.Code, "linetype")
	})
}

func TestCommands_FixedLayerAnnotations(t *testing.T) {
	t.Parallel()

	// Text and dimensions ignore the active layer.
	input := `(layer "CONSTRUCTION")` + "\n" +
		`(text 100 200 3.5 "NOTE")` + "\n" +
		`(mtext 0 0 120 3.5 "A longer note")` + "\n" +
		`(dimension 0 0 5000 0 2500 -800)`
	res := translateDoc(t, input)

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Contains(t, res.Code, `msp.add_text("NOTE", dxfattribs={"layer": "3-TEXT-ANNOTATIONS"`)
	assert.Contains(t, res.Code, `msp.add_mtext("A longer note", dxfattribs={"layer": "3-TEXT-ANNOTATIONS"`)
	assert.Contains(t, res.Code, `"layer": "2-DIMENSIONS-LINEAR"`)
}

func TestCommands_PolylineVariants(t *testing.T) {
	t.Parallel()

	t.Run("polyline keeps every full pair and drops an odd trailing coordinate", func(t *testing.T) {
		res := translateDoc(t, "(polyline 0 0 10 0 10 10 99)")
		require.True(t, res.Success)
		assert.Contains(t, res.Code, "msp.add_lwpolyline([(0, 0), (10, 0), (10, 10)]")
		assert.NotContains(t, res.Code, "99")
	})

	t.Run("lwpolyline alias is marked in a comment", func(t *testing.T) {
		res := translateDoc(t, "(lwpolyline 0 0 10 0)")
		require.True(t, res.Success)
		assert.Contains(t, res.Code, "# lightweight polyline")
	})
}

func TestCommands_Placeholders(t *testing.T) {
	t.Parallel()

	res := translateDoc(t, `(hatch "ANSI31" 10 20)`+"\n"+`(block "DOOR-900" 500 600)`+"\n(line 0 0 1 1)")

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Contains(t, res.Code, `# hatch "ANSI31" at (10, 20)`)
	assert.Contains(t, res.Code, `# block insert "DOOR-900" at (500, 600)`)
}

func TestCommands_Spline(t *testing.T) {
	t.Parallel()

	res := translateDoc(t, "(spline 0 0 50 80 100 0)")
	require.True(t, res.Success)
	assert.Contains(t, res.Code, "msp.add_spline(fit_points=[(0, 0), (50, 80), (100, 0)]")
}

func TestDocument_StrictMode(t *testing.T) {
	t.Parallel()

	input := "(line 0 0 1 1)\n()\n(circle 0 0 5)"

	lenient := Document(context.Background(), input, Options{Mode: dsl.ModeLenient, Title: "t"})
	assert.True(t, lenient.Success)
	assert.Empty(t, lenient.Errors)

	strict := Document(context.Background(), input, Options{Mode: dsl.ModeStrict, Title: "t"})
	assert.False(t, strict.Success)
	require.Len(t, strict.Errors, 1)
	assert.Contains(t, strict.Errors[0], "parse: line 2:")
	// Parse failures do not affect statement statistics.
	assert.Equal(t, 2, strict.Stats.Translated)
}

func TestCommands_TitleInClosing(t *testing.T) {
	t.Parallel()

	res := Commands(context.Background(), []dsl.Command{
		{Name: "line", Params: []string{"0", "0", "1", "1"}},
	}, "Ground Floor")
	assert.Contains(t, res.Code, `doc.saveas("Ground Floor.dxf")`)
}
