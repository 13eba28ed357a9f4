package harness

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/liscad/liscad/internal/generator"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// applySettingsOverrides merges the attributes of a scenario's settings
// block over the base drawing settings. Unknown attribute names are
// rejected so typos in a catalogue file fail loudly.
func applySettingsOverrides(base generator.Settings, body hcl.Body) (generator.Settings, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return base, fmt.Errorf("settings: %w", diags)
	}

	merged := base
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return base, fmt.Errorf("settings: evaluate %s: %w", name, diags)
		}

		var err error
		switch name {
		case "scale":
			err = overrideFloat(val, &merged.Scale)
		case "text_height":
			err = overrideFloat(val, &merged.TextHeight)
		case "dimension_text_height":
			err = overrideFloat(val, &merged.DimensionTextHeight)
		case "line_color":
			err = overrideInt(val, &merged.LineColor)
		case "text_color":
			err = overrideInt(val, &merged.TextColor)
		case "dimension_color":
			err = overrideInt(val, &merged.DimensionColor)
		case "paper_size":
			err = overrideString(val, &merged.PaperSize)
		case "units":
			err = overrideString(val, &merged.Units)
		default:
			return base, fmt.Errorf("settings: unknown attribute %q", name)
		}
		if err != nil {
			return base, fmt.Errorf("settings: %s: %w", name, err)
		}
	}
	return merged, nil
}

func overrideFloat(val cty.Value, dst *float64) error {
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, dst)
}

func overrideInt(val cty.Value, dst *int) error {
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, dst)
}

func overrideString(val cty.Value, dst *string) error {
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, dst)
}
