package domain

import (
	"fmt"
	"math"

	"sketchnotes/internal/validate"
)

// ToolMode selects how the canvas treats new strokes.
type ToolMode string

const (
	ToolPen    ToolMode = "pen"
	ToolEraser ToolMode = "eraser"
)

// PenWidths is the fixed set of stroke widths offered by the pen.
var PenWidths = []float64{2, 4, 8}

const (
	DefaultPenColor = "#000000"
	DefaultPenWidth = 2
)

// Tool is the active input tool reported to the canvas. Color and Width
// keep the last pen settings while Mode is eraser.
type Tool struct {
	Mode  ToolMode `json:"mode"`
	Color string   `json:"color"`
	Width float64  `json:"width"`
}

// DefaultTool is the tool every freshly opened note starts with.
func DefaultTool() Tool {
	return Tool{Mode: ToolPen, Color: DefaultPenColor, Width: DefaultPenWidth}
}

// penSettings carries the pen arguments through the validator. Width is
// an int there because oneof compares whole numbers.
type penSettings struct {
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Width int    `json:"width" validate:"oneof=2 4 8"`
}

// ValidatePen checks color (#RRGGBB) and width against the pen's accepted
// values.
func ValidatePen(color string, width float64) error {
	if width != math.Trunc(width) || math.Abs(width) > math.MaxInt32 {
		return fmt.Errorf("%w: width must be one of %v", validate.ErrInvalid, PenWidths)
	}
	return validate.Struct(penSettings{Color: color, Width: int(width)})
}
