package service

import "sketchnotes/internal/domain"

// ToolState tracks the pen/eraser selection of one open note.
type ToolState struct {
	tool domain.Tool
}

func NewToolState() *ToolState {
	return &ToolState{tool: domain.DefaultTool()}
}

// SetPen switches to the pen. Invalid settings leave the state unchanged.
func (t *ToolState) SetPen(color string, width float64) error {
	if err := domain.ValidatePen(color, width); err != nil {
		return err
	}
	t.tool = domain.Tool{Mode: domain.ToolPen, Color: color, Width: width}
	return nil
}

// SetEraser switches to the eraser, keeping the pen settings for later.
func (t *ToolState) SetEraser() {
	t.tool.Mode = domain.ToolEraser
}

// Current returns the tool the canvas should apply to new strokes.
func (t *ToolState) Current() domain.Tool {
	return t.tool
}

// Reset restores the defaults used when a note is opened.
func (t *ToolState) Reset() {
	t.tool = domain.DefaultTool()
}
