package annotate

import (
	"fmt"
	"strings"
)

// Tool selects what a pointer drag on the canvas produces.
type Tool int

const (
	ToolNotSelected Tool = iota
	ToolPen
	ToolLine
	ToolArrow
	ToolRect
	ToolCircle
	ToolText
	ToolCrop
)

// StrokeTools lists the tools that accumulate pointer samples, in drawing order.
var StrokeTools = []Tool{ToolPen, ToolLine, ToolArrow, ToolRect, ToolCircle}

var toolNames = map[Tool]string{
	ToolNotSelected: "none",
	ToolPen:         "pen",
	ToolLine:        "line",
	ToolArrow:       "arrow",
	ToolRect:        "rect",
	ToolCircle:      "circle",
	ToolText:        "text",
	ToolCrop:        "crop",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Stroke reports whether the tool records pointer strokes.
func (t Tool) Stroke() bool {
	switch t {
	case ToolPen, ToolLine, ToolArrow, ToolRect, ToolCircle:
		return true
	}
	return false
}

// ParseTool resolves a tool name such as "arrow".
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, n := range toolNames {
		if n == s {
			return t, nil
		}
	}
	return ToolNotSelected, fmt.Errorf("unknown tool %q", s)
}
