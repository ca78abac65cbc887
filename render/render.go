// Package render holds the observers of environment transitions.
// None of them feed back into training.
package render

import (
	"log/slog"

	"github.com/zeu5/coloring-rl/types"
)

// Frame is a rendered snapshot of the coloring
type Frame struct {
	Index   int    `json:"index"`
	Step    int    `json:"step"`
	Message string `json:"message"`
	Colors  []int  `json:"colors"`
}

func newFrame(index, step int, message string, colors []int) Frame {
	c := make([]int, len(colors))
	copy(c, colors)
	return Frame{Index: index, Step: step, Message: message, Colors: c}
}

type LogRenderer struct {
	logger *slog.Logger
}

var _ types.Renderer = &LogRenderer{}

func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (l *LogRenderer) Render(step int, message string, colors []int) {
	l.logger.Info(message, "step", step, "colors", colors)
}

// Multi fans a frame out to several renderers
type Multi []types.Renderer

var _ types.Renderer = Multi{}

func (m Multi) Render(step int, message string, colors []int) {
	for _, r := range m {
		r.Render(step, message, colors)
	}
}

// Collector keeps every frame in memory
type Collector struct {
	Frames []Frame
}

var _ types.Renderer = &Collector{}

func (c *Collector) Render(step int, message string, colors []int) {
	c.Frames = append(c.Frames, newFrame(len(c.Frames), step, message, colors))
}
