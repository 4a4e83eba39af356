// Package controller holds the scene state machine: it owns the current
// scene and control values, derives views and summaries on control
// events, and hands render instructions to an external collaborator. It
// never touches drawing primitives.
package controller

import (
	"github.com/Coroz2/imdb-narrative/internal/imdb"
	"github.com/Coroz2/imdb-narrative/internal/scene"
)

// Mark is one renderable data point: a record reference plus its derived
// position, size and emphasis flag. The renderer decides how marks are
// drawn.
type Mark struct {
	Movie    *imdb.Movie
	X, Y     float64
	Size     float64
	Emphasis bool
}

// Annotation describes zero-or-one callout per frame: a label anchored
// at a data point with a presentational offset.
type Annotation struct {
	Label  string
	Title  string
	X, Y   float64
	DX, DY float64
}

// Frame is the full set of render instructions for one scene: ordered
// marks, the two scale domains, and an optional annotation.
type Frame struct {
	Scene      scene.ID
	Marks      []Mark
	XDomain    [2]float64
	YDomain    [2]float64
	Annotation *Annotation
}

// EmphasisCount returns the number of emphasized marks in the frame.
func (f *Frame) EmphasisCount() int {
	n := 0
	for _, m := range f.Marks {
		if m.Emphasis {
			n++
		}
	}
	return n
}

// Renderer receives render instructions from the controller. RenderScene
// is a full redraw (axes, marks, annotation) used on scene entry and on
// membership changes. UpdateEmphasis re-presents marks and annotation of
// an unchanged membership with unchanged axes; same-scene emphasis
// tweaks must stay on this cheaper path.
type Renderer interface {
	RenderScene(f Frame) error
	UpdateEmphasis(f Frame) error
}

// InsightSink displays (title, body) narrative pairs verbatim.
type InsightSink interface {
	ShowInsight(title, body string)
}
