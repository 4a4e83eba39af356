// Package display is the terminal render collaborator: it prints frames
// and insights instead of drawing them. The controller hands it data and
// scale domains; it owns all presentation.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Coroz2/imdb-narrative/internal/controller"
	"github.com/Coroz2/imdb-narrative/internal/scene"
)

// maxListedMarks bounds how many individual records a frame printout
// lists; the rest are summarized by count.
const maxListedMarks = 10

// Terminal renders frames as formatted text.
type Terminal struct {
	out     io.Writer
	verbose bool
}

// New creates a terminal renderer writing to stdout.
func New(verbose bool) *Terminal {
	return &Terminal{out: os.Stdout, verbose: verbose}
}

// NewWithWriter creates a terminal renderer writing to w.
func NewWithWriter(w io.Writer, verbose bool) *Terminal {
	return &Terminal{out: w, verbose: verbose}
}

// RenderScene prints the full frame: banner, domains, marks, annotation.
func (t *Terminal) RenderScene(f controller.Frame) error {
	fmt.Fprintf(t.out, "\n=== Scene %d: %s ===\n", int(f.Scene), f.Scene)
	fmt.Fprintf(t.out, "x: %s   y: %s\n", t.formatDomain(f.Scene, f.XDomain, true), t.formatDomain(f.Scene, f.YDomain, false))
	fmt.Fprintf(t.out, "%d films plotted, %d emphasized\n", len(f.Marks), f.EmphasisCount())

	t.printMarks(f)
	t.printAnnotation(f.Annotation)
	return nil
}

// UpdateEmphasis re-presents marks and annotation without re-printing
// the axes.
func (t *Terminal) UpdateEmphasis(f controller.Frame) error {
	fmt.Fprintf(t.out, "\n%d of %d films emphasized\n", f.EmphasisCount(), len(f.Marks))
	t.printMarks(f)
	t.printAnnotation(f.Annotation)
	return nil
}

// ShowInsight prints a narrative pair verbatim.
func (t *Terminal) ShowInsight(title, body string) {
	fmt.Fprintf(t.out, "\n%s\n%s\n", title, body)
}

// printMarks lists the top emphasized records, highest y first.
func (t *Terminal) printMarks(f controller.Frame) {
	listed := make([]controller.Mark, 0, len(f.Marks))
	for _, m := range f.Marks {
		if m.Emphasis || f.Scene == scene.CriticsBoxOffice {
			listed = append(listed, m)
		}
	}
	sort.SliceStable(listed, func(i, j int) bool { return listed[i].Y > listed[j].Y })

	limit := maxListedMarks
	if t.verbose {
		limit = len(listed)
	}
	for i, m := range listed {
		if i >= limit {
			fmt.Fprintf(t.out, "  ... and %d more\n", len(listed)-limit)
			break
		}
		switch f.Scene {
		case scene.CriticsBoxOffice:
			fmt.Fprintf(t.out, "  %-40s  meta %3.0f  gross %s\n", m.Movie.Title, m.Y, formatMoney(m.X))
		default:
			fmt.Fprintf(t.out, "  %-40s  %.1f/10  (%d)\n", m.Movie.Title, m.Y, m.Movie.Year)
		}
	}
}

func (t *Terminal) printAnnotation(a *controller.Annotation) {
	if a == nil {
		return
	}
	fmt.Fprintf(t.out, "  ► %s: %s\n", a.Label, a.Title)
}

// formatDomain renders a scale domain for the scene's axis semantics.
func (t *Terminal) formatDomain(id scene.ID, d [2]float64, horizontal bool) string {
	if id == scene.CriticsBoxOffice {
		if horizontal {
			return fmt.Sprintf("[%s, %s]", formatMoney(d[0]), formatMoney(d[1]))
		}
		return fmt.Sprintf("[%.0f, %.0f]", d[0], d[1])
	}
	if horizontal {
		return fmt.Sprintf("[%.0f, %.0f]", d[0], d[1])
	}
	return fmt.Sprintf("[%.1f, %.1f]", d[0], d[1])
}

// formatMoney renders a dollar amount compactly.
func formatMoney(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
