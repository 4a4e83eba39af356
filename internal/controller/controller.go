package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Coroz2/imdb-narrative/internal/imdb"
	"github.com/Coroz2/imdb-narrative/internal/insight"
	"github.com/Coroz2/imdb-narrative/internal/scene"
)

// ErrWrongScene is returned when a control event arrives for a scene
// that is not current, e.g. a decade change while viewing the Critics vs
// Box Office scene.
var ErrWrongScene = errors.New("control event not valid in current scene")

// Controller is the scene state machine. It is constructed with an
// already-built dataset and must only receive events from a single
// goroutine; every handler runs to completion before the next event.
type Controller struct {
	engine   *scene.Engine
	renderer Renderer
	insights InsightSink

	controls scene.Controls

	// Last successfully rendered frame and note for the current scene.
	// Preserved across empty filter results, discarded on scene switch.
	lastFrame *Frame
	lastNote  insight.Note
}

// New builds a controller over ds with default controls. The dataset
// must be non-empty; an empty dataset is a load failure the caller
// handles before any controller exists.
func New(ds *imdb.Dataset, r Renderer, sink InsightSink) (*Controller, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.New("controller requires a non-empty dataset")
	}
	return &Controller{
		engine:   scene.NewEngine(ds),
		renderer: r,
		insights: sink,
		controls: scene.DefaultControls(),
	}, nil
}

// Controls returns a copy of the current control state.
func (c *Controller) Controls() scene.Controls {
	return c.controls
}

// CurrentFrame returns the last rendered frame and its note. ok is false
// before the first successful render.
func (c *Controller) CurrentFrame() (Frame, insight.Note, bool) {
	if c.lastFrame == nil {
		return Frame{}, insight.Note{}, false
	}
	return *c.lastFrame, c.lastNote, true
}

// Start renders the initial scene. Call once, after the dataset is built
// and before any control events are delivered.
func (c *Controller) Start() error {
	return c.renderCurrent()
}

// SelectScene switches to scene n. The previous scene's rendered state
// is discarded and scene n's own control value resets to its default: a
// switch is a hard reset, not a diff, so switching away and back always
// reproduces the same view.
func (c *Controller) SelectScene(n int) error {
	id := scene.ID(n)
	if !id.Valid() {
		return fmt.Errorf("unknown scene %d", n)
	}

	defaults := scene.DefaultControls()
	c.controls.Scene = id
	switch id {
	case scene.Timeline:
		c.controls.Decade = defaults.Decade
	case scene.GenreEvolution:
		c.controls.Genre = defaults.Genre
	case scene.CriticsBoxOffice:
		c.controls.MinRating = defaults.MinRating
	}

	c.lastFrame = nil
	c.lastNote = insight.Note{}
	return c.renderCurrent()
}

// SetDecade updates the Timeline decade selection. Membership is
// unchanged, so only per-record emphasis, the annotation and the insight
// are re-derived; the axes are not re-rendered.
func (c *Controller) SetDecade(d int) error {
	if c.controls.Scene != scene.Timeline {
		return fmt.Errorf("%w: decade applies to the %s scene", ErrWrongScene, scene.Timeline)
	}
	if d%10 != 0 {
		return fmt.Errorf("decade must be a multiple of 10, got %d", d)
	}
	c.controls.Decade = d
	return c.updateEmphasis()
}

// SetGenre updates the Genre Evolution genre selection. Emphasis-only,
// like SetDecade.
func (c *Controller) SetGenre(g string) error {
	if c.controls.Scene != scene.GenreEvolution {
		return fmt.Errorf("%w: genre applies to the %s scene", ErrWrongScene, scene.GenreEvolution)
	}
	if g != scene.GenreAll && !c.engine.Dataset().HasGenre(g) {
		return fmt.Errorf("unknown genre %q", g)
	}
	c.controls.Genre = g
	return c.updateEmphasis()
}

// SetRating updates the Critics vs Box Office rating threshold and
// re-runs that scene's filter. Membership actually changes, so this is a
// full re-render, but the horizontal domain comes from the engine's
// cached gross anchor and therefore never moves.
func (c *Controller) SetRating(r float64) error {
	if c.controls.Scene != scene.CriticsBoxOffice {
		return fmt.Errorf("%w: rating applies to the %s scene", ErrWrongScene, scene.CriticsBoxOffice)
	}
	c.controls.MinRating = r
	return c.renderCurrent()
}

// renderCurrent runs the full pipeline for the current scene:
// filter -> summarize -> frame -> render + insight.
func (c *Controller) renderCurrent() error {
	var (
		frame Frame
		note  insight.Note
	)

	switch c.controls.Scene {
	case scene.Timeline:
		frame, note = c.buildTimeline()
	case scene.GenreEvolution:
		frame, note = c.buildGenreEvolution()
	case scene.CriticsBoxOffice:
		f, n, err := c.buildCriticsBoxOffice()
		if err != nil {
			if errors.Is(err, scene.ErrEmptyResult) {
				// Keep the last good view; surface a notice instead of
				// clearing the chart or feeding empty input to statistics.
				empty := insight.EmptyResultNote(c.controls.MinRating)
				c.insights.ShowInsight(empty.Title, empty.Body)
				slog.Debug("empty filter result, preserving previous frame",
					"scene", c.controls.Scene.String(),
					"min_rating", c.controls.MinRating,
				)
				return nil
			}
			return err
		}
		frame, note = f, n
	default:
		return fmt.Errorf("unknown scene %d", int(c.controls.Scene))
	}

	if err := c.renderer.RenderScene(frame); err != nil {
		return fmt.Errorf("failed to render %s: %w", frame.Scene, err)
	}
	c.insights.ShowInsight(note.Title, note.Body)
	c.lastFrame = &frame
	c.lastNote = note
	return nil
}

// updateEmphasis rebuilds emphasis flags, annotation and insight over the
// existing frame's membership and domains. The renderer is told to leave
// the axes alone.
func (c *Controller) updateEmphasis() error {
	if c.lastFrame == nil {
		return c.renderCurrent()
	}

	prev := c.lastFrame
	frame := Frame{
		Scene:   prev.Scene,
		Marks:   make([]Mark, len(prev.Marks)),
		XDomain: prev.XDomain,
		YDomain: prev.YDomain,
	}
	for i, m := range prev.Marks {
		m.Emphasis = scene.Emphasized(m.Movie, c.controls)
		frame.Marks[i] = m
	}

	var note insight.Note
	switch c.controls.Scene {
	case scene.Timeline:
		frame.Annotation = c.timelineAnnotation(frame.Marks)
		note = c.timelineNote(frame.Marks)
	case scene.GenreEvolution:
		frame.Annotation = c.genreAnnotation(frame.Marks)
		note = c.genreNote(frame.Marks)
	}

	if err := c.renderer.UpdateEmphasis(frame); err != nil {
		return fmt.Errorf("failed to update %s emphasis: %w", frame.Scene, err)
	}
	c.insights.ShowInsight(note.Title, note.Body)
	c.lastFrame = &frame
	c.lastNote = note
	return nil
}

// buildTimeline derives the Timeline frame: every record at
// (year, rating), sized by votes, emphasized by selected decade.
func (c *Controller) buildTimeline() (Frame, insight.Note) {
	view := c.engine.FilterTimeline()
	marks := c.scatterMarks(view)

	yMin, yMax := ratingExtent(view)
	yearMin, yearMax := c.engine.Dataset().YearExtent()

	frame := Frame{
		Scene:   scene.Timeline,
		Marks:   marks,
		XDomain: [2]float64{float64(yearMin), float64(yearMax)},
		YDomain: [2]float64{yMin, yMax},
	}
	frame.Annotation = c.timelineAnnotation(marks)
	return frame, c.timelineNote(marks)
}

// buildGenreEvolution shares the Timeline projection but emphasizes by
// genre.
func (c *Controller) buildGenreEvolution() (Frame, insight.Note) {
	view := c.engine.FilterGenreEvolution()
	marks := c.scatterMarks(view)

	yMin, yMax := ratingExtent(view)
	yearMin, yearMax := c.engine.Dataset().YearExtent()

	frame := Frame{
		Scene:   scene.GenreEvolution,
		Marks:   marks,
		XDomain: [2]float64{float64(yearMin), float64(yearMax)},
		YDomain: [2]float64{yMin, yMax},
	}
	frame.Annotation = c.genreAnnotation(marks)
	return frame, c.genreNote(marks)
}

// buildCriticsBoxOffice derives the filtered scatter of gross against
// critic score. The x domain is the cached gross anchor, stable across
// threshold changes.
func (c *Controller) buildCriticsBoxOffice() (Frame, insight.Note, error) {
	view, err := c.engine.FilterCriticsBoxOffice(c.controls.MinRating)
	if err != nil {
		return Frame{}, insight.Note{}, err
	}

	marks := make([]Mark, len(view))
	gross := make([]float64, len(view))
	meta := make([]float64, len(view))
	for i, m := range view {
		gross[i] = *m.Gross
		meta[i] = float64(*m.MetaScore)
		marks[i] = Mark{
			Movie: m,
			X:     gross[i],
			Y:     meta[i],
			Size:  float64(m.Votes),
		}
	}

	xMin, xMax := c.engine.GrossAnchor()
	frame := Frame{
		Scene:   scene.CriticsBoxOffice,
		Marks:   marks,
		XDomain: [2]float64{xMin, xMax},
		YDomain: [2]float64{0, 100},
	}

	// Annotate the top earner in the current selection.
	top := 0
	for i := range marks {
		if marks[i].X > marks[top].X {
			top = i
		}
	}
	frame.Annotation = &Annotation{
		Label: "Top earner",
		Title: marks[top].Movie.Title,
		X:     marks[top].X,
		Y:     marks[top].Y,
		DX:    -40,
		DY:    -20,
	}

	r := insight.PearsonCorrelation(meta, gross)
	note := insight.CriticsNote(len(view), c.controls.MinRating, r)
	return frame, note, nil
}

// scatterMarks maps a view onto (year, rating) marks sized by votes,
// with emphasis from the current controls.
func (c *Controller) scatterMarks(view scene.View) []Mark {
	marks := make([]Mark, len(view))
	for i, m := range view {
		marks[i] = Mark{
			Movie:    m,
			X:        float64(m.Year),
			Y:        m.Rating,
			Size:     float64(m.Votes),
			Emphasis: scene.Emphasized(m, c.controls),
		}
	}
	return marks
}

// timelineAnnotation points at the highest-rated film of the selected
// decade, or nothing when the decade is empty.
func (c *Controller) timelineAnnotation(marks []Mark) *Annotation {
	best := -1
	for i := range marks {
		if !marks[i].Emphasis {
			continue
		}
		if best < 0 || marks[i].Y > marks[best].Y {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &Annotation{
		Label: fmt.Sprintf("Best of the %ds", c.controls.Decade),
		Title: marks[best].Movie.Title,
		X:     marks[best].X,
		Y:     marks[best].Y,
		DX:    20,
		DY:    -20,
	}
}

// genreAnnotation points at the highest-rated film of the selected
// genre; no annotation when every genre is shown.
func (c *Controller) genreAnnotation(marks []Mark) *Annotation {
	if c.controls.Genre == scene.GenreAll {
		return nil
	}
	best := -1
	for i := range marks {
		if marks[i].Movie.Genre != c.controls.Genre {
			continue
		}
		if best < 0 || marks[i].Y > marks[best].Y {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &Annotation{
		Label: fmt.Sprintf("Best %s film", c.controls.Genre),
		Title: marks[best].Movie.Title,
		X:     marks[best].X,
		Y:     marks[best].Y,
		DX:    20,
		DY:    -20,
	}
}

// timelineNote summarizes the selected decade against the whole set.
func (c *Controller) timelineNote(marks []Mark) insight.Note {
	var ratings []float64
	for i := range marks {
		if marks[i].Emphasis {
			ratings = append(ratings, marks[i].Y)
		}
	}
	mean := 0.0
	if len(ratings) > 0 {
		mean = insight.Mean(ratings)
	}
	return insight.TimelineNote(c.controls.Decade, len(ratings), len(marks), mean)
}

// genreNote summarizes the selected genre and the overall genre
// distribution.
func (c *Controller) genreNote(marks []Mark) insight.Note {
	genres := make([]string, len(marks))
	for i := range marks {
		genres[i] = marks[i].Movie.Genre
	}
	rollup := insight.RollupCount(genres)
	topGenre, topCount := rollup.Top()

	count := 0
	var ratings []float64
	if c.controls.Genre != scene.GenreAll {
		for i := range marks {
			if marks[i].Movie.Genre == c.controls.Genre {
				count++
				ratings = append(ratings, marks[i].Y)
			}
		}
	}
	mean := 0.0
	if len(ratings) > 0 {
		mean = insight.Mean(ratings)
	}
	return insight.GenreNote(c.controls.Genre, count, mean, topGenre, topCount, len(marks))
}

// ratingExtent computes the vertical domain for the year/rating scenes.
func ratingExtent(view scene.View) (float64, float64) {
	ratings := make([]float64, len(view))
	for i, m := range view {
		ratings[i] = m.Rating
	}
	return insight.Extent(ratings)
}
