package scene

import (
	"errors"

	"github.com/Coroz2/imdb-narrative/internal/imdb"
)

// View is a derived, disposable sequence of references into the dataset.
// A View must be replaced, never patched, when a control event changes
// the records it was derived from.
type View []*imdb.Movie

// ErrEmptyResult is returned when a scene filter yields zero records,
// e.g. a rating threshold set above every film in the set. Callers keep
// their previous valid view instead of rendering an empty one.
var ErrEmptyResult = errors.New("scene filter produced no records")

// GrossFloor is the box-office cutoff for the Critics vs Box Office
// scene, in dollars.
const GrossFloor = 50_000_000

// Engine derives per-scene views from one immutable dataset. The gross
// extent anchoring the Critics vs Box Office horizontal axis is computed
// once here, over the unfiltered dataset, so the axis stays put while
// the rating threshold moves.
type Engine struct {
	ds                 *imdb.Dataset
	grossMin, grossMax float64
	grossAnchored      bool
}

// NewEngine builds an engine for ds and caches the gross-extent anchor:
// the (min, max) gross across all records with gross >= GrossFloor,
// regardless of rating.
func NewEngine(ds *imdb.Dataset) *Engine {
	e := &Engine{ds: ds}
	for i := 0; i < ds.Len(); i++ {
		m := ds.At(i)
		if m.Gross == nil || *m.Gross < GrossFloor {
			continue
		}
		if !e.grossAnchored {
			e.grossMin, e.grossMax = *m.Gross, *m.Gross
			e.grossAnchored = true
			continue
		}
		if *m.Gross < e.grossMin {
			e.grossMin = *m.Gross
		}
		if *m.Gross > e.grossMax {
			e.grossMax = *m.Gross
		}
	}
	return e
}

// Dataset returns the dataset this engine derives views from.
func (e *Engine) Dataset() *imdb.Dataset {
	return e.ds
}

// GrossAnchor returns the cached gross extent. It is invariant across
// rating-threshold changes; only a new dataset produces a new anchor.
func (e *Engine) GrossAnchor() (min, max float64) {
	return e.grossMin, e.grossMax
}

// FilterTimeline returns the Timeline view: the full dataset. Decade
// selection affects emphasis, not membership.
func (e *Engine) FilterTimeline() View {
	return e.ds.View()
}

// FilterGenreEvolution returns the Genre Evolution view: the full
// dataset. Genre selection affects emphasis, not membership.
func (e *Engine) FilterGenreEvolution() View {
	return e.ds.View()
}

// FilterCriticsBoxOffice returns records with a known gross of at least
// GrossFloor, a known critic score, and rating >= minRating. A zero-record
// result returns ErrEmptyResult so the caller can preserve its last good
// view.
func (e *Engine) FilterCriticsBoxOffice(minRating float64) (View, error) {
	var view View
	for i := 0; i < e.ds.Len(); i++ {
		m := e.ds.At(i)
		if m.Gross == nil || *m.Gross < GrossFloor {
			continue
		}
		if m.MetaScore == nil {
			continue
		}
		if m.Rating < minRating {
			continue
		}
		view = append(view, m)
	}
	if len(view) == 0 {
		return nil, ErrEmptyResult
	}
	return view, nil
}
