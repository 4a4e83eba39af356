package controller

import (
	"errors"
	"strings"
	"testing"

	"github.com/Coroz2/imdb-narrative/internal/imdb"
	"github.com/Coroz2/imdb-narrative/internal/scene"
)

func meta(v int) *int          { return &v }
func gross(v float64) *float64 { return &v }

// The three-row synthetic set from the end-to-end scenario: A below the
// gross floor, B without gross, C a blockbuster.
func syntheticMovies() []imdb.Movie {
	return []imdb.Movie{
		{Title: "A", Year: 1994, Rating: 9.3, Genre: "Drama", Votes: 2000000, Gross: gross(28000000), MetaScore: meta(80)},
		{Title: "B", Year: 1972, Rating: 9.2, Genre: "Crime", Votes: 1800000, MetaScore: meta(100)},
		{Title: "C", Year: 2008, Rating: 9.0, Genre: "Action", Votes: 2500000, Gross: gross(1000000000), MetaScore: meta(84)},
	}
}

// fakeRenderer records every frame it is handed.
type fakeRenderer struct {
	rendered []Frame // full redraws
	updated  []Frame // emphasis-only updates
	fail     bool
}

func (f *fakeRenderer) RenderScene(frame Frame) error {
	if f.fail {
		return errors.New("render failed")
	}
	f.rendered = append(f.rendered, frame)
	return nil
}

func (f *fakeRenderer) UpdateEmphasis(frame Frame) error {
	f.updated = append(f.updated, frame)
	return nil
}

func (f *fakeRenderer) lastRendered(t *testing.T) Frame {
	t.Helper()
	if len(f.rendered) == 0 {
		t.Fatal("no frame rendered")
	}
	return f.rendered[len(f.rendered)-1]
}

// fakeSink records insight pairs.
type fakeSink struct {
	titles []string
	bodies []string
}

func (f *fakeSink) ShowInsight(title, body string) {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
}

func (f *fakeSink) lastBody(t *testing.T) string {
	t.Helper()
	if len(f.bodies) == 0 {
		t.Fatal("no insight shown")
	}
	return f.bodies[len(f.bodies)-1]
}

func newTestController(t *testing.T, movies []imdb.Movie) (*Controller, *fakeRenderer, *fakeSink) {
	t.Helper()
	r := &fakeRenderer{}
	s := &fakeSink{}
	c, err := New(imdb.BuildDataset(movies), r, s)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, r, s
}

func TestRenderErrorPropagates(t *testing.T) {
	r := &fakeRenderer{fail: true}
	c, err := New(imdb.BuildDataset(syntheticMovies()), r, &fakeSink{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.Start(); err == nil {
		t.Fatal("Start succeeded despite renderer failure")
	}
}

func TestNewRejectsEmptyDataset(t *testing.T) {
	_, err := New(imdb.BuildDataset(nil), &fakeRenderer{}, &fakeSink{})
	if err == nil {
		t.Fatal("expected error for empty dataset, got nil")
	}
}

func TestStartRendersTimeline(t *testing.T) {
	c, r, s := newTestController(t, syntheticMovies())

	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	frame := r.lastRendered(t)
	if frame.Scene != scene.Timeline {
		t.Errorf("initial scene = %v, want Timeline", frame.Scene)
	}
	if len(frame.Marks) != 3 {
		t.Errorf("mark count = %d, want full dataset of 3", len(frame.Marks))
	}
	// Default decade is the 2000s; only C (2008) is emphasized.
	if got := frame.EmphasisCount(); got != 1 {
		t.Errorf("emphasized = %d, want 1", got)
	}
	if frame.XDomain != [2]float64{1972, 2008} {
		t.Errorf("XDomain = %v, want [1972 2008]", frame.XDomain)
	}
	if len(s.titles) == 0 {
		t.Error("no insight shown on start")
	}
}

func TestEndToEndCriticsScene(t *testing.T) {
	c, r, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := c.SelectScene(3); err != nil {
		t.Fatalf("SelectScene(3) failed: %v", err)
	}

	// At the default 8.0 threshold only C survives: A is under the $50M
	// floor and B has no gross at all.
	frame := r.lastRendered(t)
	if frame.Scene != scene.CriticsBoxOffice {
		t.Fatalf("scene = %v, want CriticsBoxOffice", frame.Scene)
	}
	if len(frame.Marks) != 1 || frame.Marks[0].Movie.Title != "C" {
		t.Fatalf("filtered marks = %v, want exactly C", len(frame.Marks))
	}
	if frame.Marks[0].X != 1000000000 || frame.Marks[0].Y != 84 {
		t.Errorf("mark = (%v, %v), want (1000000000, 84)", frame.Marks[0].X, frame.Marks[0].Y)
	}
	if frame.YDomain != [2]float64{0, 100} {
		t.Errorf("YDomain = %v, want [0 100]", frame.YDomain)
	}
	if frame.Annotation == nil || frame.Annotation.Title != "C" {
		t.Error("expected top-earner annotation for C")
	}
}

func TestSetRatingKeepsGrossDomainAnchored(t *testing.T) {
	// D qualifies for the anchor (gross over the floor) but fails the
	// default rating threshold, so membership changes while the axis
	// must not.
	movies := append(syntheticMovies(),
		imdb.Movie{Title: "D", Year: 2010, Rating: 7.8, Genre: "Action", Votes: 900000, Gross: gross(292576195), MetaScore: meta(74)})
	c, r, _ := newTestController(t, movies)
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.SelectScene(3); err != nil {
		t.Fatalf("SelectScene(3) failed: %v", err)
	}

	first := r.lastRendered(t)
	if len(first.Marks) != 1 {
		t.Fatalf("marks at 8.0 = %d, want 1", len(first.Marks))
	}

	if err := c.SetRating(7.0); err != nil {
		t.Fatalf("SetRating(7.0) failed: %v", err)
	}
	second := r.lastRendered(t)
	if len(second.Marks) != 2 {
		t.Fatalf("marks at 7.0 = %d, want 2", len(second.Marks))
	}

	if err := c.SetRating(9.0); err != nil {
		t.Fatalf("SetRating(9.0) failed: %v", err)
	}
	third := r.lastRendered(t)

	// Membership changed three times; the x domain never moved.
	if first.XDomain != second.XDomain || second.XDomain != third.XDomain {
		t.Errorf("x domain moved across thresholds: %v, %v, %v",
			first.XDomain, second.XDomain, third.XDomain)
	}
	if first.XDomain != [2]float64{292576195, 1000000000} {
		t.Errorf("x domain = %v, want anchored [292576195 1000000000]", first.XDomain)
	}
}

func TestEmptyResultPreservesLastFrame(t *testing.T) {
	c, r, s := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.SelectScene(3); err != nil {
		t.Fatalf("SelectScene(3) failed: %v", err)
	}

	renders := len(r.rendered)
	goodFrame, _, ok := c.CurrentFrame()
	if !ok {
		t.Fatal("no current frame after scene entry")
	}

	// Nothing rates 9.9; the previous view must survive untouched.
	if err := c.SetRating(9.9); err != nil {
		t.Fatalf("SetRating(9.9) failed: %v", err)
	}

	if len(r.rendered) != renders {
		t.Error("renderer was called for an empty result")
	}
	kept, _, ok := c.CurrentFrame()
	if !ok || len(kept.Marks) != len(goodFrame.Marks) {
		t.Error("last good frame was not preserved")
	}
	if !strings.Contains(s.lastBody(t), "9.9") {
		t.Errorf("empty-result notice %q does not mention the threshold", s.lastBody(t))
	}
}

func TestSceneSwitchIsStatelessReset(t *testing.T) {
	c, r, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	baseline := r.lastRendered(t)

	// Shift scene 1 away from its defaults, wander off, come back.
	if err := c.SetDecade(1970); err != nil {
		t.Fatalf("SetDecade failed: %v", err)
	}
	if err := c.SelectScene(3); err != nil {
		t.Fatalf("SelectScene(3) failed: %v", err)
	}
	if err := c.SelectScene(1); err != nil {
		t.Fatalf("SelectScene(1) failed: %v", err)
	}

	restored := r.lastRendered(t)
	if restored.Scene != scene.Timeline {
		t.Fatalf("scene = %v, want Timeline", restored.Scene)
	}
	if len(restored.Marks) != len(baseline.Marks) {
		t.Errorf("marks = %d, want full dataset of %d", len(restored.Marks), len(baseline.Marks))
	}
	if c.Controls().Decade != 2000 {
		t.Errorf("decade = %d, want default 2000 after re-entry", c.Controls().Decade)
	}
	for i := range restored.Marks {
		if restored.Marks[i].Emphasis != baseline.Marks[i].Emphasis {
			t.Errorf("mark %d emphasis differs from the initial render", i)
		}
	}
	if restored.XDomain != baseline.XDomain || restored.YDomain != baseline.YDomain {
		t.Error("domains differ after switching away and back")
	}
}

func TestSetDecadeUpdatesEmphasisOnly(t *testing.T) {
	c, r, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	renders := len(r.rendered)
	if err := c.SetDecade(1990); err != nil {
		t.Fatalf("SetDecade failed: %v", err)
	}

	if len(r.rendered) != renders {
		t.Error("SetDecade triggered a full re-render; emphasis-only update expected")
	}
	if len(r.updated) != 1 {
		t.Fatalf("UpdateEmphasis calls = %d, want 1", len(r.updated))
	}

	frame := r.updated[0]
	if got := frame.EmphasisCount(); got != 1 {
		t.Errorf("emphasized = %d, want 1 (A, 1994)", got)
	}
	if frame.Annotation == nil || frame.Annotation.Title != "A" {
		t.Error("expected decade annotation for A")
	}
}

func TestSetGenreUpdatesEmphasisOnly(t *testing.T) {
	c, r, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.SelectScene(2); err != nil {
		t.Fatalf("SelectScene(2) failed: %v", err)
	}

	renders := len(r.rendered)
	if err := c.SetGenre("Crime"); err != nil {
		t.Fatalf("SetGenre failed: %v", err)
	}

	if len(r.rendered) != renders {
		t.Error("SetGenre triggered a full re-render; emphasis-only update expected")
	}
	frame := r.updated[len(r.updated)-1]
	if got := frame.EmphasisCount(); got != 1 {
		t.Errorf("emphasized = %d, want 1 (B)", got)
	}
}

func TestControlEventsRejectedInWrongScene(t *testing.T) {
	c, _, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Scene 1 is current: genre and rating events do not apply.
	if err := c.SetGenre("Drama"); !errors.Is(err, ErrWrongScene) {
		t.Errorf("SetGenre in scene 1: err = %v, want ErrWrongScene", err)
	}
	if err := c.SetRating(9.0); !errors.Is(err, ErrWrongScene) {
		t.Errorf("SetRating in scene 1: err = %v, want ErrWrongScene", err)
	}

	if err := c.SelectScene(3); err != nil {
		t.Fatalf("SelectScene(3) failed: %v", err)
	}
	if err := c.SetDecade(1990); !errors.Is(err, ErrWrongScene) {
		t.Errorf("SetDecade in scene 3: err = %v, want ErrWrongScene", err)
	}
}

func TestInvalidInputs(t *testing.T) {
	c, _, _ := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := c.SelectScene(4); err == nil {
		t.Error("SelectScene(4) succeeded, want error")
	}
	if err := c.SelectScene(0); err == nil {
		t.Error("SelectScene(0) succeeded, want error")
	}
	if err := c.SetDecade(1995); err == nil {
		t.Error("SetDecade(1995) succeeded, want error for non-decade value")
	}

	if err := c.SelectScene(2); err != nil {
		t.Fatalf("SelectScene(2) failed: %v", err)
	}
	if err := c.SetGenre("Western"); err == nil {
		t.Error("SetGenre(Western) succeeded, want error for unknown genre")
	}
}

func TestGenreInsightUsesStableRollup(t *testing.T) {
	// Three genres with one film each: the tie must resolve to Drama,
	// the genre that appears first in the dataset.
	c, _, s := newTestController(t, syntheticMovies())
	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.SelectScene(2); err != nil {
		t.Fatalf("SelectScene(2) failed: %v", err)
	}

	if !strings.Contains(s.lastBody(t), "Drama") {
		t.Errorf("genre insight %q does not name first-seen genre Drama", s.lastBody(t))
	}
}
