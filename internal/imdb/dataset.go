package imdb

// Dataset is the immutable normalized collection plus derived global
// scale domains. Built once at load time; every "update" downstream is a
// new view over this set, never a mutation of it.
type Dataset struct {
	movies []Movie

	yearMin, yearMax   int
	votesMin, votesMax int
	genres             []string // distinct first genres, first-seen order
}

// BuildDataset freezes the record set and computes the global domains:
// year extent, votes extent, and the distinct genre list in first-seen
// order.
func BuildDataset(movies []Movie) *Dataset {
	d := &Dataset{movies: movies}

	seen := make(map[string]bool)
	for i, m := range movies {
		if i == 0 {
			d.yearMin, d.yearMax = m.Year, m.Year
			d.votesMin, d.votesMax = m.Votes, m.Votes
		} else {
			if m.Year < d.yearMin {
				d.yearMin = m.Year
			}
			if m.Year > d.yearMax {
				d.yearMax = m.Year
			}
			if m.Votes < d.votesMin {
				d.votesMin = m.Votes
			}
			if m.Votes > d.votesMax {
				d.votesMax = m.Votes
			}
		}
		if !seen[m.Genre] {
			seen[m.Genre] = true
			d.genres = append(d.genres, m.Genre)
		}
	}
	return d
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.movies)
}

// At returns a reference to the i-th record in load order. Callers must
// treat the record as read-only.
func (d *Dataset) At(i int) *Movie {
	return &d.movies[i]
}

// View returns a fresh slice of references to every record in load order.
// The slice is the caller's to filter and discard; the records themselves
// are shared and read-only.
func (d *Dataset) View() []*Movie {
	view := make([]*Movie, len(d.movies))
	for i := range d.movies {
		view[i] = &d.movies[i]
	}
	return view
}

// YearExtent returns the (min, max) release year across the dataset.
func (d *Dataset) YearExtent() (int, int) {
	return d.yearMin, d.yearMax
}

// VotesExtent returns the (min, max) vote count across the dataset.
func (d *Dataset) VotesExtent() (int, int) {
	return d.votesMin, d.votesMax
}

// Genres returns the distinct first-genre values in first-seen order.
func (d *Dataset) Genres() []string {
	out := make([]string, len(d.genres))
	copy(out, d.genres)
	return out
}

// HasGenre reports whether name is one of the dataset's genres.
func (d *Dataset) HasGenre(name string) bool {
	for _, g := range d.genres {
		if g == name {
			return true
		}
	}
	return false
}
