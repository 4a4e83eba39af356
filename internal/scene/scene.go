// Package scene defines the three narrative scenes, the user control
// state, and the pure filter functions that derive each scene's record
// membership from the dataset.
package scene

import (
	"fmt"

	"github.com/Coroz2/imdb-narrative/internal/imdb"
)

// ID identifies one of the three scenes.
type ID int

const (
	Timeline ID = iota + 1 // scatter of rating over release year
	GenreEvolution
	CriticsBoxOffice
)

// String returns the display name of the scene.
func (id ID) String() string {
	switch id {
	case Timeline:
		return "Timeline"
	case GenreEvolution:
		return "Genre Evolution"
	case CriticsBoxOffice:
		return "Critics vs Box Office"
	default:
		return fmt.Sprintf("Scene(%d)", int(id))
	}
}

// Valid reports whether id names one of the three scenes.
func (id ID) Valid() bool {
	return id >= Timeline && id <= CriticsBoxOffice
}

// GenreAll is the genre selector value that highlights every genre.
const GenreAll = "all"

// Controls holds the current user-control values. It is mutated only by
// control events and never drives mutation of the dataset.
type Controls struct {
	Scene     ID
	Decade    int     // decade start, step 10 (Timeline emphasis)
	Genre     string  // selected genre or GenreAll (Genre Evolution emphasis)
	MinRating float64 // rating threshold (Critics vs Box Office filter)
}

// DefaultControls returns the initial control state: Timeline, the
// 2000s, all genres, minimum rating 8.0.
func DefaultControls() Controls {
	return Controls{
		Scene:     Timeline,
		Decade:    2000,
		Genre:     GenreAll,
		MinRating: 8.0,
	}
}

// Emphasized reports whether m should be visually highlighted under the
// current controls. Emphasis is presentational only; it never changes
// scene membership.
func Emphasized(m *imdb.Movie, c Controls) bool {
	switch c.Scene {
	case Timeline:
		return m.Decade() == c.Decade
	case GenreEvolution:
		return c.Genre == GenreAll || m.Genre == c.Genre
	default:
		return false
	}
}
