// Package imdb loads and normalizes the IMDB top-1000 dataset into an
// immutable in-memory collection with derived scale domains.
package imdb

// Movie represents a single validated record from the source dataset.
// MetaScore and Gross are nil when the source field is blank; a blank
// field never becomes zero.
type Movie struct {
	Title     string   `json:"title"`
	Year      int      `json:"year"`
	Rating    float64  `json:"rating"`
	MetaScore *int     `json:"metaScore,omitempty"`
	Genre     string   `json:"genre"`
	Director  string   `json:"director"`
	Votes     int      `json:"votes"`
	Gross     *float64 `json:"gross,omitempty"`
	Runtime   int      `json:"runtime"`
	Overview  string   `json:"overview"`
	Stars     []string `json:"stars,omitempty"`
}

// HasMetaScore reports whether the record carries a critic score.
func (m *Movie) HasMetaScore() bool {
	return m.MetaScore != nil
}

// HasGross reports whether the record carries box-office earnings.
func (m *Movie) HasGross() bool {
	return m.Gross != nil
}

// Decade returns the start of the decade the movie was released in,
// e.g. 1994 -> 1990.
func (m *Movie) Decade() int {
	return m.Year / 10 * 10
}
