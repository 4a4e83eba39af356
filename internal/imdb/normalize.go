package imdb

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Column names expected in the source file header. Order in the file does
// not matter; columns are resolved by name.
const (
	colTitle    = "Series_Title"
	colYear     = "Released_Year"
	colRating   = "IMDB_Rating"
	colMeta     = "Meta_score"
	colGenre    = "Genre"
	colDirector = "Director"
	colVotes    = "No_of_Votes"
	colGross    = "Gross"
	colRuntime  = "Runtime"
	colOverview = "Overview"
)

var colStars = []string{"Star1", "Star2", "Star3", "Star4"}

// Year bounds for a valid record. Rows outside this range are dropped,
// not reported as errors.
const (
	MinYear = 1920
	MaxYear = 2020
)

// Normalize parses raw rows into validated Movie records. Rows whose
// required numeric fields (year, rating, runtime) fail to parse, or whose
// year falls outside [MinYear, MaxYear], are dropped and counted in
// rejected. Optional fields (Meta_score, Gross) become nil when blank or
// unparseable. Returns an error only when a required column is missing
// from the header.
func Normalize(header []string, rows [][]string) ([]Movie, int, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	movies := make([]Movie, 0, len(rows))
	rejected := 0
	withGross := 0

	for _, row := range rows {
		m, ok := normalizeRow(idx, row)
		if !ok {
			rejected++
			continue
		}
		if m.Gross != nil {
			withGross++
		}
		movies = append(movies, m)
	}

	// Diagnostics only: these counts never affect control flow.
	slog.Info("dataset normalized",
		"rows_loaded", len(rows),
		"valid", len(movies),
		"rejected", rejected,
		"with_gross", withGross,
	)

	return movies, rejected, nil
}

// columnIndex resolves required and optional column positions by header name.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	required := []string{colTitle, colYear, colRating, colGenre, colVotes, colRuntime}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("required column %q missing from header", name)
		}
	}
	return idx, nil
}

// normalizeRow converts one raw row into a Movie. Returns false when the
// row fails validation and should be excluded.
func normalizeRow(idx map[string]int, row []string) (Movie, bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	title := field(colTitle)
	if title == "" {
		return Movie{}, false
	}

	year, err := strconv.Atoi(field(colYear))
	if err != nil || year < MinYear || year > MaxYear {
		return Movie{}, false
	}

	rating, err := strconv.ParseFloat(field(colRating), 64)
	if err != nil {
		return Movie{}, false
	}

	runtime, ok := parseRuntime(field(colRuntime))
	if !ok {
		return Movie{}, false
	}

	votes, ok := parseVotes(field(colVotes))
	if !ok {
		return Movie{}, false
	}

	var stars []string
	for _, col := range colStars {
		if s := field(col); s != "" {
			stars = append(stars, s)
		}
	}

	return Movie{
		Title:     title,
		Year:      year,
		Rating:    rating,
		MetaScore: parseMetaScore(field(colMeta)),
		Genre:     firstGenre(field(colGenre)),
		Director:  field(colDirector),
		Votes:     votes,
		Gross:     parseGross(field(colGross)),
		Runtime:   runtime,
		Overview:  field(colOverview),
		Stars:     stars,
	}, true
}

// firstGenre takes the substring before the first comma, trimmed.
// "Action, Adventure, Sci-Fi" -> "Action".
func firstGenre(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// parseRuntime parses "142 min" style values into integer minutes.
func parseRuntime(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "min"))
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseVotes strips thousands separators and parses a non-negative count.
func parseVotes(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseMetaScore returns nil for a blank field, never zero. Values outside
// [0, 100] are treated as absent.
func parseMetaScore(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return nil
	}
	return &n
}

// parseGross strips currency symbols and separators ($, comma, quote) and
// parses a non-negative amount. Blank or unparseable fields become nil.
func parseGross(s string) *float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", `"`, "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
