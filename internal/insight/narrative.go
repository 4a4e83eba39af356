package insight

import "fmt"

// Note is a (title, body) pair handed verbatim to the insight surface.
type Note struct {
	Title string
	Body  string
}

// Fixed narrative thresholds. These are deliberately constants, not
// configuration: the phrasings are canned.
const (
	crowdedCount = 80
	busyCount    = 50

	strongCorrelation = 0.5
	mildCorrelation   = 0.2

	dominantShare = 0.25
	notableShare  = 0.10
)

// TimelineNote composes the Timeline insight for the selected decade.
// total is the full dataset size, decadeCount the records in the decade,
// decadeMean their mean rating. decadeCount may be zero; decadeMean is
// ignored in that case.
func TimelineNote(decade, decadeCount, total int, decadeMean float64) Note {
	title := fmt.Sprintf("The %ds on the all-time list", decade)

	if decadeCount == 0 {
		return Note{
			Title: title,
			Body: fmt.Sprintf("Not a single film from the %ds made the top %d. Pick another decade to see where the classics cluster.",
				decade, total),
		}
	}

	share := float64(decadeCount) / float64(total)
	var body string
	switch {
	case share > dominantShare:
		body = fmt.Sprintf("The %ds dominate: %d of the %d top-rated films were released in this decade, averaging %.1f/10.",
			decade, decadeCount, total, decadeMean)
	case share > notableShare:
		body = fmt.Sprintf("The %ds hold their own with %d of %d films, averaging %.1f/10.",
			decade, decadeCount, total, decadeMean)
	default:
		body = fmt.Sprintf("The %ds are thinly represented: just %d of %d films, though they still average %.1f/10.",
			decade, decadeCount, total, decadeMean)
	}
	return Note{Title: title, Body: body}
}

// GenreNote composes the Genre Evolution insight. When a specific genre
// is selected, count and genreMean describe that genre; topGenre and
// topCount always describe the most frequent genre over the whole set
// (stable tie-break by first appearance).
func GenreNote(genre string, count int, genreMean float64, topGenre string, topCount, total int) Note {
	if genre == "" || genre == "all" {
		topShare := float64(topCount) / float64(total)
		title := "Genres across a century"
		var body string
		if topShare > dominantShare {
			body = fmt.Sprintf("%s towers over the rest: %d of %d films, more than any other genre.",
				topGenre, topCount, total)
		} else {
			body = fmt.Sprintf("%s leads a crowded field with %d of %d films; no genre truly dominates.",
				topGenre, topCount, total)
		}
		return Note{Title: title, Body: body}
	}

	title := fmt.Sprintf("%s through the decades", genre)
	if count == 0 {
		return Note{
			Title: title,
			Body:  fmt.Sprintf("No %s films made the cut. The list skews toward %s.", genre, topGenre),
		}
	}
	return Note{
		Title: title,
		Body: fmt.Sprintf("%d %s films made the list, averaging %.1f/10. %s remains the most common genre overall with %d entries.",
			count, genre, genreMean, topGenre, topCount),
	}
}

// CriticsNote composes the Critics vs Box Office insight from the
// filtered count and the metascore/gross correlation coefficient.
func CriticsNote(count int, minRating, r float64) Note {
	title := "Do critics predict the box office?"

	var crowd string
	switch {
	case count > crowdedCount:
		crowd = fmt.Sprintf("A broad field of %d films earned over $50M at a rating of %.1f or above.", count, minRating)
	case count > busyCount:
		crowd = fmt.Sprintf("%d films cleared $50M at a rating of %.1f or above.", count, minRating)
	default:
		crowd = fmt.Sprintf("Only %d films cleared $50M at a rating of %.1f or above.", count, minRating)
	}

	var trend string
	switch {
	case r >= strongCorrelation:
		trend = fmt.Sprintf("Critic scores track earnings strongly here (r = %.2f).", r)
	case r >= mildCorrelation:
		trend = fmt.Sprintf("Critic scores lean the same way as earnings, but only mildly (r = %.2f).", r)
	default:
		trend = fmt.Sprintf("Critic scores say little about earnings in this slice (r = %.2f).", r)
	}

	return Note{Title: title, Body: crowd + " " + trend}
}

// EmptyResultNote is shown when a threshold change filters out every
// record; the previous chart is kept on screen.
func EmptyResultNote(minRating float64) Note {
	return Note{
		Title: "No films match",
		Body:  fmt.Sprintf("No film earned over $50M with a rating of %.1f or above. Showing the previous selection; lower the threshold to bring films back.", minRating),
	}
}
