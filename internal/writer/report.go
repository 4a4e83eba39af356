// Package writer persists a rendered scene as a Markdown report with
// YAML frontmatter, so an exploration session leaves an artifact behind.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Coroz2/imdb-narrative/internal/controller"
	"github.com/Coroz2/imdb-narrative/internal/insight"
	"github.com/Coroz2/imdb-narrative/internal/scene"
)

// Number of records listed in the report body.
const reportTopN = 10

// ReportWriter writes scene reports into a directory.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a report writer targeting dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// WriteReport renders frame and note into a timestamped Markdown file and
// returns the written path.
func (w *ReportWriter) WriteReport(frame controller.Frame, note insight.Note, controls scene.Controls) (string, error) {
	content, err := w.generate(frame, note, controls)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("scene%d-%s.md", int(frame.Scene), time.Now().Format("20060102-150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// generate builds the Markdown document with YAML frontmatter.
func (w *ReportWriter) generate(frame controller.Frame, note insight.Note, controls scene.Controls) (string, error) {
	report := Report{
		Scene:       frame.Scene.String(),
		SceneNumber: int(frame.Scene),
		Films:       len(frame.Marks),
		Emphasized:  frame.EmphasisCount(),
		XDomain:     []float64{frame.XDomain[0], frame.XDomain[1]},
		YDomain:     []float64{frame.YDomain[0], frame.YDomain[1]},
		GeneratedAt: time.Now(),
	}
	switch frame.Scene {
	case scene.Timeline:
		report.Decade = controls.Decade
	case scene.GenreEvolution:
		report.Genre = controls.Genre
	case scene.CriticsBoxOffice:
		report.MinRating = controls.MinRating
	}

	frontmatter, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", frame.Scene))
	sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", note.Title, note.Body))

	if frame.Annotation != nil {
		sb.WriteString(fmt.Sprintf("> **%s**: %s\n\n", frame.Annotation.Label, frame.Annotation.Title))
	}

	sb.WriteString("## Top films in view\n\n")
	marks := topMarks(frame, reportTopN)
	for _, m := range marks {
		if frame.Scene == scene.CriticsBoxOffice {
			sb.WriteString(fmt.Sprintf("- %s — metascore %.0f, gross $%.0f\n", m.Movie.Title, m.Y, m.X))
		} else {
			sb.WriteString(fmt.Sprintf("- %s (%d) — %.1f/10\n", m.Movie.Title, m.Movie.Year, m.Y))
		}
	}

	return sb.String(), nil
}

// topMarks returns up to n marks ordered by descending y, emphasized
// records first.
func topMarks(frame controller.Frame, n int) []controller.Mark {
	marks := make([]controller.Mark, len(frame.Marks))
	copy(marks, frame.Marks)
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].Emphasis != marks[j].Emphasis {
			return marks[i].Emphasis
		}
		return marks[i].Y > marks[j].Y
	})
	if len(marks) > n {
		marks = marks[:n]
	}
	return marks
}
