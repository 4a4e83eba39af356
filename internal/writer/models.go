package writer

import "time"

// Report captures one rendered scene as a persisted document: the
// control state, derived domains, headline records and the insight text.
type Report struct {
	Scene       string    `yaml:"scene"`
	SceneNumber int       `yaml:"sceneNumber"`
	Decade      int       `yaml:"decade,omitempty"`
	Genre       string    `yaml:"genre,omitempty"`
	MinRating   float64   `yaml:"minRating,omitempty"`
	Films       int       `yaml:"films"`
	Emphasized  int       `yaml:"emphasized"`
	XDomain     []float64 `yaml:"xDomain,flow"`
	YDomain     []float64 `yaml:"yDomain,flow"`
	GeneratedAt time.Time `yaml:"generatedAt"`
}
