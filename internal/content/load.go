package content

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads a content file (YAML, JSON or TOML, by extension) and fills
// every field the file leaves out from Default. Lists are replaced whole,
// never merged element by element.
func Load(path string) (Page, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Page{}, fmt.Errorf("error reading content file %s: %w", path, err)
	}

	var p Page
	if err := v.Unmarshal(&p); err != nil {
		return Page{}, fmt.Errorf("error unmarshaling content: %w", err)
	}
	p = withDefaults(p, Default())

	if err := p.Validate(); err != nil {
		return Page{}, fmt.Errorf("content file %s: %w", path, err)
	}
	return p, nil
}

// LoadOrDefault returns Default when path is empty.
func LoadOrDefault(path string) (Page, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func withDefaults(p, d Page) Page {
	str := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	list := func(v *[]string, def []string) {
		if len(*v) == 0 {
			*v = def
		}
	}

	str(&p.Lang, d.Lang)
	str(&p.Title, d.Title)
	str(&p.Subtitle, d.Subtitle)
	str(&p.Eyebrow, d.Eyebrow)
	str(&p.Intro, d.Intro)
	str(&p.SummaryTitle, d.SummaryTitle)
	str(&p.Summary, d.Summary)
	str(&p.Significance.Science, d.Significance.Science)
	str(&p.Significance.Practice, d.Significance.Practice)
	list(&p.Goals, d.Goals)
	list(&p.Scope, d.Scope)
	list(&p.Methods, d.Methods)
	list(&p.ExpectedResults, d.ExpectedResults)
	list(&p.ThesisContent, d.ThesisContent)
	list(&p.Footer, d.Footer)

	if len(p.CTAs) == 0 {
		p.CTAs = d.CTAs
	}
	if len(p.Metrics) == 0 {
		p.Metrics = d.Metrics
	}
	if len(p.Sections) == 0 {
		p.Sections = d.Sections
	}
	// A chart without segments takes the default weights; an explicitly
	// empty chart cannot be expressed in a content file.
	if len(p.Chart.Segments) == 0 {
		p.Chart.Segments = d.Chart.Segments
	}
	str(&p.Chart.Title, d.Chart.Title)
	str(&p.Chart.Subtitle, d.Chart.Subtitle)
	return p
}
