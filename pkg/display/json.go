package display

import (
	"encoding/json"
	"io"

	"github.com/yorunoR/querly/pkg/analyzer"
	"github.com/yorunoR/querly/pkg/pattern"
)

// jsonFormatter formats output as JSON lines.
type jsonFormatter struct{}

type jsonMatch struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	StartColumn int    `json:"start_column"`
	EndColumn   int    `json:"end_column"`
	Kind        string `json:"kind,omitempty"`
	Source      string `json:"source"`
}

type jsonSummary struct {
	Results int `json:"results"`
}

// FormatMatch implements Formatter.FormatMatch.
func (f *jsonFormatter) FormatMatch(w io.Writer, m analyzer.Match) error {
	return json.NewEncoder(w).Encode(jsonMatch{
		Path:        m.Script.Path(),
		Line:        m.Line,
		StartColumn: m.StartColumn,
		EndColumn:   m.EndColumn,
		Kind:        pattern.KindOf(m.Node),
		Source:      m.LineText,
	})
}

// FormatSummary implements Formatter.FormatSummary.
func (f *jsonFormatter) FormatSummary(w io.Writer, count int) error {
	return json.NewEncoder(w).Encode(jsonSummary{Results: count})
}
