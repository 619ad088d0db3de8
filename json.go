package roster

import (
	"bytes"
	"encoding/json"
	"strings"
)

type jsonFormatter struct {
	indent string
}

func (f jsonFormatter) SearchResults(results []*Client, query string) string {
	return f.encode(newSearchView(results, query))
}

func (f jsonFormatter) DuplicateResults(results []*Client) string {
	return f.encode(newDuplicatesView(results))
}

func (f jsonFormatter) FilteredResults(results []*Client) string {
	return f.encode(newFilteredView(results))
}

func (f jsonFormatter) GenerationResult(path string, size int) string {
	return f.encode(newGenerationView(path, size))
}

func (f jsonFormatter) Version(version string) string {
	return f.encode(newVersionView(version))
}

func (f jsonFormatter) encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.indent != "" {
		enc.SetIndent("", f.indent)
	}
	if err := enc.Encode(v); err != nil {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(b)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
