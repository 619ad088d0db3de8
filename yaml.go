package roster

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlFormatter struct {
	indent string
}

func (f yamlFormatter) SearchResults(results []*Client, query string) string {
	return f.encode(newSearchView(results, query))
}

func (f yamlFormatter) DuplicateResults(results []*Client) string {
	return f.encode(newDuplicatesView(results))
}

func (f yamlFormatter) FilteredResults(results []*Client) string {
	return f.encode(newFilteredView(results))
}

func (f yamlFormatter) GenerationResult(path string, size int) string {
	return f.encode(newGenerationView(path, size))
}

func (f yamlFormatter) Version(version string) string {
	return f.encode(newVersionView(version))
}

func (f yamlFormatter) encode(v any) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if f.indent != "" {
		enc.SetIndent(len(f.indent))
	}
	err := enc.Encode(v)
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
