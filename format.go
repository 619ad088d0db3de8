package roster

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format represents an output format.
type Format string

const (
	TTY  Format = "tty"
	CSV  Format = "csv"
	JSON Format = "json"
	XML  Format = "xml"
	YAML Format = "yaml"
)

var formats = []Format{TTY, CSV, JSON, XML, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Formatter renders query results as text. Implementations never fail:
// missing fields degrade to omitted or empty fragments. Rendered text has
// no trailing newline.
type Formatter interface {
	// SearchResults renders the result of a name search for query.
	SearchResults(results []*Client, query string) string
	// DuplicateResults renders duplicate clients grouped by email.
	DuplicateResults(results []*Client) string
	// FilteredResults renders the result of a rating filter.
	FilteredResults(results []*Client) string
	// GenerationResult renders the receipt for a generated dataset.
	GenerationResult(path string, size int) string
	// Version renders the application version.
	Version(version string) string
}

// Option configures a [Formatter].
type Option func(*options)

type options struct {
	color  bool
	indent string
}

// WithColor enables ANSI emphasis in TTY output. Other formats ignore it.
func WithColor(on bool) Option {
	return func(o *options) { o.color = on }
}

// WithIndent sets the indentation of JSON and YAML output. Without it JSON
// is compact and YAML uses its default indent.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// New returns the formatter for f.
func New(f Format, opts ...Option) (Formatter, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch f {
	case TTY:
		return newTTYFormatter(o.color), nil
	case CSV:
		return csvFormatter{}, nil
	case JSON:
		return jsonFormatter{indent: o.indent}, nil
	case XML:
		return xmlFormatter{}, nil
	case YAML:
		return yamlFormatter{indent: o.indent}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
