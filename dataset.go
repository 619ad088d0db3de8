package roster

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Sentinel errors returned by [Load] and [Read].
var (
	ErrNotFound      = errors.New("dataset not found")
	ErrMalformedData = errors.New("malformed dataset")
)

// Dataset is an ordered, read-only collection of clients. It is safe for
// concurrent use once loaded.
type Dataset struct {
	clients []*Client
}

// LoadOption configures [Load].
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report load progress at debug level.
func WithLogger(l *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Load reads a dataset from the JSON file at path. Files ending in .gz,
// .zst or .lz4 are decompressed first.
//
// A missing file fails with [ErrNotFound]. Content that is blank, not JSON,
// not an array, or an array holding a non-object fails with
// [ErrMalformedData].
func Load(path string, opts ...LoadOption) (*Dataset, error) {
	cfg := loadConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	c := codecFor(path)
	r, err := c.reader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s stream: %w", ErrMalformedData, c, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		if c != codecNone {
			return nil, fmt.Errorf("%w: %s stream: %w", ErrMalformedData, c, err)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	cfg.logger.Debug("dataset loaded", "path", path, "codec", c.String(), "clients", len(ds.clients))
	return ds, nil
}

// Read reads an uncompressed JSON dataset from r.
func Read(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Dataset, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedData)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrMalformedData)
	}
	clients := make([]*Client, 0, len(raws))
	for i, raw := range raws {
		if !isObject(raw) {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedData, i)
		}
		var c Client
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedData, i, err)
		}
		clients = append(clients, &c)
	}
	return &Dataset{clients: clients}, nil
}

// Len returns the number of clients.
func (d *Dataset) Len() int { return len(d.clients) }

// Clients returns the clients in document order. The slice is a copy; the
// clients are shared.
func (d *Dataset) Clients() []*Client {
	out := make([]*Client, len(d.clients))
	copy(out, d.clients)
	return out
}

// SearchNames returns the clients whose full name contains query, ignoring
// case. The query is trimmed first and a blank query matches nothing.
// Clients without a name are skipped.
func (d *Dataset) SearchNames(query string) []*Client {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(query)
	var out []*Client
	for _, c := range d.clients {
		name, ok := c.FullName.Get()
		if !ok || name == "" {
			continue
		}
		if strings.Contains(fold.String(name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// DuplicateEmails returns every client whose email is shared with at least
// one other client. Groups follow the first occurrence of each email and
// members keep document order. Clients without an email never take part.
func (d *Dataset) DuplicateEmails() []*Client {
	withEmail := make([]*Client, 0, len(d.clients))
	for _, c := range d.clients {
		if _, ok := c.EmailKey(); ok {
			withEmail = append(withEmail, c)
		}
	}
	var out []*Client
	for _, g := range GroupByEmail(withEmail) {
		if len(g.Clients) > 1 {
			out = append(out, g.Clients...)
		}
	}
	return out
}

// FilterByRating returns the clients with a rating greater than or equal
// to threshold. Clients without a result or without a usable rating are
// excluded.
func (d *Dataset) FilterByRating(threshold float64) []*Client {
	var out []*Client
	for _, c := range d.clients {
		if rating, ok := c.Rating(); ok && rating >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// FilterByRatingString is [Dataset.FilterByRating] with a textual
// threshold. Text that is not a number matches nothing.
func (d *Dataset) FilterByRatingString(threshold string) []*Client {
	t, ok := parseDecimal(strings.TrimSpace(threshold))
	if !ok {
		return nil
	}
	return d.FilterByRating(t)
}
