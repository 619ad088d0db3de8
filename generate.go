package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSize is returned when a dataset of non-positive size is
// requested.
var ErrInvalidSize = errors.New("size must be a positive integer")

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth",
		"David", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Christopher", "Karen",
		"Charles", "Nancy", "Daniel", "Lisa", "Matthew", "Betty", "Mark", "Helen", "Donald", "Donna",
		"Paul", "Carol", "George", "Ruth", "Kenneth", "Shirley", "Steven", "Sharon", "Edward", "Cynthia",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
		"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker",
	}
	domains = []string{
		"example.com", "test.org", "sample.net", "demo.com", "placeholder.org",
		"mockdata.net", "testsite.com", "sampleemail.org", "demodata.net", "examplesite.com",
	}
	comments = []string{
		"Great service", "Very responsive", "Would recommend", "Slow to reply",
		"Exceeded expectations", "Average experience", "Friendly and professional",
		"Needs improvement", "On time and on budget", "Hard to reach",
	}
)

var feedbackEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// GenerateOption configures [Generate] and [GenerateFile].
type GenerateOption func(*generateConfig)

type generateConfig struct {
	seed    uint64
	seeded  bool
	results bool
}

// WithSeed makes the generated dataset reproducible.
func WithSeed(seed uint64) GenerateOption {
	return func(c *generateConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithoutResults omits the result block from every generated client.
func WithoutResults() GenerateOption {
	return func(c *generateConfig) { c.results = false }
}

// Generate writes a synthetic dataset of size clients to w as an indented
// JSON array. About two percent of the clients share an email with another
// client, and roughly half carry a rated result with feedback.
func Generate(w io.Writer, size int, opts ...GenerateOption) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	cfg := generateConfig{results: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := cfg.rand()

	clients := make([]Client, size)
	for i := range clients {
		clients[i] = generateClient(rng, int64(i+1), cfg.results)
	}
	addDuplicates(rng, clients)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(clients)
}

// GenerateFile writes a synthetic dataset to path, compressing it when the
// path ends in .gz, .zst or .lz4. A failed write leaves no file behind.
func GenerateFile(path string, size int, opts ...GenerateOption) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return writeDatasetFile(path, func(w io.Writer) error {
		return encodeDataset(w, codecFor(path), size, opts...)
	})
}

func writeDatasetFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// encodeDataset generates into dst through the compressor of c. The
// compressor is closed on every path.
func encodeDataset(dst io.Writer, c codec, size int, opts ...GenerateOption) error {
	w, err := c.writer(dst)
	if err != nil {
		return err
	}
	if err := Generate(w, size, opts...); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (c generateConfig) rand() *rand.Rand {
	if c.seeded {
		return rand.New(rand.NewPCG(c.seed, c.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func generateClient(rng *rand.Rand, id int64, results bool) Client {
	first := firstNames[rng.IntN(len(firstNames))]
	last := lastNames[rng.IntN(len(lastNames))]
	username := strings.ToLower(first) + strings.ToLower(last) + strconv.Itoa(rng.IntN(1000))
	c := Client{
		ID:       Some(id),
		FullName: Some(first + " " + last),
		Email:    Some(username + "@" + domains[rng.IntN(len(domains))]),
	}
	if results && rng.IntN(2) == 0 {
		c.Result = generateResult(rng)
	}
	return c
}

func generateResult(rng *rand.Rand) *Result {
	r := &Result{Rating: Some(float64(10+rng.IntN(41)) / 10)}
	n := rng.IntN(4)
	r.Feedback = make([]Feedback, 0, n)
	for range n {
		entry := Feedback{Comment: Some(comments[rng.IntN(len(comments))])}
		if rng.IntN(2) == 0 {
			date := feedbackEpoch.AddDate(0, 0, rng.IntN(365))
			entry.Date = Some(date.Format(time.DateOnly))
		}
		r.Feedback = append(r.Feedback, entry)
	}
	return r
}

// addDuplicates copies emails between random pairs of distinct clients.
func addDuplicates(rng *rand.Rand, clients []Client) {
	if len(clients) < 2 {
		return
	}
	n := max(len(clients)*2/100, 1)
	for range n {
		target := rng.IntN(len(clients))
		source := rng.IntN(len(clients))
		if target == source {
			target = (target + 1) % len(clients)
		}
		clients[target].Email = clients[source].Email
	}
}
