package roster_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/roster"
)

// --- Fixtures ---

const sampleClients = `[
  {"id": 1, "full_name": "John Doe", "email": "john.doe@gmail.com"},
  {"id": 2, "full_name": "Jane Smith", "email": "jane.smith@yahoo.com"},
  {"id": 3, "full_name": "Alex Johnson", "email": "alex.johnson@hotmail.com"},
  {"id": 4, "full_name": "Another Jane Smith", "email": "jane.smith@yahoo.com"},
  {"id": 5, "full_name": "JOHN DOE", "email": "different.john@example.com"}
]`

const malformedClients = `[
  {"id": 1, "full_name": "John Doe", "email": "john@example.com"},
  {"id": 2, "full_name": "Jane Smith"},
  {"id": 3, "email": "bob@example.com"},
  {"id": 4, "full_name": "", "email": "empty@example.com"},
  {"id": 5, "full_name": "Alice Wilson", "email": ""},
  {"id": 6, "full_name": null, "email": "null@example.com"},
  {"id": 7, "full_name": "Bob Brown", "email": null},
  {"id": 8, "full_name": "Charlie Davis", "email": "charlie@example.com"},
  {"id": 9, "full_name": "David Evans", "email": "charlie@example.com"}
]`

const ratedClients = `[
  {"id": 1, "full_name": "High Rated", "email": "high@example.com", "result": {"rating": 4.5, "feedback": []}},
  {"id": 2, "full_name": "Medium Rated", "email": "medium@example.com", "result": {"rating": 3.2, "feedback": []}},
  {"id": 3, "full_name": "Low Rated", "email": "low@example.com", "result": {"rating": 2.0, "feedback": []}},
  {"id": 4, "full_name": "No Result", "email": "noresult@example.com"},
  {"id": 5, "full_name": "Result No Rating", "email": "norating@example.com", "result": {"feedback": []}},
  {"id": 6, "full_name": "Nil Rating", "email": "nilrating@example.com", "result": {"rating": null, "feedback": []}},
  {"id": 7, "full_name": "Perfect Score", "email": "perfect@example.com", "result": {"rating": 5.0, "feedback": []}}
]`

// --- Helpers ---

func readDataset(t *testing.T, src string) *roster.Dataset {
	t.Helper()
	ds, err := roster.Read(strings.NewReader(src))
	require.NoError(t, err)
	return ds
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func ids(clients []*roster.Client) []int64 {
	out := make([]int64, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.ID.Value())
	}
	return out
}

// isSubsequence reports whether every client of sub appears in all in the
// same relative order.
func isSubsequence(sub, all []*roster.Client) bool {
	i := 0
	for _, c := range all {
		if i < len(sub) && sub[i] == c {
			i++
		}
	}
	return i == len(sub)
}

// ============================================================
// Load
// ============================================================

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "clients.json", sampleClients)

	ds, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(ds.Clients()))
	assert.Equal(t, "Another Jane Smith", ds.Clients()[3].Name())
}

func TestLoadNotFound(t *testing.T) {
	t.Parallel()
	_, err := roster.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, roster.ErrNotFound)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty file":       "",
		"blank file":       "  \n\t",
		"invalid json":     "{ invalid json }",
		"bare words":       "invalid json",
		"top-level object": `{"id": 1}`,
		"top-level null":   "null",
		"top-level string": `"clients"`,
		"truncated array":  `[{"id": 1}`,
		"number element":   `[{"id": 1}, 2]`,
		"null element":     `[null]`,
		"nested array":     `[[{"id": 1}]]`,
		"trailing garbage": `[{"id": 1}] x`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := roster.Load(writeFile(t, "data.json", content))
			assert.ErrorIs(t, err, roster.ErrMalformedData)
		})
	}
}

func TestLoadCorruptCompressedStream(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"data.json.gz", "data.json.zst", "data.json.lz4"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := roster.Load(writeFile(t, name, "this is not compressed"))
			assert.ErrorIs(t, err, roster.ErrMalformedData)
		})
	}
}

func TestReadEmptyArray(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, "[]")
	assert.Zero(t, ds.Len())
	assert.Empty(t, ds.SearchNames("a"))
	assert.Empty(t, ds.DuplicateEmails())
	assert.Empty(t, ds.FilterByRating(3))
}

func TestClientsReturnsCopy(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, sampleClients)
	got := ds.Clients()
	got[0] = nil
	assert.NotNil(t, ds.Clients()[0])
}

// ============================================================
// SearchNames
// ============================================================

func TestSearchNames(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, sampleClients)
	tests := map[string]struct {
		query string
		want  []int64
	}{
		"lowercase":        {query: "john", want: []int64{1, 3, 5}},
		"uppercase":        {query: "JOHN", want: []int64{1, 3, 5}},
		"partial":          {query: "ohn", want: []int64{1, 3, 5}},
		"first name":       {query: "Jane", want: []int64{2, 4}},
		"last name":        {query: "smith", want: []int64{2, 4}},
		"spans words":      {query: "e sm", want: []int64{2, 4}},
		"surrounding ws":   {query: "  john  ", want: []int64{1, 3, 5}},
		"no match":         {query: "NonExistent", want: []int64{}},
		"empty":            {query: "", want: []int64{}},
		"whitespace only":  {query: "   ", want: []int64{}},
		"regexp metachars": {query: "J.*e", want: []int64{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(ds.SearchNames(tt.query)))
		})
	}
}

func TestSearchNamesScenario(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, `[
		{"id": 1, "full_name": "John Doe", "email": "a@x.com"},
		{"id": 2, "full_name": "Jane Smith", "email": "a@x.com"},
		{"id": 3, "full_name": "Bob", "email": ""}
	]`)
	assert.Equal(t, []int64{1}, ids(ds.SearchNames("jo")))
}

func TestSearchNamesSkipsMissingNames(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, malformedClients)
	tests := map[string]struct {
		query string
		want  []int64
	}{
		"valid names only":       {query: "John", want: []int64{1}},
		"ignores missing name":   {query: "bob", want: []int64{7}},
		"ignores null name":      {query: "null", want: []int64{}},
		"ignores empty name":     {query: "empty", want: []int64{}},
		"ignores email problems": {query: "Alice", want: []int64{5}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(ds.SearchNames(tt.query)))
		})
	}
}

func TestSearchNamesUnicode(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, `[
		{"id": 1, "full_name": "Émile Zola"},
		{"id": 2, "full_name": "ÅSA LARSSON"},
		{"id": 3, "full_name": 42}
	]`)
	assert.Equal(t, []int64{1}, ids(ds.SearchNames("éMILE")))
	assert.Equal(t, []int64{2}, ids(ds.SearchNames("åsa")))
	assert.Empty(t, ds.SearchNames("42"))
}

func TestSearchNamesCaseInsensitiveAndOrdered(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, sampleClients)
	for _, q := range []string{"a", "e", "jo", "th", "n d"} {
		lower := ds.SearchNames(q)
		upper := ds.SearchNames(strings.ToUpper(q))
		assert.Equal(t, ids(lower), ids(upper), "query %q", q)
		assert.Equal(t, ids(lower), ids(ds.SearchNames(q)), "idempotent for %q", q)
		assert.True(t, isSubsequence(lower, ds.Clients()), "order for %q", q)
	}
}

// ============================================================
// DuplicateEmails
// ============================================================

func TestDuplicateEmails(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		src  string
		want []int64
	}{
		"sample": {
			src:  sampleClients,
			want: []int64{2, 4},
		},
		"blank email excluded": {
			src: `[
				{"id": 1, "full_name": "John Doe", "email": "a@x.com"},
				{"id": 2, "full_name": "Jane Smith", "email": "a@x.com"},
				{"id": 3, "full_name": "Bob", "email": ""}
			]`,
			want: []int64{1, 2},
		},
		"multiple groups": {
			src: `[
				{"id": 1, "email": "email1@example.com"},
				{"id": 2, "email": "email1@example.com"},
				{"id": 3, "email": "email2@example.com"},
				{"id": 4, "email": "email2@example.com"},
				{"id": 5, "email": "unique@example.com"}
			]`,
			want: []int64{1, 2, 3, 4},
		},
		"first occurrence group order": {
			src: `[
				{"id": 1, "email": "a@x.com"},
				{"id": 2, "email": "b@x.com"},
				{"id": 3, "email": "a@x.com"},
				{"id": 4, "email": "c@x.com"},
				{"id": 5, "email": "b@x.com"},
				{"id": 6, "email": "a@x.com"}
			]`,
			want: []int64{1, 3, 6, 2, 5},
		},
		"no duplicates": {
			src: `[
				{"id": 1, "email": "john@example.com"},
				{"id": 2, "email": "jane@example.com"}
			]`,
			want: []int64{},
		},
		"malformed records": {
			src:  malformedClients,
			want: []int64{8, 9},
		},
		"missing, null, blank and mistyped never group": {
			src: `[
				{"id": 1}, {"id": 2},
				{"id": 3, "email": null}, {"id": 4, "email": null},
				{"id": 5, "email": ""}, {"id": 6, "email": ""},
				{"id": 7, "email": "   "}, {"id": 8, "email": "   "},
				{"id": 9, "email": 7}, {"id": 10, "email": 7}
			]`,
			want: []int64{},
		},
		"case sensitive values": {
			src: `[
				{"id": 1, "email": "A@x.com"},
				{"id": 2, "email": "a@x.com"}
			]`,
			want: []int64{},
		},
		"empty dataset": {
			src:  `[]`,
			want: []int64{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ds := readDataset(t, tt.src)
			got := ds.DuplicateEmails()
			assert.Equal(t, tt.want, ids(got))
			for _, g := range roster.GroupByEmail(got) {
				assert.GreaterOrEqual(t, len(g.Clients), 2)
				assert.NotEmpty(t, strings.TrimSpace(g.Email))
			}
		})
	}
}

// ============================================================
// FilterByRating
// ============================================================

func TestFilterByRating(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, ratedClients)
	tests := map[string]struct {
		threshold float64
		want      []int64
	}{
		"above threshold": {threshold: 3.0, want: []int64{1, 2, 7}},
		"exact match":     {threshold: 4.5, want: []int64{1, 7}},
		"very low":        {threshold: 0, want: []int64{1, 2, 3, 7}},
		"negative":        {threshold: -10, want: []int64{1, 2, 3, 7}},
		"very high":       {threshold: 10, want: []int64{}},
		"nan":             {threshold: math.NaN(), want: []int64{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := ds.FilterByRating(tt.threshold)
			assert.Equal(t, tt.want, ids(got))
			for _, c := range got {
				rating, ok := c.Rating()
				require.True(t, ok)
				assert.GreaterOrEqual(t, rating, tt.threshold)
			}
		})
	}
}

func TestFilterByRatingScenario(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, `[
		{"id": 1, "result": {"rating": 4.5}},
		{"id": 2, "result": {}},
		{"id": 3, "result": {"rating": null}},
		{"id": 4, "result": {"rating": 2.0}}
	]`)
	assert.Equal(t, []int64{1}, ids(ds.FilterByRating(3.0)))
}

func TestFilterByRatingString(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, ratedClients)
	tests := map[string]struct {
		threshold string
		want      []int64
	}{
		"decimal":      {threshold: "3.5", want: []int64{1, 7}},
		"integer":      {threshold: "5", want: []int64{7}},
		"padded":       {threshold: " 3.5 ", want: []int64{1, 7}},
		"not a number": {threshold: "abc", want: []int64{}},
		"empty":        {threshold: "", want: []int64{}},
		"hex":          {threshold: "0x1p1", want: []int64{}},
		"infinite":     {threshold: "-Inf", want: []int64{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(ds.FilterByRatingString(tt.threshold)))
		})
	}
}

func TestFilterByRatingCoercesRatings(t *testing.T) {
	t.Parallel()
	ds := readDataset(t, `[
		{"id": 1, "result": {"rating": "4.2"}},
		{"id": 2, "result": {"rating": "abc"}},
		{"id": 3, "result": {"rating": true}},
		{"id": 4, "result": "excellent"},
		{"id": 5, "result": null},
		{"id": 6, "result": {"rating": " 3 "}},
		{"id": 7, "result": {"rating": "NaN"}},
		{"id": 8, "result": {"rating": "0x1p2"}}
	]`)
	assert.Equal(t, []int64{1, 6}, ids(ds.FilterByRating(math.Inf(-1))))
	assert.Equal(t, []int64{1}, ids(ds.FilterByRating(4)))
}
