// Package roster loads a JSON dataset of client records, queries it, and
// renders query results in multiple output formats.
//
// # Datasets
//
// [Load] reads a JSON array of client objects from a file; [Read] does the
// same for any reader. Files ending in .gz, .zst or .lz4 are decompressed
// transparently:
//
//	ds, err := roster.Load("clients.json")
//	if errors.Is(err, roster.ErrNotFound) { ... }
//
// Only the top-level shape is validated. Missing or mistyped fields inside a
// record are tolerated: every field is an [Opt] that records whether it was
// absent, null, present, or of the wrong type, and each query decides how to
// treat those states.
//
// # Queries
//
// A [Dataset] is immutable once loaded. Queries return new slices that share
// the loaded clients and always preserve document order:
//
//   - [Dataset.SearchNames]: case-insensitive substring match on full_name
//   - [Dataset.DuplicateEmails]: clients sharing an email, grouped by first occurrence
//   - [Dataset.FilterByRating]: clients whose result rating is at least a threshold
//
// # Formats
//
// A [Formatter] renders query results as text. Use [ParseFormat] to turn a
// CLI flag into a [Format] and [New] to build the formatter:
//
//	f, err := roster.ParseFormat(flagValue)
//	fmtr, err := roster.New(f, roster.WithColor(true))
//	fmt.Println(fmtr.SearchResults(ds.SearchNames("jo"), "jo"))
//
// Supported formats are TTY, CSV, JSON, XML, and YAML. All five agree on
// which clients appear, in which order, and under which duplicate groups;
// duplicate groups are derived with [GroupByEmail].
//
// # Generating data
//
// [Generate] and [GenerateFile] write synthetic datasets that [Load] reads
// back. Use [WithSeed] for reproducible output.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrNotFound]: the dataset file does not exist
//   - [ErrMalformedData]: the content is not a JSON array of objects
//   - [ErrUnsupportedFormat]: unknown format name
//   - [ErrInvalidSize]: non-positive generator size
package roster
