package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	csvHeader         = []string{"id", "full_name", "email"}
	csvFilteredHeader = []string{"id", "full_name", "email", "rating", "feedback_comments"}
)

type csvFormatter struct{}

func (csvFormatter) SearchResults(results []*Client, query string) string {
	if len(results) == 0 {
		return fmt.Sprintf("# No clients found matching '%s'", query)
	}
	rows := make([][]string, 0, len(results))
	for _, c := range results {
		rows = append(rows, csvRow(c))
	}
	return csvBlock(fmt.Sprintf("# Found %d client(s) matching '%s':", len(results), query), csvHeader, rows)
}

func (csvFormatter) DuplicateResults(results []*Client) string {
	if len(results) == 0 {
		return "# No duplicate emails found"
	}
	rows := make([][]string, 0, len(results))
	for _, g := range GroupByEmail(results) {
		for _, c := range g.Clients {
			rows = append(rows, csvRow(c))
		}
	}
	return csvBlock("# Found duplicate emails:", csvHeader, rows)
}

func (csvFormatter) FilteredResults(results []*Client) string {
	if len(results) == 0 {
		return "# No clients matched the rating filter"
	}
	rows := make([][]string, 0, len(results))
	for _, c := range results {
		rating := ""
		if r, ok := c.RatingText(); ok {
			rating = r
		}
		rows = append(rows, append(csvRow(c), rating, strings.Join(c.Comments(), " | ")))
	}
	return csvBlock("# Clients matching rating filter:", csvFilteredHeader, rows)
}

func (csvFormatter) GenerationResult(path string, size int) string {
	return fmt.Sprintf("# Generated %d clients and saved to '%s'", size, path)
}

func (csvFormatter) Version(version string) string {
	return fmt.Sprintf("# %s %s", Name, version)
}

func csvRow(c *Client) []string {
	id := ""
	if v, ok := c.ID.Get(); ok {
		id = strconv.FormatInt(v, 10)
	}
	return []string{id, c.Name(), c.Email.Value()}
}

func csvBlock(comment string, header []string, rows [][]string) string {
	var buf bytes.Buffer
	buf.WriteString(comment)
	buf.WriteByte('\n')
	if err := writeCSV(&buf, header, rows); err != nil {
		return comment
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
