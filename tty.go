package roster

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
)

// ttyFormatter renders human-readable text. Style functions wrap text after
// widths are measured, so ANSI codes never affect alignment.
type ttyFormatter struct {
	emphasis func(string) string
	muted    func(string) string
}

func newTTYFormatter(color bool) ttyFormatter {
	if !color {
		plain := func(s string) string { return s }
		return ttyFormatter{emphasis: plain, muted: plain}
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	emphasis := r.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion)
	muted := r.NewStyle().Foreground(lipgloss.Color("8")).TabWidth(lipgloss.NoTabConversion)
	return ttyFormatter{
		emphasis: func(s string) string { return emphasis.Render(s) },
		muted:    func(s string) string { return muted.Render(s) },
	}
}

func (f ttyFormatter) SearchResults(results []*Client, query string) string {
	if len(results) == 0 {
		return fmt.Sprintf("No clients found matching '%s'", query)
	}
	width := nameWidth(results)
	lines := []string{fmt.Sprintf("Found %d client(s) matching '%s':", len(results), query)}
	for _, c := range results {
		lines = append(lines, "- "+f.clientLine(c, width, query))
	}
	return strings.Join(lines, "\n")
}

func (f ttyFormatter) DuplicateResults(results []*Client) string {
	if len(results) == 0 {
		return "No duplicate emails found"
	}
	width := nameWidth(results)
	lines := []string{"Found duplicate emails:"}
	for _, g := range GroupByEmail(results) {
		lines = append(lines, "", g.Email+":")
		for _, c := range g.Clients {
			lines = append(lines, "  - "+f.clientLine(c, width, ""))
		}
	}
	return strings.Join(lines, "\n")
}

func (f ttyFormatter) FilteredResults(results []*Client) string {
	if len(results) == 0 {
		return "No clients matched the rating filter"
	}
	var lines []string
	for i, c := range results {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, f.clientLine(c, 0, ""))
		if rating, ok := c.RatingText(); ok {
			lines = append(lines, "Rating "+rating)
		}
		if comments := c.Comments(); len(comments) > 0 {
			quoted := make([]string, len(comments))
			for j, comment := range comments {
				quoted[j] = `"` + comment + `"`
			}
			lines = append(lines, strings.Join(quoted, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func (f ttyFormatter) GenerationResult(path string, size int) string {
	return fmt.Sprintf("Generated %d clients and saved to '%s'", size, path)
}

func (f ttyFormatter) Version(version string) string {
	return Name + " " + version
}

// clientLine renders "NAME <EMAIL> #ID". The name is padded to width display
// columns when anything follows it; absent fields are left out.
func (f ttyFormatter) clientLine(c *Client, width int, query string) string {
	var tail []string
	if email, ok := c.Email.Get(); ok {
		tail = append(tail, "<"+email+">")
	}
	if id, ok := c.ID.Get(); ok {
		tail = append(tail, f.muted("#"+strconv.FormatInt(id, 10)))
	}
	name := c.Name()
	if len(tail) == 0 {
		return f.highlight(name, query)
	}
	if name == "" && width == 0 {
		return strings.Join(tail, " ")
	}
	head := f.highlight(name, query) + padding(name, width)
	return head + " " + strings.Join(tail, " ")
}

func (f ttyFormatter) highlight(s, query string) string {
	spans := matchSpans(s, query)
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(s[last:span[0]])
		b.WriteString(f.emphasis(s[span[0]:span[1]]))
		last = span[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// matchSpans returns the non-overlapping byte ranges of s whose case folding
// equals the folded, trimmed query.
func matchSpans(s, query string) [][2]int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(query)
	var spans [][2]int
	for i := 0; i < len(s); {
		end := -1
		for j := i + 1; j <= len(s); j++ {
			if j < len(s) && !utf8.RuneStart(s[j]) {
				continue
			}
			folded := fold.String(s[i:j])
			if folded == needle {
				end = j
				break
			}
			if !strings.HasPrefix(needle, folded) {
				break
			}
		}
		if end > 0 {
			spans = append(spans, [2]int{i, end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return spans
}

func nameWidth(clients []*Client) int {
	width := 0
	for _, c := range clients {
		if w := runewidth.StringWidth(c.Name()); w > width {
			width = w
		}
	}
	return width
}

func padding(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return ""
	}
	return strings.Repeat(" ", pad)
}
