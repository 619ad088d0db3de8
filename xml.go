package roster

import (
	"fmt"
	"strconv"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

type xmlFormatter struct{}

func (xmlFormatter) SearchResults(results []*Client, query string) string {
	root := fmt.Sprintf(`search_results query="%s" count="%d"`, escapeXML(query), len(results))
	if len(results) == 0 {
		return xmlDocument("<" + root + "/>")
	}
	lines := []string{"<" + root + ">"}
	for _, c := range results {
		lines = append(lines, xmlClient(c, "  ")...)
	}
	lines = append(lines, "</search_results>")
	return xmlDocument(lines...)
}

func (xmlFormatter) DuplicateResults(results []*Client) string {
	if len(results) == 0 {
		return xmlDocument(`<duplicate_results count="0"/>`)
	}
	lines := []string{fmt.Sprintf(`<duplicate_results count="%d">`, len(results))}
	for _, g := range GroupByEmail(results) {
		lines = append(lines, fmt.Sprintf(`  <duplicate_group email="%s">`, escapeXML(g.Email)))
		for _, c := range g.Clients {
			lines = append(lines, xmlClient(c, "    ")...)
		}
		lines = append(lines, "  </duplicate_group>")
	}
	lines = append(lines, "</duplicate_results>")
	return xmlDocument(lines...)
}

func (xmlFormatter) FilteredResults(results []*Client) string {
	if len(results) == 0 {
		return xmlDocument(`<filtered_results count="0"/>`)
	}
	lines := []string{fmt.Sprintf(`<filtered_results count="%d">`, len(results))}
	for _, c := range results {
		lines = append(lines, xmlClient(c, "  ")...)
	}
	lines = append(lines, "</filtered_results>")
	return xmlDocument(lines...)
}

func (xmlFormatter) GenerationResult(path string, size int) string {
	return xmlDocument(
		"<generation_result>",
		"  <status>success</status>",
		"  <message>Dataset generated successfully</message>",
		"  <filename>"+escapeXML(path)+"</filename>",
		"  <size>"+strconv.Itoa(size)+"</size>",
		"</generation_result>",
	)
}

func (xmlFormatter) Version(version string) string {
	return xmlDocument(
		"<version>",
		"  <application>"+Name+"</application>",
		"  <number>"+escapeXML(version)+"</number>",
		"</version>",
	)
}

func xmlDocument(lines ...string) string {
	return xmlDeclaration + "\n" + strings.Join(lines, "\n")
}

func xmlClient(c *Client, indent string) []string {
	id := ""
	if v, ok := c.ID.Get(); ok {
		id = strconv.FormatInt(v, 10)
	}
	lines := []string{
		fmt.Sprintf(`%s<client id="%s">`, indent, id),
		fmt.Sprintf("%s  <full_name>%s</full_name>", indent, escapeXML(c.Name())),
		fmt.Sprintf("%s  <email>%s</email>", indent, escapeXML(c.Email.Value())),
	}
	if rating, ok := c.RatingText(); ok {
		lines = append(lines, fmt.Sprintf("%s  <rating>%s</rating>", indent, escapeXML(rating)))
	}
	if comments := c.Comments(); len(comments) > 0 {
		lines = append(lines, indent+"  <feedback>")
		for _, comment := range comments {
			lines = append(lines, fmt.Sprintf("%s    <comment>%s</comment>", indent, escapeXML(comment)))
		}
		lines = append(lines, indent+"  </feedback>")
	}
	return append(lines, indent+"</client>")
}

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
