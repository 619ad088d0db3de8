package roster

// Logical shapes rendered by both the JSON and YAML formatters.

type clientView struct {
	ID       Opt[int64]  `json:"id,omitzero" yaml:"id,omitempty"`
	FullName Opt[string] `json:"full_name,omitzero" yaml:"full_name,omitempty"`
	Email    Opt[string] `json:"email,omitzero" yaml:"email,omitempty"`
	Result   *resultView `json:"result,omitempty" yaml:"result,omitempty"`
}

type resultView struct {
	Rating   Opt[float64] `json:"rating" yaml:"rating"`
	Feedback []string     `json:"feedback" yaml:"feedback"`
}

type searchView struct {
	Query   string       `json:"query" yaml:"query"`
	Count   int          `json:"count" yaml:"count"`
	Clients []clientView `json:"clients" yaml:"clients"`
}

type groupView struct {
	Email   string       `json:"email" yaml:"email"`
	Clients []clientView `json:"clients" yaml:"clients"`
}

type duplicatesView struct {
	Count      int         `json:"count" yaml:"count"`
	Duplicates []groupView `json:"duplicates" yaml:"duplicates"`
}

type filteredView struct {
	Count   int          `json:"count" yaml:"count"`
	Clients []clientView `json:"clients" yaml:"clients"`
}

type generationView struct {
	Status   string `json:"status" yaml:"status"`
	Message  string `json:"message" yaml:"message"`
	Filename string `json:"filename" yaml:"filename"`
	Size     int    `json:"size" yaml:"size"`
}

type versionView struct {
	Application string `json:"application" yaml:"application"`
	Version     string `json:"version" yaml:"version"`
}

func newClientView(c *Client) clientView {
	v := clientView{ID: c.ID, FullName: c.FullName, Email: c.Email}
	if c.Result != nil {
		v.Result = &resultView{Rating: c.Result.Rating, Feedback: c.Result.Comments()}
	}
	return v
}

func newClientViews(clients []*Client) []clientView {
	out := make([]clientView, 0, len(clients))
	for _, c := range clients {
		out = append(out, newClientView(c))
	}
	return out
}

func newSearchView(results []*Client, query string) searchView {
	return searchView{Query: query, Count: len(results), Clients: newClientViews(results)}
}

func newDuplicatesView(results []*Client) duplicatesView {
	groups := GroupByEmail(results)
	v := duplicatesView{Count: len(results), Duplicates: make([]groupView, 0, len(groups))}
	for _, g := range groups {
		v.Duplicates = append(v.Duplicates, groupView{Email: g.Email, Clients: newClientViews(g.Clients)})
	}
	return v
}

func newFilteredView(results []*Client) filteredView {
	return filteredView{Count: len(results), Clients: newClientViews(results)}
}

func newGenerationView(path string, size int) generationView {
	return generationView{
		Status:   "success",
		Message:  "Dataset generated successfully",
		Filename: path,
		Size:     size,
	}
}

func newVersionView(version string) versionView {
	return versionView{Application: Name, Version: version}
}
