package roster

// Group is a set of clients sharing one email value.
type Group struct {
	Email   string
	Clients []*Client
}

// GroupByEmail groups clients by their email value. Groups are ordered by
// the first occurrence of each email and members keep their input order.
// Clients without a present email are grouped under "".
// Every formatter groups duplicates through this function.
func GroupByEmail(clients []*Client) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, c := range clients {
		email := c.Email.Value()
		i, ok := index[email]
		if !ok {
			i = len(groups)
			index[email] = i
			groups = append(groups, Group{Email: email})
		}
		groups[i].Clients = append(groups[i].Clients, c)
	}
	return groups
}
