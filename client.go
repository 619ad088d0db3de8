package roster

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Client is one record of a dataset.
type Client struct {
	ID       Opt[int64]  `json:"id,omitzero"`
	FullName Opt[string] `json:"full_name,omitzero"`
	Email    Opt[string] `json:"email,omitzero"`
	Result   *Result     `json:"result,omitempty"`
}

// Result is the optional evaluation attached to a client.
type Result struct {
	Rating   Opt[float64] `json:"rating,omitzero"`
	Feedback []Feedback   `json:"feedback,omitempty"`

	// ratingText is the rating as written in the source document.
	ratingText string
}

// Feedback is one feedback entry. Plain text entries only set Comment.
// Date is carried through but never interpreted.
type Feedback struct {
	Comment Opt[string]
	Date    Opt[string]
}

// UnmarshalJSON implements json.Unmarshaler. A result that is null or not an
// object leaves Result nil.
func (c *Client) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       Opt[int64]      `json:"id"`
		FullName Opt[string]     `json:"full_name"`
		Email    Opt[string]     `json:"email"`
		Result   json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Client{ID: raw.ID, FullName: raw.FullName, Email: raw.Email}
	if isObject(raw.Result) {
		var r Result
		if err := json.Unmarshal(raw.Result, &r); err != nil {
			return err
		}
		c.Result = &r
	}
	return nil
}

// Name returns the full name, or "" when it is not present.
func (c *Client) Name() string { return c.FullName.Value() }

// EmailKey returns the email used for duplicate grouping. Absent, null,
// mistyped and blank emails report false.
func (c *Client) EmailKey() (string, bool) {
	email, ok := c.Email.Get()
	if !ok || strings.TrimSpace(email) == "" {
		return "", false
	}
	return email, true
}

// Rating returns the client's rating when a result with a usable rating is
// attached.
func (c *Client) Rating() (float64, bool) {
	if c.Result == nil {
		return 0, false
	}
	return c.Result.Rating.Get()
}

// RatingText returns the rating as it was written in the source document,
// so 2.0 stays "2.0". Ratings set in code render with at least one decimal.
func (c *Client) RatingText() (string, bool) {
	rating, ok := c.Rating()
	if !ok {
		return "", false
	}
	if c.Result.ratingText != "" {
		return c.Result.ratingText, true
	}
	return formatRating(rating), true
}

// Comments returns the feedback comments of the client's result.
func (c *Client) Comments() []string {
	if c.Result == nil {
		return nil
	}
	return c.Result.Comments()
}

// UnmarshalJSON implements json.Unmarshaler. A rating given as decimal text
// is coerced to a number; any other text makes the rating Invalid.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rating   json.RawMessage `json:"rating"`
		Feedback json.RawMessage `json:"feedback"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rating, text := decodeRating(raw.Rating)
	*r = Result{Rating: rating, ratingText: text}
	var entries []json.RawMessage
	if len(raw.Feedback) > 0 && json.Unmarshal(raw.Feedback, &entries) == nil {
		r.Feedback = make([]Feedback, 0, len(entries))
		for _, e := range entries {
			r.Feedback = append(r.Feedback, decodeFeedback(e))
		}
	}
	return nil
}

// Comments returns the comment of every entry that has one, in order.
func (r *Result) Comments() []string {
	out := make([]string, 0, len(r.Feedback))
	for _, f := range r.Feedback {
		if comment, ok := f.Comment.Get(); ok {
			out = append(out, comment)
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler. An entry holding only a comment
// encodes as a plain string.
func (f Feedback) MarshalJSON() ([]byte, error) {
	if f.Comment.IsPresent() && f.Date.IsZero() {
		return marshalRaw(f.Comment.Value())
	}
	return marshalRaw(struct {
		Comment Opt[string] `json:"comment,omitzero"`
		Date    Opt[string] `json:"date,omitzero"`
	}{f.Comment, f.Date})
}

func decodeRating(raw json.RawMessage) (Opt[float64], string) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return Opt[float64]{}, ""
	case string(raw) == "null":
		return NullOf[float64](), ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Opt[float64]{presence: Invalid}, ""
		}
		s = strings.TrimSpace(s)
		v, ok := parseDecimal(s)
		if !ok {
			return Opt[float64]{presence: Invalid}, ""
		}
		return Some(v), s
	default:
		var v Opt[float64]
		_ = v.UnmarshalJSON(raw)
		if !v.IsPresent() {
			return v, ""
		}
		return v, string(raw)
	}
}

// parseDecimal parses s as a finite decimal number. Hexadecimal, infinite
// and NaN forms are rejected.
func parseDecimal(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func decodeFeedback(raw json.RawMessage) Feedback {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Feedback{}
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Feedback{}
		}
		return Feedback{Comment: Some(s)}
	case '{':
		var entry struct {
			Comment Opt[string] `json:"comment"`
			Date    Opt[string] `json:"date"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return Feedback{}
		}
		return Feedback{Comment: entry.Comment, Date: entry.Date}
	case '[', 'n':
		return Feedback{}
	default:
		// Numbers and booleans pass through as their literal text.
		return Feedback{Comment: Some(string(raw))}
	}
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func formatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
