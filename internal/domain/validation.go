package domain

import "strings"

// ValidationError is a single field-level problem with a QuoteInput.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full list of problems found in one input. An empty
// list means the input is acceptable.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return "invalid quote input: " + strings.Join(msgs, "; ")
}

// Fields returns the offending field names in report order.
func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Field)
	}
	return out
}
