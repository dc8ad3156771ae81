package profile

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	CodeMissingField = "missing_field"
	CodeTooShort     = "too_short"
	CodeInvalidURL   = "invalid_url"
	CodeWrongType    = "wrong_type"
)

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldPhoto       = "photo"
	FieldInterests   = "interests"
)

// ProfileInput is the raw form payload before it passes the validation gate.
// Interests stays untyped so the boundary can still report wrong_type for a
// payload that carries a scalar instead of a list.
type ProfileInput struct {
	Name        string
	Description string
	Address     string
	Photo       string
	Interests   any
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult keeps errors in check order, so First is deterministic.
type ValidationResult struct {
	Errors []FieldError
}

func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// First implements the first-error-wins surfacing policy: the message shown
// to the user is always the earliest failing check, not an arbitrary map
// iteration pick.
func (r ValidationResult) First() *FieldError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

func (r ValidationResult) ByField() map[string]string {
	if len(r.Errors) == 0 {
		return nil
	}
	m := make(map[string]string, len(r.Errors))
	for _, fe := range r.Errors {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// ValidationError carries a failed ValidationResult across the error channel.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	if first := e.Result.First(); first != nil {
		return first.Message
	}
	return "invalid profile"
}

// ValidateInput checks every rule and reports every failing field. It is pure
// and never panics regardless of input shape.
func ValidateInput(in ProfileInput) ValidationResult {
	var res ValidationResult

	add := func(field, code, message string) {
		res.Errors = append(res.Errors, FieldError{Field: field, Code: code, Message: message})
	}

	if in.Name == "" {
		add(FieldName, CodeMissingField, "Name is required")
	} else if utf8.RuneCountInString(in.Name) < 2 {
		add(FieldName, CodeTooShort, "Name must be at least 2 characters long")
	}

	if in.Description == "" {
		add(FieldDescription, CodeMissingField, "Description is required")
	} else if utf8.RuneCountInString(in.Description) < 10 {
		add(FieldDescription, CodeTooShort, "Description must be at least 10 characters long")
	}

	if in.Address == "" {
		add(FieldAddress, CodeMissingField, "Address is required")
	} else if utf8.RuneCountInString(in.Address) < 5 {
		add(FieldAddress, CodeTooShort, "Please enter a valid address")
	}

	if in.Photo != "" && !IsValidURL(in.Photo) {
		add(FieldPhoto, CodeInvalidURL, "Please enter a valid URL for the photo")
	}

	if in.Interests != nil {
		if _, ok := NormalizeInterests(in.Interests); !ok {
			add(FieldInterests, CodeWrongType, "Interests must be an array")
		}
	}

	return res
}

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// NormalizeInterests accepts the sequence shapes a JSON payload can produce
// ([]string after binding, []any straight from the decoder) and returns
// trimmed non-empty tags in their original order. Duplicates are kept.
// ok is false when the value is not a sequence of strings.
func NormalizeInterests(v any) ([]string, bool) {
	switch seq := v.(type) {
	case nil:
		return []string{}, true
	case []string:
		return trimInterests(seq), true
	case []any:
		tags := make([]string, 0, len(seq))
		for _, item := range seq {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			tags = append(tags, s)
		}
		return trimInterests(tags), true
	default:
		return nil, false
	}
}

// ParseInterests splits a comma-separated tag string from the admin form.
func ParseInterests(s string) []string {
	if s == "" {
		return []string{}
	}
	return trimInterests(strings.Split(s, ","))
}

func trimInterests(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
