package lineitem

import (
	"database/sql/driver"
	"encoding/json"
)

// Kind is the shape a products field arrived in.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindUnsupported
)

// Source is the raw products field of an entry, normalized from whatever shape
// the data source delivered: a string, an array wrapping a string, null, or
// something else entirely.
type Source struct {
	kind Kind
	text string
}

// Text wraps a plain string.
func Text(s string) Source {
	return Source{kind: KindText, text: s}
}

// FromValue normalizes a loosely typed value. Arrays contribute their first
// element only.
func FromValue(v any) Source {
	switch v := v.(type) {
	case nil:
		return Source{}
	case string:
		return Text(v)
	case *string:
		if v == nil {
			return Source{}
		}

		return Text(*v)
	case []string:
		if len(v) == 0 {
			return Source{}
		}

		return Text(v[0])
	case []any:
		if len(v) == 0 || v[0] == nil {
			return Source{}
		}

		if s, ok := v[0].(string); ok {
			return Text(s)
		}
	}

	return Source{kind: KindUnsupported}
}

func (s Source) Kind() Kind {
	return s.kind
}

// String returns the raw text, or "" when the source holds no text.
func (s Source) String() string {
	if s.kind != KindText {
		return ""
	}

	return s.text
}

// UnmarshalJSON accepts any JSON value and never fails.
func (s *Source) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*s = Source{kind: KindUnsupported}
		return nil
	}

	*s = FromValue(v)

	return nil
}

func (s Source) MarshalJSON() ([]byte, error) {
	if s.kind != KindText {
		return []byte("null"), nil
	}

	return json.Marshal(s.text)
}

// Scan implements sql.Scanner.
func (s *Source) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*s = Text(string(v))
	default:
		*s = FromValue(v)
	}

	return nil
}

// Value implements driver.Valuer.
func (s Source) Value() (driver.Value, error) {
	if s.kind != KindText {
		return nil, nil
	}

	return s.text, nil
}
