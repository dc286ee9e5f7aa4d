package pipeline

import (
	"bytes"
	"encoding/json"
)

// Value is a scalar condition operand: a JSON string, number, boolean or
// null. The original JSON text is retained so numbers render exactly as they
// arrived instead of round-tripping through a float.
type Value struct {
	text json.RawMessage
	str  *string
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return newParseError("empty value")
	}
	switch trimmed[0] {
	case '{', '[':
		return newParseError("value must be a scalar (string, number, boolean or null)")
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return parseErrorf("invalid string value: %v", err)
		}
		v.str = &s
	default:
		var scalar any
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return parseErrorf("invalid value %s", trimmed)
		}
	}
	v.text = append(json.RawMessage(nil), trimmed...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.text) == 0 {
		return []byte("null"), nil
	}
	return v.text, nil
}

// Prql renders the value as a PRQL literal, which for scalars is its JSON
// text unchanged.
func (v Value) Prql(Dialect) string {
	if len(v.text) == 0 {
		return "null"
	}
	return string(v.text)
}

// raw renders the value for s-string context: strings become single-quoted
// SQL literals, everything else keeps its JSON text.
func (v Value) raw(dialect Dialect) string {
	if v.str != nil {
		return rawLiteral(*v.str, dialect)
	}
	return v.Prql(dialect)
}
