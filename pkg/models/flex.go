package models

import (
	"encoding/json"
	"strings"
)

// FlexScalar holds one untyped JSON scalar from the catalog export.
//
// The export mixes plain numbers, locale-formatted strings ("12,90"),
// empty strings and missing keys for the same field, so decoding must
// never fail: objects, arrays and malformed values simply read as unset.
// Interpreting the value (money, stock, flag) is the Normalizer's job.
type FlexScalar struct {
	Text  string
	IsSet bool
}

func (f *FlexScalar) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}

	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return nil
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		f.Text = v
		f.IsSet = true
		return nil
	}

	// arrays and objects are never a valid scalar field
	if s[0] == '{' || s[0] == '[' {
		return nil
	}

	// number / true / false pass through as their literal text
	f.Text = s
	f.IsSet = true
	return nil
}

func (f FlexScalar) MarshalJSON() ([]byte, error) {
	if !f.IsSet {
		return []byte("null"), nil
	}
	return json.Marshal(f.Text)
}

// Scalar is a convenience constructor used by tests and fixtures.
func Scalar(text string) FlexScalar {
	text = strings.TrimSpace(text)
	if text == "" {
		return FlexScalar{}
	}
	return FlexScalar{Text: text, IsSet: true}
}
