package store

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// marshalStrings converts an ordered string list to JSON TEXT for
// storage. nil and empty both store as "[]" so reads never yield null.
func marshalStrings(items []string) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings parses JSON TEXT to an ordered string list.
// Returns an empty slice instead of nil.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// normText canonicalizes free text to Unicode NFC before storage so
// search and equality behave the same for composed and decomposed input.
func normText(s string) string {
	return norm.NFC.String(s)
}

// normList canonicalizes every element of a string list.
func normList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = norm.NFC.String(s)
	}
	return out
}
