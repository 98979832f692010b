// Package jsonutil provides JSON helpers for GeoRZA's command-line output.
//
// Values are compared through their JSON form so that the field names in a
// diff match the keys a user sees in --format json output.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Pretty marshals v with two-space indentation.
func Pretty(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %T: %w", v, err)
	}
	return string(b), nil
}

// Change is one differing leaf between two values.
type Change struct {
	Path     string `json:"path"`
	Type     string `json:"type"` // "add", "update", "delete"
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

func (c Change) String() string {
	switch c.Type {
	case "add":
		return fmt.Sprintf("%s: %s", c.Path, c.NewValue)
	case "delete":
		return fmt.Sprintf("%s: removed (was %s)", c.Path, c.OldValue)
	}
	return fmt.Sprintf("%s: %s -> %s", c.Path, c.OldValue, c.NewValue)
}

// Diff compares the JSON objects of base and next. Nested objects are
// compared field by field and paths are dot separated, e.g. "layer.v1_mps".
func Diff(base, next any) ([]Change, error) {
	oldMap, err := toMap(base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	newMap, err := toMap(next)
	if err != nil {
		return nil, fmt.Errorf("next: %w", err)
	}
	return diffMaps("", oldMap, newMap, nil), nil
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%T is not a JSON object: %w", v, err)
	}
	return out, nil
}

func diffMaps(prefix string, oldMap, newMap map[string]any, diffs []Change) []Change {
	// Collect all keys
	allKeys := make(map[string]bool)
	for k := range oldMap {
		allKeys[k] = true
	}
	for k := range newMap {
		allKeys[k] = true
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(allKeys))
	for k := range allKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		oldVal, oldExists := oldMap[k]
		newVal, newExists := newMap[k]

		switch {
		case !oldExists && newExists:
			diffs = append(diffs, Change{Path: path, Type: "add", NewValue: toJSONStr(newVal)})
		case oldExists && !newExists:
			diffs = append(diffs, Change{Path: path, Type: "delete", OldValue: toJSONStr(oldVal)})
		default:
			oldStr, newStr := toJSONStr(oldVal), toJSONStr(newVal)
			if oldStr == newStr {
				continue
			}
			oldChild, oldIsMap := oldVal.(map[string]any)
			newChild, newIsMap := newVal.(map[string]any)
			if oldIsMap && newIsMap {
				diffs = diffMaps(path, oldChild, newChild, diffs)
			} else {
				diffs = append(diffs, Change{Path: path, Type: "update", OldValue: oldStr, NewValue: newStr})
			}
		}
	}

	return diffs
}

func toJSONStr(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
