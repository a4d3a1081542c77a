// Package inspect evaluates JSONPath expressions against persisted values.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// ErrNotJSON is returned when the stored value is not a JSON document.
var ErrNotJSON = errors.New("value is not JSON")

// Query decodes raw and evaluates path against it, e.g.
// "$[*].items[*].symbol" over the watchlists key.
// An empty path or "$" returns the whole document.
func Query(raw []byte, path string) (any, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	if path == "" || path == "$" {
		return doc, nil
	}

	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}
	return v, nil
}

// QueryIndent runs Query and formats the result as indented JSON.
func QueryIndent(raw []byte, path string) (string, error) {
	v, err := Query(raw, path)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
