// Package document loads profile documents from disk and deep-merges them.
package document

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a parsed profile file: an arbitrarily nested JSON object.
type Document = map[string]any

// IOError reports an open, read, or write failure for a file, carrying the
// offending path alongside the underlying OS error.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a profile file whose content is not a JSON object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads path and parses it as a JSON object.
// It returns either a complete Document or an error, never a partial result.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("top-level value is not an object")}
	}
	return doc, nil
}

// Merge combines from into into, key by key. Where both sides hold an object
// the merge recurses; everywhere else from's value replaces into's wholesale,
// so arrays and scalars are never combined element-wise. Nested objects are
// copied into fresh maps, so into never aliases from's object structure.
func Merge(into, from Document) {
	for key, val := range from {
		sub, ok := val.(map[string]any)
		if !ok {
			into[key] = val
			continue
		}
		target, ok := into[key].(map[string]any)
		if !ok {
			// Absent or non-object on the into side: seed an empty object so
			// the recursion has a target, replacing whatever was there.
			target = make(map[string]any, len(sub))
			into[key] = target
		}
		Merge(target, sub)
	}
}

// StringField returns doc[key] when it is a non-empty string.
func StringField(doc Document, key string) (string, bool) {
	v, ok := doc[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
