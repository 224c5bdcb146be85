// Package resolve walks a profile's inheritance chain and flattens it into a
// single fully-materialized document.
package resolve

import (
	"fmt"

	"github.com/spoolworks/spool/internal/document"
	"github.com/spoolworks/spool/internal/store"
)

// Stamp values applied by Finalize.
const (
	// DefaultFrom is the provenance tag used when the leaf profile carries none.
	DefaultFrom = "User"
	// DefaultType is the category tag used when no profile in the chain sets one.
	DefaultType = "filament"
	// InstantiationMark flags a document as a resolved instance, not a template.
	InstantiationMark = "true"
)

// CycleError reports a lookup key that recurred while walking a chain.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("inheritance cycle detected at profile %q", e.Name)
}

// Entry is one link of an ancestry chain: the profile's resolved display name
// and its raw document.
type Entry struct {
	Name string
	Doc  document.Document
}

// Resolver walks inheritance chains over one store layout. It holds no state
// across calls; concurrent resolutions are independent.
type Resolver struct {
	Layout store.Layout
}

// Chain follows the inherits references from start upward and returns the
// ancestry ordered root ancestor first, requested profile last. Each lookup
// key may appear at most once; a repeat fails with *CycleError. Locate and
// load failures propagate unchanged.
func (r Resolver) Chain(start string) ([]Entry, error) {
	visited := make(map[string]bool)
	var leafFirst []Entry

	cursor := start
	for {
		if visited[cursor] {
			return nil, &CycleError{Name: cursor}
		}
		visited[cursor] = true

		path, err := r.Layout.Locate(cursor)
		if err != nil {
			return nil, err
		}
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}

		name, ok := document.StringField(doc, "name")
		if !ok {
			name = cursor
		}
		leafFirst = append(leafFirst, Entry{Name: name, Doc: doc})

		parent, ok := document.StringField(doc, "inherits")
		if !ok {
			break
		}
		cursor = parent
	}

	// Reverse to root-first order.
	chain := make([]Entry, len(leafFirst))
	for i, entry := range leafFirst {
		chain[len(leafFirst)-1-i] = entry
	}
	return chain, nil
}

// Finalize folds the chain root-to-leaf into a fresh document, so the leaf's
// own fields win over every ancestor's, and stamps the bookkeeping fields:
// inherits is dropped, name is set to displayName, from is the leaf's own
// provenance or DefaultFrom, instantiation marks the result as resolved, and
// type defaults to DefaultType when no profile in the chain set one.
func Finalize(chain []Entry, displayName string) document.Document {
	merged := make(document.Document)
	for _, entry := range chain {
		document.Merge(merged, entry.Doc)
	}

	delete(merged, "inherits")
	merged["name"] = displayName
	merged["from"] = DefaultFrom
	if len(chain) > 0 {
		leaf := chain[len(chain)-1].Doc
		if from, ok := document.StringField(leaf, "from"); ok {
			merged["from"] = from
		}
	}
	merged["instantiation"] = InstantiationMark
	if _, ok := merged["type"]; !ok {
		merged["type"] = DefaultType
	}
	return merged
}

// Build resolves start's ancestry chain and returns the flattened document.
// The display name is the requested profile's own name field, falling back to
// the start key itself.
func (r Resolver) Build(start string) (document.Document, error) {
	chain, err := r.Chain(start)
	if err != nil {
		return nil, err
	}

	displayName := chain[len(chain)-1].Name
	if displayName == "" {
		displayName = start
	}
	return Finalize(chain, displayName), nil
}
