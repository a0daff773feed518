// Package visibility implements per-field exposure control for tenant
// configuration trees.
//
// A backend-supplied tenant configuration carries a parallel annotation tree
// whose leaves label each field with one of three ordered levels:
// private < protected < public. Filter walks the annotation tree (never the
// configuration tree) and keeps only fields annotated at or above a minimum
// level. Because recursion is driven by the annotations, configuration
// fields without an annotation are invisible by construction.
//
// # Usage
//
//	config := map[string]any{
//		"app": map[string]any{"url": "https://acme.example", "key": "secret"},
//	}
//	tree := visibility.Tree{
//		"app": map[string]any{"url": "public", "key": "private"},
//	}
//
//	public, err := visibility.FilterPublic(config, tree)
//	// public == map[string]any{"app": map[string]any{"url": "https://acme.example"}}
//
// FilterPublic fails with ErrMissingTree when no annotation tree is supplied:
// exposing configuration without explicit annotations is never permitted.
package visibility
