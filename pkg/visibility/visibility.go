package visibility

import "strings"

// Level is the exposure level of a single tenant configuration field.
// Levels form a total order: Private < Protected < Public.
type Level int

const (
	// Private fields never leave the server.
	Private Level = iota + 1
	// Protected fields are available to server-side rendering but not to clients.
	Protected
	// Public fields may be serialized into the client-visible payload.
	Public
)

// String returns the wire label for the level.
func (l Level) String() string {
	switch l {
	case Protected:
		return "protected"
	case Public:
		return "public"
	default:
		return "private"
	}
}

// ParseLevel maps a wire label to a Level. Unknown or empty labels
// resolve to Private, so an unannotated or mislabeled field is never exposed.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return Public
	case "protected":
		return Protected
	default:
		return Private
	}
}

// Tree is a visibility annotation tree. It mirrors a prefix of a
// configuration tree: leaves are level labels (strings), intermediate
// nodes are nested Trees (map[string]any).
type Tree = map[string]any

// Filter prunes config down to the fields whose annotated visibility is at
// least min. Recursion is driven by the annotation tree, not the config
// tree: a config field with no annotation is never visited, so new backend
// fields are invisible until explicitly annotated.
func Filter(config map[string]any, tree Tree, min Level) map[string]any {
	out := make(map[string]any)
	if tree == nil {
		return out
	}

	for key, node := range tree {
		switch annotation := node.(type) {
		case map[string]any:
			sub, ok := config[key].(map[string]any)
			if !ok {
				// Config branch missing or not an object; drop the whole sub-key.
				continue
			}
			if filtered := Filter(sub, annotation, min); len(filtered) > 0 {
				out[key] = filtered
			}
		case string:
			if ParseLevel(annotation) >= min {
				value, exists := config[key]
				if !exists {
					out[key] = nil
					continue
				}
				out[key] = value
			}
		default:
			// Malformed annotation node, treated as private.
		}
	}

	return out
}

// FilterPublic returns the client-safe subset of config: Filter fixed at
// the Public minimum. Unlike Filter it refuses to operate without an
// annotation tree; exposing tenant configuration without backend-declared
// visibility is a programming defect, not a runtime condition.
func FilterPublic(config map[string]any, tree Tree) (map[string]any, error) {
	if len(tree) == 0 {
		return nil, ErrMissingTree
	}
	return Filter(config, tree, Public), nil
}
