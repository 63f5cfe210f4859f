// Package vars implements the layered variable store: merging ordered
// var sources with later-wins precedence and tolerance for the
// sequence-of-single-key-mappings shape some playbooks use for vars.
package vars

import "fmt"

// Combine merges the given var sources left-to-right into one mapping.
// Each source may be nil (skipped), a mapping, or a sequence of
// single-key mappings (flattened first, later entries winning). Later
// sources override earlier ones on key collision. Values are deep-copied
// so tasks and roles never alias each other's data. Any other source
// shape is a type error.
func Combine(sources ...any) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range sources {
		m, err := Normalize(src)
		if err != nil {
			return nil, fmt.Errorf("vars source %d: %w", i, err)
		}
		for k, v := range m {
			merged[k] = deepCopy(v)
		}
	}
	return merged, nil
}

// Normalize converts any legal vars shape to its canonical mapping form.
// nil normalizes to an empty mapping.
func Normalize(src any) (map[string]any, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case []any:
		return UnpackListOfDicts(v)
	default:
		return nil, fmt.Errorf("unsupported vars shape %T", src)
	}
}

// UnpackListOfDicts flattens a sequence of single-key mappings into one
// mapping. Later entries override earlier ones on key collision. A
// non-mapping element is a type error.
func UnpackListOfDicts(list []any) (map[string]any, error) {
	out := make(map[string]any, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("vars list element %d is %T, want mapping", i, el)
		}
		for k, v := range m {
			out[k] = v
		}
	}
	return out, nil
}

// deepCopy copies the YAML-shaped value graph so merged stores never
// share mutable containers with their sources.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
