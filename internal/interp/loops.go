package interp

import (
	"regexp"
	"sort"
	"strings"
)

// exprRe matches a whole-string templating expression, the only shape
// resolved against the ambient vars. A string merely containing an
// expression passes through as a literal.
var exprRe = regexp.MustCompile(`^\{\{\s*(.+?)\s*\}\}$`)

// LoopSpec collects a task's loop directives. Loop support is partial:
// items, nested cross-products, dict iteration and subelements are
// handled best-effort, anything else is ignored.
type LoopSpec struct {
	Items       any
	Nested      any
	Dict        any
	Subelements any
}

// LoopFrom assembles a LoopSpec from a raw task.
func LoopFrom(task *RawTask) LoopSpec {
	var s LoopSpec
	s.Items, _ = task.Get("with_items")
	s.Nested, _ = task.Get("with_nested")
	s.Dict, _ = task.Get("with_dict")
	s.Subelements, _ = task.Get("with_subelements")
	return s
}

// ResolveLoop turns a task's loop directives into the concrete item
// sequence, or nil when the task does not loop.
func (in *Interpreter) ResolveLoop(spec LoopSpec, ambient map[string]any) []any {
	switch {
	case spec.Items != nil:
		return toList(resolveExpr(spec.Items, ambient))
	case spec.Dict != nil:
		resolved := resolveExpr(spec.Dict, ambient)
		if m, ok := resolved.(map[string]any); ok {
			return dictItems(m)
		}
		return toList(resolved)
	case spec.Nested != nil:
		return in.nestedItems(spec.Nested, ambient)
	case spec.Subelements != nil:
		return in.subelementItems(spec.Subelements, ambient)
	}
	return nil
}

// nestedItems resolves each level independently and produces the full
// cross-product in level order, first level varying slowest. A level
// that resolves to nothing contributes a single nil so the remaining
// levels still expand.
func (in *Interpreter) nestedItems(raw any, ambient map[string]any) []any {
	levels, ok := raw.([]any)
	if !ok {
		return toList(resolveExpr(raw, ambient))
	}
	resolved := make([][]any, 0, len(levels))
	for _, level := range levels {
		l := toList(resolveExpr(level, ambient))
		if len(l) == 0 {
			l = []any{nil}
		}
		resolved = append(resolved, l)
	}

	product := [][]any{{}}
	for _, level := range resolved {
		next := make([][]any, 0, len(product)*len(level))
		for _, acc := range product {
			for _, item := range level {
				tuple := make([]any, len(acc)+1)
				copy(tuple, acc)
				tuple[len(acc)] = item
				next = append(next, tuple)
			}
		}
		product = next
	}

	items := make([]any, len(product))
	for i, tuple := range product {
		items[i] = tuple
	}
	return items
}

// subelementItems pairs each outer item with every element of its named
// sub-list. The directive is a two-element sequence: the outer list
// expression and the sub-list key.
func (in *Interpreter) subelementItems(raw any, ambient map[string]any) []any {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		in.log.Debugf("unsupported with_subelements shape %T", raw)
		return nil
	}
	subKey, ok := pair[1].(string)
	if !ok {
		in.log.Debugf("with_subelements sub key is %T, want string", pair[1])
		return nil
	}
	var items []any
	for _, outer := range toList(resolveExpr(pair[0], ambient)) {
		m, ok := outer.(map[string]any)
		if !ok {
			continue
		}
		subs, ok := m[subKey].([]any)
		if !ok {
			continue
		}
		for _, sub := range subs {
			items = append(items, []any{outer, sub})
		}
	}
	return items
}

// resolveExpr evaluates a whole-string {{ expr }} value against the
// ambient vars via dotted-path lookup. Anything else, or an expression
// naming nothing, passes through unresolved.
func resolveExpr(v any, ambient map[string]any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	m := exprRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return v
	}
	if resolved, ok := lookupPath(m[1], ambient); ok {
		return resolved
	}
	return v
}

// lookupPath walks a dotted variable path through nested mappings.
func lookupPath(expr string, vars map[string]any) (any, bool) {
	var current any = vars
	for _, seg := range strings.Split(expr, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// toList coerces a resolved loop source to an item sequence: sequences
// are taken as-is, nil contributes nothing, and a scalar becomes a
// single item.
func toList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}

// dictItems iterates a mapping as key/value items, sorted by key so
// output is deterministic.
func dictItems(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]any, len(keys))
	for i, k := range keys {
		items[i] = map[string]any{"key": k, "value": m[k]}
	}
	return items
}
