// Package registry maps operation names to ordered lists of module
// variant definitions. Both scans are ordered contracts: task keys are
// checked in source order, and within a module the first matching
// variant wins, so variant lists must put specific predicates before
// the catch-all.
package registry

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ansidocs/ansidocs/internal/loader"
	"github.com/ansidocs/ansidocs/internal/logging"
)

// Unsupported is the reserved module name used when none of a task's
// keys name a registered module. Its single variant renders a fallback
// description of the whole task.
const Unsupported = "_unsupported"

// TextSpec is a variant's text definition: either a list of line keys
// resolved against the locale string table, or one inline template.
type TextSpec struct {
	Keys   []string
	Inline string
}

// UnmarshalYAML accepts both the scalar and the sequence form.
func (s *TextSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&s.Inline)
	case yaml.SequenceNode:
		return node.Decode(&s.Keys)
	}
	return fmt.Errorf("text must be a string or a list of line keys (line %d)", node.Line)
}

// Empty reports whether the variant defines no text at all.
func (s TextSpec) Empty() bool {
	return len(s.Keys) == 0 && s.Inline == ""
}

// Variant is one conditional documentation definition of a module.
type Variant struct {
	Text     TextSpec       `yaml:"text"`
	Commands string         `yaml:"commands"`
	Content  string         `yaml:"content"`
	If       map[string]any `yaml:"if"`
}

// unsupportedVariant renders the serialized task dump produced by the
// parameter-extraction fallback.
var unsupportedVariant = Variant{Text: TextSpec{Inline: "$_ansible_task$"}}

// Registry holds every supported module's variant list.
type Registry struct {
	modules map[string][]Variant
	log     *logging.Logger
}

// Load reads the module registry document (conventionally modules.yml).
func Load(l *loader.Loader, path string, log *logging.Logger) (*Registry, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(path, ".yaml"), ".yml")
	var modules map[string][]Variant
	found, err := l.LoadInto(base, &modules)
	if err != nil {
		return nil, fmt.Errorf("loading module registry: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("module registry not found: %s", path)
	}
	log.Verbosef("loaded %d modules from %s", len(modules), path)
	return &Registry{modules: modules, log: log}, nil
}

// Has reports whether a key names a registered module.
func (r *Registry) Has(key string) bool {
	_, ok := r.modules[key]
	return ok
}

// Detect scans the task's top-level keys in their source order and
// returns the first registered module name, or Unsupported when no key
// matches.
func (r *Registry) Detect(keys []string) string {
	for _, k := range keys {
		if r.Has(k) {
			return k
		}
	}
	return Unsupported
}

// Select picks the first variant of the module whose predicate the
// task's parameters satisfy. An absent parameter compares as nil, so a
// predicate accepting null matches tasks that omit the parameter. A
// variant without a predicate matches unconditionally. Returns nil when
// no variant matches.
func (r *Registry) Select(module string, params map[string]any) *Variant {
	if module == Unsupported {
		v := unsupportedVariant
		return &v
	}
	for i := range r.modules[module] {
		v := &r.modules[module][i]
		if matches(v, params) {
			return v
		}
	}
	return nil
}

func matches(v *Variant, params map[string]any) bool {
	for name, accepted := range v.If {
		got := params[name]
		if list, ok := accepted.([]any); ok {
			found := false
			for _, want := range list {
				if literalEqual(got, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if !literalEqual(got, accepted) {
			return false
		}
	}
	return true
}

// literalEqual compares YAML scalar values, tolerating non-comparable
// container values without panicking.
func literalEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}
