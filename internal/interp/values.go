package interp

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ansidocs/ansidocs/internal/registry"
)

// Values extracts the parameter values for the detected module. For a
// registered module this is whatever structure follows the module key:
// a mapping is used as-is, an absent or null value yields an empty
// mapping, and a free-form scalar is exposed under the synthetic _args
// key. For the unsupported fallback the single _ansible_task value
// carries a serialized dump of the whole task so the fallback template
// has something to interpolate.
func Values(task *RawTask, module string) map[string]any {
	if module == registry.Unsupported {
		return map[string]any{"_ansible_task": DumpTask(task)}
	}
	raw, ok := task.Get(module)
	if !ok || raw == nil {
		return map[string]any{}
	}
	switch v := raw.(type) {
	case map[string]any:
		return v
	default:
		return map[string]any{"_args": fmt.Sprintf("%v", v)}
	}
}

// DumpTask serializes a task for the fallback description: the name
// field first, then the remaining fields in source order.
func DumpTask(task *RawTask) string {
	var sb strings.Builder
	if name, ok := task.Get("name"); ok {
		fmt.Fprintf(&sb, "name: %v\n", name)
	}
	for _, k := range task.Keys() {
		if k == "name" {
			continue
		}
		v, _ := task.Get(k)
		out, err := yaml.Marshal(map[string]any{k: v})
		if err != nil {
			fmt.Fprintf(&sb, "%s: %v\n", k, v)
			continue
		}
		sb.Write(out)
	}
	return strings.TrimRight(sb.String(), "\n")
}
