// Package interp is the task-interpretation engine: it extracts module
// parameter values, expands the module's text, commands and content
// templates against those values plus the ambient variable store, and
// resolves loop directives.
//
// Template lines carry two placeholder kinds: optional fragments
// delimited by [[ ... ]], and variable references delimited by $name$
// where the name may chain aliases with | ($path|dest|name$ resolves to
// whichever key is present first). The two resolution passes are
// deliberately asymmetric: a fragment survives when ANY of its
// references resolves, while a whole line is dropped when ANY reference
// outside a fragment is left unresolved. Module definitions are written
// against exactly these rules.
package interp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/ansidocs/ansidocs/internal/locale"
	"github.com/ansidocs/ansidocs/internal/logging"
	"github.com/ansidocs/ansidocs/internal/registry"
)

var (
	// Optional fragment: [[ ... ]], non-greedy so adjacent fragments
	// stay separate.
	fragmentRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

	// Variable reference: $name$, names may chain aliases with |.
	referenceRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_|]*)\$`)
)

// Interpreter expands module templates for tasks. It holds the locale
// string table, which is read-only after loading.
type Interpreter struct {
	table locale.Table
	log   *logging.Logger
}

// New creates an Interpreter.
func New(table locale.Table, log *logging.Logger) *Interpreter {
	return &Interpreter{table: table, log: log}
}

// LookupAlias resolves a reference name against the parameter values.
// Names are case-insensitive and may chain | alternatives; the first
// present key wins.
func LookupAlias(name string, values map[string]any) (any, bool) {
	for _, part := range strings.Split(strings.ToLower(name), "|") {
		if v, ok := values[part]; ok {
			return v, true
		}
	}
	return nil, false
}

// ResolveLine expands one template line. The result is nil when the
// line produces no output (an unresolved reference outside a fragment,
// or a second-layer template error), a single string, or one string per
// loop item when the line mentions items and the task loops.
func (in *Interpreter) ResolveLine(line string, values, ambient map[string]any, items []any) []string {
	// Pass 1: optional fragments. A fragment with no references keeps
	// its inner text; one whose references all miss is deleted whole.
	resolved := fragmentRe.ReplaceAllStringFunc(line, func(m string) string {
		inner := m[2 : len(m)-2]
		refs := referenceRe.FindAllStringSubmatch(inner, -1)
		if len(refs) == 0 {
			return inner
		}
		for _, ref := range refs {
			if _, ok := LookupAlias(ref[1], values); ok {
				return inner
			}
		}
		return ""
	})

	// Pass 2: remaining references. Any miss drops the whole line;
	// this is how parameter presence gates line inclusion.
	missing := ""
	substituted := referenceRe.ReplaceAllStringFunc(resolved, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := LookupAlias(name, values)
		if !ok {
			missing = name
			return ""
		}
		return fmt.Sprintf("%v", v)
	})
	if missing != "" {
		in.log.Debugf("dropping line %q: no value for $%s$", line, missing)
		return nil
	}

	return in.render(substituted, ambient, items)
}

// render runs the second-layer templating pass bound to the ambient
// vars. Errors are reported and the line yields nothing; a bad template
// in one task must not abort the run.
func (in *Interpreter) render(line string, ambient map[string]any, items []any) []string {
	tpl, err := pongo2.FromString(line)
	if err != nil {
		in.log.Errorf("template %q: %v", line, err)
		return nil
	}

	ctx := make(pongo2.Context, len(ambient)+1)
	for k, v := range ambient {
		ctx[k] = v
	}

	// Loop heuristic: a textual mention of "item", not a parsed
	// reference check.
	if strings.Contains(line, "item") && len(items) > 0 {
		out := make([]string, 0, len(items))
		for _, item := range items {
			ctx["item"] = item
			s, err := tpl.Execute(ctx)
			if err != nil {
				in.log.Errorf("template %q with item %v: %v", line, item, err)
				continue
			}
			out = append(out, s)
		}
		return out
	}

	s, err := tpl.Execute(ctx)
	if err != nil {
		in.log.Errorf("template %q: %v", line, err)
		return nil
	}
	return []string{s}
}

// ExpandText resolves a variant's text lines: either its inline
// template or its line keys looked up in the locale table for the
// module. Keys missing from the table are skipped.
func (in *Interpreter) ExpandText(v *registry.Variant, module string, values, ambient map[string]any, items []any) []string {
	if v.Text.Inline != "" {
		return in.ResolveLine(v.Text.Inline, values, ambient, items)
	}
	var out []string
	for _, key := range v.Text.Keys {
		tmpl, ok := in.table.Lookup(module, key)
		if !ok {
			in.log.Debugf("no string %s.%s in locale table", module, key)
			continue
		}
		out = append(out, in.ResolveLine(tmpl, values, ambient, items)...)
	}
	return out
}

// ExpandCommands resolves a variant's multi-line commands template.
// Each line is resolved independently; surviving lines are joined with
// newlines. An empty result means no commands block.
func (in *Interpreter) ExpandCommands(v *registry.Variant, values, ambient map[string]any, items []any) string {
	if v.Commands == "" {
		return ""
	}
	var lines []string
	for _, ln := range strings.Split(strings.TrimRight(v.Commands, "\n"), "\n") {
		lines = append(lines, in.ResolveLine(ln, values, ambient, items)...)
	}
	return strings.Join(lines, "\n")
}
