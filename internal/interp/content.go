package interp

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/ansidocs/ansidocs/internal/registry"
)

// templateModule is the file-template module: its expanded content is a
// template name rendered through the owning role's template directory.
const templateModule = "template"

// ExpandContent resolves a variant's content template through the line
// pipeline. For the file-template module the result names a template
// file rendered against the role's template directory with the current
// vars. The second return is false when the task has no content, either
// because the variant defines none or because required values were
// missing.
func (in *Interpreter) ExpandContent(v *registry.Variant, module string, values, ambient map[string]any, items []any, templateDir string) (string, bool) {
	if v.Content == "" {
		return "", false
	}
	lines := in.ResolveLine(v.Content, values, ambient, items)
	if len(lines) == 0 {
		return "", false
	}
	text := strings.Join(lines, "\n")

	if module == templateModule {
		rendered, ok := in.renderTemplateFile(templateDir, text, ambient)
		if !ok {
			return "", false
		}
		return rendered, true
	}
	return text, true
}

// renderTemplateFile renders a named template from the role's template
// directory. Unresolved-variable and I/O errors are surfaced without
// aborting the run.
func (in *Interpreter) renderTemplateFile(dir, name string, ambient map[string]any) (string, bool) {
	fsLoader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		in.log.Errorf("template directory %s: %v", dir, err)
		return "", false
	}
	set := pongo2.NewSet("role", fsLoader)
	tpl, err := set.FromFile(name)
	if err != nil {
		in.log.Errorf("template %s in %s: %v", name, dir, err)
		return "", false
	}

	ctx := make(pongo2.Context, len(ambient))
	for k, v := range ambient {
		ctx[k] = v
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		in.log.Errorf("rendering template %s: %v", name, err)
		return "", false
	}
	return out, true
}
