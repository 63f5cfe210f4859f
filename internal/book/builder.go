package book

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ansidocs/ansidocs/internal/config"
	"github.com/ansidocs/ansidocs/internal/interp"
	"github.com/ansidocs/ansidocs/internal/loader"
	"github.com/ansidocs/ansidocs/internal/logging"
	"github.com/ansidocs/ansidocs/internal/registry"
	"github.com/ansidocs/ansidocs/internal/sidecar"
	"github.com/ansidocs/ansidocs/internal/vars"
)

// Builder assembles the playbook hierarchy. Processing is strictly
// sequential: plays in order, roles in order, tasks in order.
type Builder struct {
	cfg *config.Config
	log *logging.Logger
	ld  *loader.Loader
	reg *registry.Registry
	in  *interp.Interpreter
	sc  *sidecar.Writer
}

// NewBuilder wires the builder's collaborators.
func NewBuilder(cfg *config.Config, log *logging.Logger, ld *loader.Loader, reg *registry.Registry, in *interp.Interpreter, sc *sidecar.Writer) *Builder {
	return &Builder{cfg: cfg, log: log, ld: ld, reg: reg, in: in, sc: sc}
}

// Build loads the playbook and expands every play, role and task.
// Per-task failures are contained; only structural failures propagate.
func (b *Builder) Build() (*Playbook, error) {
	node, err := b.ld.LoadPath(b.cfg.PlaybookPath)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("playbook %s is empty or encrypted", b.cfg.PlaybookPath)
	}
	var rawPlays []interp.RawTask
	if err := node.Decode(&rawPlays); err != nil {
		return nil, fmt.Errorf("decoding playbook %s: %w", b.cfg.PlaybookPath, err)
	}

	pb := &Playbook{}
	for i := range rawPlays {
		play, err := b.buildPlay(&rawPlays[i])
		if err != nil {
			return nil, fmt.Errorf("play %d: %w", i+1, err)
		}
		pb.Plays = append(pb.Plays, play)
	}
	return pb, nil
}

// buildPlay projects the raw play mapping onto a typed Play field by
// field (absence leaves the field unset), merges its vars, and expands
// its roles and tasks. A missing play name is fatal only under
// fail-on-error.
func (b *Builder) buildPlay(raw *interp.RawTask) (*Play, error) {
	p := &Play{}

	if v, ok := raw.Get("name"); ok {
		p.Name = fmt.Sprintf("%v", v)
	} else if b.cfg.FailOnError {
		return nil, fmt.Errorf("missing required field name")
	} else {
		b.log.Warnf("play has no name")
	}
	if v, ok := raw.Get("hosts"); ok {
		p.Hosts = hostsString(v)
	}
	if v, ok := raw.Get("become"); ok {
		p.Become, _ = v.(bool)
	}
	if v, ok := raw.Get("remote_user"); ok {
		p.RemoteUser = fmt.Sprintf("%v", v)
	}

	// Effective vars: var files in order, then inline vars on top.
	sources := make([]any, 0, 4)
	if v, ok := raw.Get("vars_files"); ok {
		files, _ := v.([]any)
		for _, f := range files {
			name := fmt.Sprintf("%v", f)
			p.VarFiles = append(p.VarFiles, name)
			m, err := b.ld.LoadMap(filepath.Join(b.cfg.BaseDir, trimExt(name)))
			if err != nil {
				return nil, err
			}
			if m == nil {
				b.log.Verbosef("vars file %s not found for play %q", name, p.Name)
				continue
			}
			sources = append(sources, m)
		}
	}
	if inline, ok := raw.Get("vars"); ok {
		sources = append(sources, inline)
	}
	merged, err := vars.Combine(sources...)
	if err != nil {
		return nil, fmt.Errorf("play %q vars: %w", p.Name, err)
	}
	p.Vars = merged

	if v, ok := raw.Get("roles"); ok {
		entries, _ := v.([]any)
		for _, entry := range entries {
			name := roleName(entry)
			if name == "" {
				b.log.Warnf("skipping role entry %v in play %q", entry, p.Name)
				continue
			}
			role, err := b.buildRole(name, p.Vars)
			if err != nil {
				return nil, err
			}
			p.Roles = append(p.Roles, role)
		}
	}

	if node, ok := raw.Node("tasks"); ok {
		var rawTasks []interp.RawTask
		if err := node.Decode(&rawTasks); err != nil {
			return nil, fmt.Errorf("decoding tasks of play %q: %w", p.Name, err)
		}
		for i := range rawTasks {
			p.Tasks = append(p.Tasks, b.buildTask(&rawTasks[i], p.Vars, b.cfg.BaseTemplatesPath()))
		}
	}

	return p, nil
}

// buildRole loads a role's data files from the directory convention and
// expands its tasks against the merged vars.
func (b *Builder) buildRole(name string, playVars map[string]any) (*Role, error) {
	dir := b.cfg.RolePath(name)
	r := &Role{Name: name, TemplateDir: b.cfg.RoleTemplatesPath(name)}

	defaults, err := b.ld.LoadMap(filepath.Join(dir, "defaults", "main"))
	if err != nil {
		return nil, fmt.Errorf("role %q defaults: %w", name, err)
	}
	own, err := b.ld.LoadMap(filepath.Join(dir, "vars", "main"))
	if err != nil {
		return nil, fmt.Errorf("role %q vars: %w", name, err)
	}
	r.Vars, err = vars.Combine(defaults, playVars, own)
	if err != nil {
		return nil, fmt.Errorf("role %q vars: %w", name, err)
	}

	var rawTasks []interp.RawTask
	if _, err := b.ld.LoadInto(filepath.Join(dir, "tasks", "main"), &rawTasks); err != nil {
		return nil, fmt.Errorf("role %q tasks: %w", name, err)
	}
	if _, err := b.ld.LoadInto(filepath.Join(dir, "handlers", "main"), &r.Handlers); err != nil {
		return nil, fmt.Errorf("role %q handlers: %w", name, err)
	}

	for i := range rawTasks {
		r.Tasks = append(r.Tasks, b.buildTask(&rawTasks[i], r.Vars, r.TemplateDir))
	}
	return r, nil
}

// buildTask interprets one task: loop expansion, module detection,
// variant selection, then text/commands/content expansion. Failures
// here never propagate; a task that cannot be expanded keeps whatever
// partial results it produced.
func (b *Builder) buildTask(raw *interp.RawTask, ambient map[string]any, templateDir string) *Task {
	t := &Task{Name: raw.StringValue("name")}

	if v, ok := raw.Get("notify"); ok {
		t.Notify = stringList(v)
	}
	if v, ok := raw.Get("delegate_to"); ok {
		t.DelegateTo = fmt.Sprintf("%v", v)
	}
	if v, ok := raw.Get("become"); ok {
		t.Become, _ = v.(bool)
	}

	t.Items = b.in.ResolveLoop(interp.LoopFrom(raw), ambient)
	t.Module = b.reg.Detect(raw.Keys())
	t.Values = interp.Values(raw, t.Module)

	variant := b.reg.Select(t.Module, t.Values)
	if variant == nil {
		b.log.Debugf("no %s variant matches task %q", t.Module, t.Name)
		return t
	}

	t.Text = b.in.ExpandText(variant, t.Module, t.Values, ambient, t.Items)
	t.Commands = b.in.ExpandCommands(variant, t.Values, ambient, t.Items)

	if content, ok := b.in.ExpandContent(variant, t.Module, t.Values, ambient, t.Items, templateDir); ok {
		var dest string
		if v, ok := interp.LookupAlias("dest|path|name", t.Values); ok {
			dest = fmt.Sprintf("%v", v)
		}
		text, linked, err := b.sc.Place(dest, content)
		if err != nil {
			b.log.Errorf("task %q: %v", t.Name, err)
		} else {
			t.Content = append(t.Content, ContentBlock{Linked: linked, Text: text})
		}
	}

	b.log.Verbosef("expanded task %q as %s", t.Name, t.Module)
	return t
}

// hostsString flattens the hosts field, which may be a string or list.
func hostsString(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, len(list))
		for i, h := range list {
			parts[i] = fmt.Sprintf("%v", h)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%v", v)
}

// roleName accepts both the bare-string and the mapping role entry.
func roleName(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]any:
		if name, ok := v["role"].(string); ok {
			return name
		}
	}
	return ""
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, fmt.Sprintf("%v", e))
		}
		return out
	}
	return nil
}

// trimExt strips a .yml/.yaml suffix so the loader's pair resolution
// applies to explicitly-suffixed references too.
func trimExt(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
}
