// Package book assembles the Playbook → Play → Role/Task hierarchy,
// threading variable inheritance and file-based var loading through it.
package book

import "github.com/ansidocs/ansidocs/internal/interp"

// Playbook is the ordered sequence of plays, preserved as in source.
type Playbook struct {
	Plays []*Play
}

// Play is a named group of hosts, roles and tasks. Its effective vars
// are the merge of its var files and inline vars, inline winning.
type Play struct {
	Name       string
	Hosts      string
	Become     bool
	RemoteUser string
	VarFiles   []string
	Vars       map[string]any
	Roles      []*Role
	Tasks      []*Task
}

// Role is a reusable bundle of tasks, vars and templates under the
// filesystem convention roles/<name>/{tasks,defaults,vars,handlers,
// templates}. Its effective vars merge defaults, the parent play's vars
// and its own vars, later sources winning. The vars map is owned by the
// role and handed read-only to every task under it.
type Role struct {
	Name        string
	Vars        map[string]any
	TemplateDir string
	Tasks       []*Task

	// Handlers are loaded but never expanded.
	Handlers []interp.RawTask
}

// Task is one expanded operation invocation.
type Task struct {
	Name     string
	Module   string
	Values   map[string]any
	Text     []string
	Commands string
	Content  []ContentBlock
	Items    []any

	// Captured but not semantically expanded.
	Notify     []string
	DelegateTo string
	Become     bool
}

// ContentBlock is one expanded content result: either the inline text
// or, when linked, the name of the sidecar file holding it.
type ContentBlock struct {
	Linked bool
	Text   string
}
