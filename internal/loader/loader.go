package loader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ansidocs/ansidocs/internal/logging"
)

// vaultMarker prefixes encrypted documents. Such documents are never
// decrypted; they are treated as absent with a warning.
const vaultMarker = "$ANSIBLE_VAULT"

// extensions tried in order for every referenced document.
var extensions = []string{".yml", ".yaml"}

// Loader resolves and parses structured documents following the
// <name>.yml-then-<name>.yaml convention.
type Loader struct {
	log *logging.Logger
}

// New creates a Loader.
func New(log *logging.Logger) *Loader {
	return &Loader{log: log}
}

// Load attempts <base>.yml then <base>.yaml and returns the parsed
// document's content node. A missing document is not an error: the
// result is nil. An encrypted document yields a warning and nil.
// Malformed YAML propagates to the caller.
func (l *Loader) Load(base string) (*yaml.Node, error) {
	for _, ext := range extensions {
		path := base + ext
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		node := content(&doc)
		if node == nil {
			l.log.Debugf("empty document: %s", path)
			return nil, nil
		}
		if node.Kind == yaml.ScalarNode && strings.HasPrefix(node.Value, vaultMarker) {
			l.log.Warnf("skipping encrypted document: %s", path)
			return nil, nil
		}
		l.log.Debugf("loaded %s", path)
		return node, nil
	}
	l.log.Debugf("no document found for %s", base)
	return nil, nil
}

// LoadPath reads one exact file path, without the extension-pair
// convention. Unlike Load, a missing file is an error; the encrypted
// and empty cases behave as in Load.
func (l *Loader) LoadPath(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	node := content(&doc)
	if node == nil {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode && strings.HasPrefix(node.Value, vaultMarker) {
		l.log.Warnf("skipping encrypted document: %s", path)
		return nil, nil
	}
	return node, nil
}

// LoadInto decodes the resolved document into out. It reports whether a
// document was found; absent and encrypted documents leave out untouched.
func (l *Loader) LoadInto(base string, out any) (bool, error) {
	node, err := l.Load(base)
	if err != nil || node == nil {
		return false, err
	}
	if err := node.Decode(out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", base, err)
	}
	return true, nil
}

// LoadMap resolves the document into a plain mapping. Absent documents
// and non-mapping documents yield nil; the latter is left to the caller
// to treat as a shape error if it matters.
func (l *Loader) LoadMap(base string) (map[string]any, error) {
	node, err := l.Load(base)
	if err != nil || node == nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		l.log.Debugf("document %s is not a mapping", base)
		return nil, nil
	}
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", base, err)
	}
	return m, nil
}

// content unwraps the document node.
func content(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}
