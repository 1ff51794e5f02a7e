package nxtree

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
)

// yamlNode is the on-disk rendition of one tree node, as produced by an
// h5dump-style exporter. A node with a class or children is a group;
// everything else is a field.
type yamlNode struct {
	Name       string            `yaml:"name"`
	Class      string            `yaml:"class,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Type       string            `yaml:"type,omitempty"`
	Value      string            `yaml:"value,omitempty"`
	Rank       int               `yaml:"rank,omitempty"`
	Children   []yamlNode        `yaml:"children,omitempty"`
}

// FromYAML reads a tree rendition from r.
func FromYAML(r io.Reader) (Node, error) {
	var root yamlNode
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return buildNode(root)
}

// LoadYAMLFile reads a tree rendition from a file. Unreadable files
// surface as SourceUnavailable before any traversal begins.
func LoadYAMLFile(path string) (Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSourceUnavailable, path, "%v", err)
	}
	defer f.Close()

	node, err := FromYAML(f)
	if err != nil {
		return nil, nxerrors.NewSchemaError(nxerrors.CodeSourceUnavailable, path, "%v", err)
	}
	return node, nil
}

func buildNode(y yamlNode) (Node, error) {
	if y.Name == "" {
		return nil, fmt.Errorf("tree node with no name")
	}
	if y.Class != "" || len(y.Children) > 0 {
		if y.Type != "" || y.Value != "" {
			return nil, fmt.Errorf("node %q mixes group and field properties", y.Name)
		}
		g := NewGroup(y.Name, y.Class)
		for k, v := range y.Attributes {
			g.SetAttr(k, v)
		}
		for _, child := range y.Children {
			n, err := buildNode(child)
			if err != nil {
				return nil, err
			}
			g.Add(n)
		}
		return g, nil
	}

	f := NewField(y.Name, y.Type).WithValue(y.Value).WithRank(y.Rank)
	for k, v := range y.Attributes {
		f.SetAttr(k, v)
	}
	return f, nil
}
