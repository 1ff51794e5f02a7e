// Package nxtree defines the read-only data-tree view the validation
// engine consumes, plus an in-memory implementation. The physical file
// reader is an external collaborator; anything exposing this interface
// can be validated.
package nxtree

import "strings"

// Kind distinguishes groups from fields.
type Kind uint8

const (
	KindGroup Kind = iota
	KindField
)

// String returns the node kind name.
func (k Kind) String() string {
	if k == KindField {
		return "field"
	}
	return "group"
}

// Node is one node in a data file tree. Implementations are read-only to
// the validation engine.
type Node interface {
	// Name is the node's local name.
	Name() string
	// NodeKind reports whether this is a group or a field.
	NodeKind() Kind
	// Class is the declared group class (for example NXentry). Empty for
	// fields.
	Class() string
	// Attributes maps attribute names to their rendered values.
	Attributes() map[string]string
	// ValueType is the field's storage type ("float64", "string", ...).
	// Empty for groups.
	ValueType() string
	// Value is the field's scalar value rendered as text. Empty for
	// groups and non-scalar fields.
	Value() string
	// Rank is the field's array rank; 0 for scalars and groups.
	Rank() int
	// Children returns the ordered child nodes of a group.
	Children() []Node
}

// Group is an in-memory group node.
type Group struct {
	name     string
	class    string
	attrs    map[string]string
	children []Node
}

// NewGroup creates a group node of the given class.
func NewGroup(name, class string) *Group {
	return &Group{name: name, class: class, attrs: map[string]string{}}
}

// SetAttr sets an attribute and returns the group for chaining.
func (g *Group) SetAttr(name, value string) *Group {
	g.attrs[name] = value
	return g
}

// Add appends child nodes and returns the group for chaining.
func (g *Group) Add(children ...Node) *Group {
	g.children = append(g.children, children...)
	return g
}

func (g *Group) Name() string                  { return g.name }
func (g *Group) NodeKind() Kind                { return KindGroup }
func (g *Group) Class() string                 { return g.class }
func (g *Group) Attributes() map[string]string { return g.attrs }
func (g *Group) ValueType() string             { return "" }
func (g *Group) Value() string                 { return "" }
func (g *Group) Rank() int                     { return 0 }
func (g *Group) Children() []Node              { return g.children }

// Field is an in-memory field node.
type Field struct {
	name      string
	valueType string
	value     string
	rank      int
	attrs     map[string]string
}

// NewField creates a field node with the given storage type.
func NewField(name, valueType string) *Field {
	return &Field{name: name, valueType: valueType, attrs: map[string]string{}}
}

// WithValue sets the scalar value and returns the field for chaining.
func (f *Field) WithValue(value string) *Field {
	f.value = value
	return f
}

// WithRank sets the array rank and returns the field for chaining.
func (f *Field) WithRank(rank int) *Field {
	f.rank = rank
	return f
}

// SetAttr sets an attribute and returns the field for chaining.
func (f *Field) SetAttr(name, value string) *Field {
	f.attrs[name] = value
	return f
}

func (f *Field) Name() string                  { return f.name }
func (f *Field) NodeKind() Kind                { return KindField }
func (f *Field) Class() string                 { return "" }
func (f *Field) Attributes() map[string]string { return f.attrs }
func (f *Field) ValueType() string             { return f.valueType }
func (f *Field) Value() string                 { return f.value }
func (f *Field) Rank() int                     { return f.rank }
func (f *Field) Children() []Node              { return nil }

// Find walks a slash-separated path from node and returns the node it
// names.
func Find(node Node, path string) (Node, bool) {
	if path == "" || path == "/" {
		return node, true
	}
	current := node
	for _, part := range splitPath(path) {
		var next Node
		for _, child := range current.Children() {
			if child.Name() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
