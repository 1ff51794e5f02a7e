// Package inherit flattens a schema definition with all of its ancestors
// into one immutable contract. Inheritance is a directed acyclic override
// chain: a data-driven merge, not runtime dispatch.
package inherit

import (
	"strings"
	"sync"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/internal/catalog"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
)

// Contract is the fully flattened set of members and attributes for one
// schema. Resolving the same name against the same catalog always yields
// the same contract; contracts are immutable once produced.
type Contract struct {
	Name     string
	Category nxdl.Category

	IgnoreExtraGroups     bool
	IgnoreExtraFields     bool
	IgnoreExtraAttributes bool

	Members    []nxdl.Member
	Attributes []nxdl.Attribute
}

// Resolver builds contracts on top of a catalog and memoizes them.
// Resolution is a pure function of immutable inputs, so the cache may be
// shared across goroutines.
type Resolver struct {
	catalog *catalog.Catalog

	mu    sync.Mutex
	cache map[string]*Contract
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{
		catalog: c,
		cache:   make(map[string]*Contract),
	}
}

// Catalog returns the underlying schema catalog.
func (r *Resolver) Catalog() *catalog.Catalog { return r.catalog }

// Resolve flattens the named schema, searching application definitions
// before base classes.
func (r *Resolver) Resolve(name string) (*Contract, error) {
	def, err := r.catalog.Load(name)
	if err != nil {
		return nil, err
	}
	return r.resolveDef(def, def.Category.String()+"/"+name)
}

// ResolveCategory flattens the named schema within one schema family.
func (r *Resolver) ResolveCategory(name string, cat nxdl.Category) (*Contract, error) {
	def, err := r.catalog.LoadCategory(name, cat)
	if err != nil {
		return nil, err
	}
	return r.resolveDef(def, cat.String()+"/"+name)
}

// ResolveDefinition flattens an already-parsed definition, typically one
// loaded from an explicitly supplied file. Ancestors are still resolved
// through the catalog. The result is not cached.
func (r *Resolver) ResolveDefinition(def *nxdl.Definition) (*Contract, error) {
	return r.build(def)
}

// Reset discards memoized contracts. Call after Catalog.Reload.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*Contract)
}

func (r *Resolver) resolveDef(def *nxdl.Definition, key string) (*Contract, error) {
	r.mu.Lock()
	if c, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	c, err := r.build(def)
	if err != nil {
		// failed resolutions leave no partial state behind
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = c
	r.mu.Unlock()
	return c, nil
}

// build collects the ancestor chain of def and merges it most ancestral
// first, so a derived member with the same (localName, kind) identity
// replaces the ancestor's rather than duplicating it.
func (r *Resolver) build(def *nxdl.Definition) (*Contract, error) {
	chain, err := r.chain(def)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		Name:     def.Name,
		Category: def.Category,
	}
	for i := len(chain) - 1; i >= 0; i-- {
		ancestor := chain[i]
		c.Members = mergeMembers(c.Members, ancestor.Members)
		c.Attributes = mergeAttributes(c.Attributes, ancestor.Attributes)
		c.IgnoreExtraGroups = c.IgnoreExtraGroups || ancestor.IgnoreExtraGroups
		c.IgnoreExtraFields = c.IgnoreExtraFields || ancestor.IgnoreExtraFields
		c.IgnoreExtraAttributes = c.IgnoreExtraAttributes || ancestor.IgnoreExtraAttributes
	}
	return c, nil
}

// chain returns def followed by its ancestors, most derived first,
// stopping at the universal root. A revisited name is a cycle and fails
// before any merge happens.
func (r *Resolver) chain(def *nxdl.Definition) ([]*nxdl.Definition, error) {
	chain := []*nxdl.Definition{def}
	visited := map[string]bool{def.Name: true}
	order := []string{def.Name}

	current := def
	for current.Extends != "" {
		parentName := current.Extends
		if visited[parentName] {
			cycle := strings.Join(append(order, parentName), " -> ")
			return nil, nxerrors.NewSchemaError(nxerrors.CodeCyclicInheritance, def.Name,
				"inheritance cycle: %s", cycle)
		}
		parent, err := r.catalog.LoadCategory(parentName, current.Category)
		if err != nil {
			if current.Category == nxdl.CategoryApplication && nxerrors.IsCode(err, nxerrors.CodeSchemaNotFound) {
				// application definitions may extend a base class
				parent, err = r.catalog.LoadCategory(parentName, nxdl.CategoryBase)
			}
			if err != nil {
				if parentName == nxdl.RootClass && nxerrors.IsCode(err, nxerrors.CodeSchemaNotFound) {
					// the universal root is implicit; a catalog without a
					// definition file for it just ends the chain here
					break
				}
				return nil, err
			}
		}
		visited[parentName] = true
		order = append(order, parentName)
		chain = append(chain, parent)
		if parent.Name == nxdl.RootClass {
			break
		}
		current = parent
	}
	return chain, nil
}

// mergeMembers overlays layer onto base. Identity is (localName, kind)
// for named members and (kind, class) for class wildcards; an overridden
// member keeps its slot so merged order stays ancestor-first.
func mergeMembers(base, layer []nxdl.Member) []nxdl.Member {
	out := append([]nxdl.Member(nil), base...)
	index := make(map[string]int, len(out))
	for i := range out {
		index[memberKey(&out[i])] = i
	}
	for i := range layer {
		m := layer[i]
		if at, ok := index[memberKey(&m)]; ok {
			out[at] = m
			continue
		}
		index[memberKey(&m)] = len(out)
		out = append(out, m)
	}
	return out
}

func memberKey(m *nxdl.Member) string {
	if m.LocalName != "" {
		return m.Kind.String() + "\x00" + m.LocalName
	}
	return m.Kind.String() + "\x00class:" + m.TypeOrClass
}

func mergeAttributes(base, layer []nxdl.Attribute) []nxdl.Attribute {
	out := append([]nxdl.Attribute(nil), base...)
	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].Name] = i
	}
	for _, a := range layer {
		if at, ok := index[a.Name]; ok {
			out[at] = a
			continue
		}
		index[a.Name] = len(out)
		out = append(out, a)
	}
	return out
}

// FromMember builds a contract out of one group member's nested
// declarations. Application definitions carry their required tree inline,
// so recursion into a matched group validates against the member's own
// body rather than the group class.
func FromMember(m *nxdl.Member, cat nxdl.Category) *Contract {
	// an application definition constrains what must be present, not what
	// else may be; members outside the required tree are legitimate under
	// the group's base class
	return &Contract{
		Name:                  m.TypeOrClass,
		Category:              cat,
		Members:               m.Members,
		Attributes:            m.Attributes,
		IgnoreExtraGroups:     true,
		IgnoreExtraFields:     true,
		IgnoreExtraAttributes: true,
	}
}
