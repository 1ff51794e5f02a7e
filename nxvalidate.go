// Package nxvalidate validates the structure of hierarchical scientific
// data trees against NXDL schema definitions: inheritance-linked base
// classes and application definitions. The engine classifies every node
// as conforming, missing-but-required, present-but-undeclared, or
// type/attribute-mismatched and reports the findings as a severity-
// tagged diagnostic list.
package nxvalidate

import (
	"fmt"
	"io/fs"
	"os"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
	"github.com/nxvalidate/nxvalidate/internal/catalog"
	"github.com/nxvalidate/nxvalidate/internal/inherit"
	"github.com/nxvalidate/nxvalidate/internal/nxdl"
	"github.com/nxvalidate/nxvalidate/internal/validator"
	"github.com/nxvalidate/nxvalidate/pkg/nxtree"
)

// Validator resolves schemas from a definitions directory and validates
// data trees against them. It is safe for concurrent use; resolved
// contracts are immutable and cached until Reload.
type Validator struct {
	catalog  *catalog.Catalog
	resolver *inherit.Resolver
}

// Option configures a Validator.
type Option interface{ apply(*config) }

type config struct {
	fsys fs.FS
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithDefinitions sets the definitions filesystem, expected to contain
// base_classes/ and applications/ subdirectories.
func WithDefinitions(fsys fs.FS) Option {
	return optionFunc(func(cfg *config) {
		cfg.fsys = fsys
	})
}

// WithDefinitionsDir sets the definitions directory on the host
// filesystem.
func WithDefinitionsDir(dir string) Option {
	return optionFunc(func(cfg *config) {
		cfg.fsys = os.DirFS(dir)
	})
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	if cfg.fsys == nil {
		return nil, fmt.Errorf("new validator: no definitions directory configured")
	}
	cat := catalog.New(cfg.fsys)
	return &Validator{
		catalog:  cat,
		resolver: inherit.NewResolver(cat),
	}, nil
}

// Reload discards every cached definition and contract. Subsequent
// validations re-read the definitions directory.
func (v *Validator) Reload() {
	v.catalog.Reload()
	v.resolver.Reset()
}

// ValidateClass validates one data subtree against the named base class.
// The full diagnostic set is always computed; apply Report.AtLeast at
// the presentation boundary to select a severity floor.
func (v *Validator) ValidateClass(node nxtree.Node, className string) (nxerrors.Report, error) {
	contract, err := v.resolver.ResolveCategory(className, nxdl.CategoryBase)
	if err != nil {
		return nil, err
	}
	s := validator.New(v.resolver)
	if err := s.Validate(node, contract, "/"+node.Name()); err != nil {
		return nil, err
	}
	return s.Report(), nil
}

// ValidateTree validates a whole data tree: every group is checked
// against its own declared class. A root without a class attribute is
// treated as a plain container and its child groups become the roots.
func (v *Validator) ValidateTree(root nxtree.Node) (nxerrors.Report, error) {
	s := validator.New(v.resolver)
	if root.Class() != "" {
		if err := s.ValidateByClass(root, "/"+root.Name()); err != nil {
			return nil, err
		}
		return s.Report(), nil
	}
	for _, child := range root.Children() {
		if child.NodeKind() != nxtree.KindGroup {
			continue
		}
		if err := s.ValidateByClass(child, "/"+child.Name()); err != nil {
			return nil, err
		}
	}
	return s.Report(), nil
}

// Resolve returns the flattened contract for a schema name, searching
// application definitions before base classes.
func (v *Validator) Resolve(name string) (*inherit.Contract, error) {
	return v.resolver.Resolve(name)
}

// BaseClassNames lists the base classes in the definitions directory.
func (v *Validator) BaseClassNames() ([]string, error) {
	return v.catalog.Names(nxdl.CategoryBase)
}

// ApplicationNames lists the application definitions in the definitions
// directory.
func (v *Validator) ApplicationNames() ([]string, error) {
	return v.catalog.Names(nxdl.CategoryApplication)
}
